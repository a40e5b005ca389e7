package entity

import "math"

// PointsPerCarbonKg はポイント換算の除数です（2kg CO2 ごとに1ポイント）。
const PointsPerCarbonKg = 2

// ItemReport は判定結果と推定結果をマージした1アイテム分のレポートです。
type ItemReport struct {
	Name        string
	Probability float64
	CarbonScore float64
	Description string
}

// EcoScore は環境負荷と報酬ポイントの組です。
type EcoScore struct {
	TotalCarbon float64
	Points      int
}

// ScanResult はスキャン1回分の最終結果です。
// 衣類が検出されなかった場合、Itemsは空でEcoScoreはnilになります。
type ScanResult struct {
	Items    []ItemReport
	EcoScore *EcoScore
}

// NewEcoScore は合計排出量からポイントを算出します。
// points = floor(totalCarbon / 2)。負の値と有限でない値は0として扱い、
// intに収まらない値はmath.MaxIntで頭打ちにします。
func NewEcoScore(totalCarbon float64) EcoScore {
	if totalCarbon < 0 || math.IsNaN(totalCarbon) || math.IsInf(totalCarbon, 0) {
		totalCarbon = 0
	}
	points := math.MaxInt
	if half := math.Floor(totalCarbon / PointsPerCarbonKg); half < float64(math.MaxInt) {
		points = int(half)
	}
	return EcoScore{
		TotalCarbon: totalCarbon,
		Points:      points,
	}
}

// EmptyScanResult は「衣類なし」の正常結果を返します。
func EmptyScanResult() *ScanResult {
	return &ScanResult{Items: []ItemReport{}}
}


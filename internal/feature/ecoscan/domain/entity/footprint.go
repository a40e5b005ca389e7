package entity

// FootprintEstimate は衣類1点を製造する際のカーボンフットプリント推定値です。
type FootprintEstimate struct {
	Name        string  // 推定器が正規化した衣類名
	CarbonScore float64 // kg CO2（0以上）
	Description string  // 1文の説明
}

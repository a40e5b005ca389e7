// Package api はHTTP APIのリクエスト・レスポンスDTOを定義します。
package api

// ErrorResponse は失敗時のレスポンスボディです。
// Rawはモデル出力の解析に失敗した場合のみ、診断用の生テキストを含みます。
type ErrorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

// HealthResponse はヘルスチェックのレスポンスボディです。
type HealthResponse struct {
	Status string `json:"status"`
}

// ItemReportResponse は検出された衣類1点分のレポートです。
type ItemReportResponse struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	CarbonScore float64 `json:"carbonScore"`
	Description string  `json:"description"`
}

// EcoScoreResponse は合計排出量と獲得ポイントです。
type EcoScoreResponse struct {
	TotalCarbon float64 `json:"totalCarbon"`
	Points      int     `json:"points"`
}

// ScanResponse は POST /analyze-image の成功レスポンスです。
// 衣類が検出されなかった場合、Itemsは空配列でEcoScoreはnullになります。
type ScanResponse struct {
	Items    []ItemReportResponse `json:"items"`
	EcoScore *EcoScoreResponse    `json:"ecoScore"`
}

package gemini

import (
	"context"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/domain/entity"
	"ecoscan_backend/internal/feature/ecoscan/usecase"
	"ecoscan_backend/internal/shared/llmjson"
)

const (
	// FootprintPromptTemplate はフットプリント推定のプロンプトテンプレートです。
	FootprintPromptTemplate = "For the following clothing item, estimate the carbon footprint in kg CO2 for manufacturing one item, and provide a one-sentence description. Return as JSON with keys: name, carbonScore, description. Item: %s"
	// FootprintTemperature は同じ衣類で推定値が収束しやすいよう低めに設定したサンプリング温度です。
	FootprintTemperature float32 = 0.2
)

// FootprintEstimator はGemini APIのテキスト生成を使用してカーボンフットプリントを推定します。
type FootprintEstimator struct {
	models contentGenerator
	model  string
}

// FootprintEstimatorがusecase.FootprintEstimatorを実装していることをコンパイル時に検証します。
var _ usecase.FootprintEstimator = (*FootprintEstimator)(nil)

// NewFootprintEstimator はFootprintEstimatorの新しいインスタンスを生成します。
func NewFootprintEstimator(client *genai.Client, model string) *FootprintEstimator {
	return &FootprintEstimator{models: client.Models, model: model}
}

// Estimate は衣類名を埋め込んだ指示文を送信し、推定結果を解析します。
func (g *FootprintEstimator) Estimate(ctx context.Context, garmentName string) (entity.FootprintEstimate, error) {
	prompt := fmt.Sprintf(FootprintPromptTemplate, strings.TrimSpace(garmentName))
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(FootprintTemperature),
	}

	raw, err := generate(ctx, g.models, domain.StageEstimation, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return entity.FootprintEstimate{}, err
	}
	return ParseFootprint(raw)
}

// footprintPayload はモデルに要求したJSONの形です。carbonScoreは型を問わず受け取ります。
type footprintPayload struct {
	Name        string `json:"name"`
	CarbonScore any    `json:"carbonScore"`
	Description string `json:"description"`
}

// ParseFootprint はモデルの生テキストを推定結果に変換します。
// carbonScoreが欠落または数値でない場合は、全体を失敗にせず0として扱います。
func ParseFootprint(raw string) (entity.FootprintEstimate, error) {
	var p footprintPayload
	if err := llmjson.Decode(raw, &p); err != nil {
		return entity.FootprintEstimate{}, domain.NewEstimationParseError(raw, err)
	}
	return entity.FootprintEstimate{
		Name:        strings.TrimSpace(p.Name),
		CarbonScore: carbonScore(p.CarbonScore),
		Description: strings.TrimSpace(p.Description),
	}, nil
}

func carbonScore(v any) float64 {
	f, ok := v.(float64)
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

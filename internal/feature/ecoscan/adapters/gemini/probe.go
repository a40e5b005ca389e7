package gemini

import (
	"context"

	"google.golang.org/genai"

	"ecoscan_backend/internal/feature/ecoscan/domain"
)

const (
	// ProbePrompt は疎通確認用の短いプロンプトです。
	ProbePrompt = "Is this working?"
	// ProbeMaxTokens は疎通確認レスポンスの最大トークン数です。
	ProbeMaxTokens = 10
)

// Probe は認証情報とモデル名が有効かを確認するため、短いプロンプトを1回送信します。
func Probe(ctx context.Context, client *genai.Client, model string) (string, error) {
	return probe(ctx, client.Models, model)
}

func probe(ctx context.Context, gen contentGenerator, model string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: ProbeMaxTokens,
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
	return generate(ctx, gen, domain.StageClassification, model, genai.Text(ProbePrompt), cfg)
}

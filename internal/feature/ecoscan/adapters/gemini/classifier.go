package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/domain/entity"
	"ecoscan_backend/internal/feature/ecoscan/usecase"
	"ecoscan_backend/internal/shared/llmjson"
)

const (
	// ClassificationPrompt は衣類判定の指示文です。フィールド名はレスポンス解析と対になっています。
	ClassificationPrompt = `Is the object in this image a piece of clothing? If yes, what type of clothing is it (e.g., T-shirt, jeans, dress, etc.)? Reply in JSON: {"isClothing": true/false, "name": "type of clothing or null", "probability": 0-1 }`
	// ClassificationMaxTokens は判定レスポンスの最大トークン数です。
	ClassificationMaxTokens = 200
)

// GarmentClassifier はGemini APIの画像入力を使用して衣類を判定します。
type GarmentClassifier struct {
	models contentGenerator
	model  string
}

// GarmentClassifierがusecase.GarmentClassifierを実装していることをコンパイル時に検証します。
var _ usecase.GarmentClassifier = (*GarmentClassifier)(nil)

// NewGarmentClassifier はGarmentClassifierの新しいインスタンスを生成します。
func NewGarmentClassifier(client *genai.Client, model string) *GarmentClassifier {
	return &GarmentClassifier{models: client.Models, model: model}
}

// Classify は画像をインラインデータとして指示文と共に送信し、判定結果を解析します。
func (g *GarmentClassifier) Classify(ctx context.Context, image entity.ImagePayload) (entity.Classification, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(ClassificationPrompt),
			genai.NewPartFromBytes(image.Data, image.MediaType),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: ClassificationMaxTokens,
		// 思考トークンで上限を使い切らないよう無効化
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}

	raw, err := generate(ctx, g.models, domain.StageClassification, g.model, contents, cfg)
	if err != nil {
		return entity.Classification{}, err
	}
	return ParseClassification(raw)
}

// classificationPayload はモデルに要求したJSONの形です。
type classificationPayload struct {
	IsClothing  *bool    `json:"isClothing"`
	Name        *string  `json:"name"`
	Probability *float64 `json:"probability"`
}

// ParseClassification はモデルの生テキストを判定結果に変換します。
// 形が合わない場合は生テキストを保持した *domain.ParseError を返します。
func ParseClassification(raw string) (entity.Classification, error) {
	var p classificationPayload
	if err := llmjson.Decode(raw, &p); err != nil {
		return entity.Classification{}, domain.NewClassificationParseError(raw, err)
	}
	if p.IsClothing == nil {
		return entity.Classification{}, domain.NewClassificationParseError(raw, errors.New(`missing "isClothing"`))
	}

	var c entity.Classification
	c.IsClothing = *p.IsClothing
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Probability != nil {
		c.Probability = *p.Probability
	}
	if c.Probability < 0 || c.Probability > 1 {
		return entity.Classification{}, domain.NewClassificationParseError(raw, fmt.Errorf("probability %v out of range [0,1]", c.Probability))
	}
	if c.IsClothing && c.Name == "" {
		return entity.Classification{}, domain.NewClassificationParseError(raw, errors.New(`missing "name" for clothing`))
	}
	return c, nil
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"ecoscan_backend/internal/feature/ecoscan/domain"
)

// contentGenerator は genai.Models のうち本パッケージが利用するメソッドです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient はAPIキー認証でGemini APIクライアントを生成します。
// 設定が不足している場合は *domain.ConfigError を返します。
func NewClient(ctx context.Context, cfg Config, httpClient *http.Client) (*genai.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

// generate はモデルを呼び出し、レスポンスのテキスト部分を返します。
// 通信エラーやタイムアウトはステージ付きの *domain.InferenceError になります。
func generate(ctx context.Context, gen contentGenerator, stage domain.Stage, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := gen.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", &domain.InferenceError{Stage: stage, Err: fmt.Errorf("gemini API request failed: %w", err)}
	}
	if resp == nil {
		return "", &domain.InferenceError{Stage: stage, Err: errors.New("gemini API returned an empty response")}
	}
	return resp.Text(), nil
}

// Package gemini はGoogle Gemini APIを使用した衣類判定・カーボンフットプリント推定クライアントを提供します。
package gemini

import (
	"time"

	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/platform/config"
)

const (
	// DefaultVisionModel は画像判定に使用するマルチモーダルモデルです。
	DefaultVisionModel = "gemini-2.5-flash"
	// DefaultTextModel はフットプリント推定に使用するテキストモデルです。
	DefaultTextModel = "gemini-2.5-flash-lite"
	// DefaultTimeout は推論呼び出し1回あたりのタイムアウトです。
	DefaultTimeout = 30 * time.Second

	EnvAPIKey         = "GEMINI_API_KEY"
	EnvFallbackAPIKey = "GOOGLE_API_KEY"
	EnvVisionModel    = "GEMINI_VISION_MODEL"
	EnvTextModel      = "GEMINI_TEXT_MODEL"
	EnvBaseURL        = "GEMINI_BASE_URL"
	EnvTimeout        = "INFERENCE_TIMEOUT"
)

// Config holds configuration for the Gemini API client.
type Config struct {
	APIKey      string        // API key for authentication (never logged)
	VisionModel string        // model used by the garment classifier
	TextModel   string        // model used by the footprint estimator
	BaseURL     string        // optional endpoint override; empty uses the SDK default
	Timeout     time.Duration // per-call timeout
}

// LoadConfig loads Gemini configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:      config.GetEnv(EnvAPIKey, config.GetEnv(EnvFallbackAPIKey, "")),
		VisionModel: config.GetEnv(EnvVisionModel, DefaultVisionModel),
		TextModel:   config.GetEnv(EnvTextModel, DefaultTextModel),
		BaseURL:     config.GetEnv(EnvBaseURL, ""),
		Timeout:     config.GetDuration(EnvTimeout, DefaultTimeout),
	}
}

// Validate reports a *domain.ConfigError when a required value is missing.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return &domain.ConfigError{Key: EnvAPIKey}
	}
	if c.VisionModel == "" {
		return &domain.ConfigError{Key: EnvVisionModel}
	}
	if c.TextModel == "" {
		return &domain.ConfigError{Key: EnvTextModel}
	}
	if c.Timeout <= 0 {
		return &domain.ConfigError{Key: EnvTimeout, Reason: "must be positive"}
	}
	return nil
}

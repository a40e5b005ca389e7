// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"ecoscan_backend/internal/feature/ecoscan/adapters/gemini"
	"ecoscan_backend/internal/feature/ecoscan/adapters/vision"
	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/feature/ecoscan/transport/handler"
	"ecoscan_backend/internal/feature/ecoscan/usecase"
	"ecoscan_backend/internal/platform/config"
	infrahttp "ecoscan_backend/internal/platform/http"
)

const (
	// EnvClassifierBackend selects the garment classifier implementation.
	EnvClassifierBackend = "CLASSIFIER_BACKEND"

	BackendGemini = "gemini"
	BackendVision = "vision"
)

// NewScanHandler creates a fully configured ScanHandler.
// The returned cleanup func releases clients and must be called on shutdown.
func NewScanHandler(ctx context.Context) (*handler.ScanHandler, func(), error) {
	cfg := gemini.LoadConfig()
	client, err := NewGeminiClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	backend := strings.ToLower(config.GetEnv(EnvClassifierBackend, BackendGemini))
	classifier, cleanup, err := newClassifier(ctx, backend, client, cfg)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("scan pipeline configured",
		"classifier", backend,
		"vision_model", cfg.VisionModel,
		"text_model", cfg.TextModel,
		"timeout", cfg.Timeout,
	)

	estimator := gemini.NewFootprintEstimator(client, cfg.TextModel)
	uc := usecase.NewScanUsecase(classifier, estimator, cfg.Timeout)
	return handler.NewScanHandler(uc), cleanup, nil
}

// NewGeminiClient creates a Gemini client with the shared HTTP client settings.
func NewGeminiClient(ctx context.Context, cfg gemini.Config) (*genai.Client, error) {
	return gemini.NewClient(ctx, cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

func newClassifier(ctx context.Context, backend string, client *genai.Client, cfg gemini.Config) (usecase.GarmentClassifier, func(), error) {
	switch backend {
	case BackendGemini:
		return gemini.NewGarmentClassifier(client, cfg.VisionModel), func() {}, nil
	case BackendVision:
		v, err := vision.NewLabelClassifier(ctx)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := v.Close(); err != nil {
				slog.Warn("failed to close vision client", "error", err)
			}
		}
		return v, cleanup, nil
	default:
		return nil, nil, &domain.ConfigError{Key: EnvClassifierBackend, Reason: "unsupported backend " + backend}
	}
}

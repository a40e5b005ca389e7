// Command probe はGemini APIの認証情報とモデル設定の疎通を確認します。
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"ecoscan_backend/internal/app/di"
	"ecoscan_backend/internal/feature/ecoscan/adapters/gemini"
	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/platform/config"
	"ecoscan_backend/internal/platform/logger"
)

func main() {
	config.LoadEnv(".env")
	logger.Setup()

	if err := run(context.Background()); err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			slog.Error("configuration error", "error", err)
		} else {
			slog.Error("probe failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := gemini.LoadConfig()
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := di.NewGeminiClient(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("sending probe", "model", cfg.VisionModel)

	answer, err := gemini.Probe(ctx, client, cfg.VisionModel)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ecoscan_backend/internal/app/di"
	"ecoscan_backend/internal/app/router"
	"ecoscan_backend/internal/feature/ecoscan/domain"
	"ecoscan_backend/internal/platform/config"
	infrahttp "ecoscan_backend/internal/platform/http"
	"ecoscan_backend/internal/platform/logger"
)

const (
	defaultPort     = "5050"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .envを読み込む
	config.LoadEnv(".env")
	logger.Setup()
	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handler（クライアント・ユースケースを含む）
	scanH, cleanup, err := di.NewScanHandler(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			slog.Error("configuration error; set the variable and restart", "error", err)
		} else {
			slog.Error("failed to initialize scan pipeline", "error", err)
		}
		os.Exit(1)
	}
	defer cleanup()

	// ルータ生成
	r := router.NewRouter(scanH, router.CORSConfig(config.GetList("CORS_ALLOW_ORIGINS")))

	srv := &http.Server{
		Addr:              ":" + config.GetEnv("PORT", defaultPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := infrahttp.Run(ctx, srv, shutdownTimeout); err != nil {
		slog.Error("server stopped with error", "error", err)
		cleanup()
		os.Exit(1)
	}
	slog.Info("server stopped")
}

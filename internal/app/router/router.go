// Package router はHTTPルーティングとミドルウェア構成を定義します。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	scanhandler "ecoscan_backend/internal/feature/ecoscan/transport/handler"
	"ecoscan_backend/internal/platform/http/handler"
	"ecoscan_backend/internal/platform/http/middleware"
)

// CORSConfig は許可オリジンの一覧からCORS設定を生成します。
// 一覧が空または "*" を含む場合は全オリジンを許可します。
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func NewRouter(scan *scanhandler.ScanHandler, corsCfg cors.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), cors.New(corsCfg))

	// 登録済みパスへの非対応メソッドは404ではなく405
	r.HandleMethodNotAllowed = true
	r.NoMethod(handler.MethodNotAllowed)

	// 導通確認用
	handler.RegisterHealth(r, "/health", "/healthz")

	// 画像スキャン
	r.POST("/analyze-image", scan.AnalyzeImage)
	r.POST("/api/analyze-image", scan.AnalyzeImage)

	return r
}

// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoscan_backend/internal/api"
)

// Health はサービスヘルスチェック用の /health, /healthz エンドポイントを処理します。
// 推論呼び出しは一切行わず、固定のステータスを返します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// RegisterHealth はGET/HEAD/OPTIONSでヘルスチェックを登録します。
func RegisterHealth(r gin.IRoutes, paths ...string) {
	for _, p := range paths {
		r.GET(p, Health)
		r.HEAD(p, Health)
		r.OPTIONS(p, Health)
	}
}

// MethodNotAllowed は登録済みパスへの非対応メソッドに405を返します。
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, api.ErrorResponse{Error: "Method not allowed"})
}

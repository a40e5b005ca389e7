// Package middleware はgin用の共通ミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを伝搬するHTTPヘッダーです。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はgin.Contextに保存するリクエストIDのキーです。
	ContextRequestID = "requestID"
)

// RequestID はX-Request-IDを引き継ぐか新規発行し、レスポンスヘッダーとコンテキストに設定します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom はコンテキストのリクエストIDを返します。未設定の場合は空文字です。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// AccessLog はリクエストごとに1行のアクセスログをslogで出力します。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", RequestIDFrom(c),
			"remote_addr", c.ClientIP(),
		)
	}
}

// Package logger はアプリケーション全体で使用するslogロガーを構築します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New は指定されたレベルとフォーマット（"json" または "text"）でロガーを生成します。
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup は LOG_LEVEL / LOG_FORMAT からロガーを生成し、デフォルトロガーに設定します。
func Setup() *slog.Logger {
	l := New(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

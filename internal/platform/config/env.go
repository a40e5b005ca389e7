// Package config は環境変数と .env ファイルからの設定読み込みを提供します。
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv はカレントディレクトリの .env を読み込みます。
// ファイルが無い場合はシステムの環境変数のみを使用します。既存の環境変数は上書きしません。
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
}

// GetEnv は環境変数の値を返します。未設定または空の場合はdefaultValueを返します。
func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// GetDuration は環境変数を time.Duration として返します。
// 解析できない値や0以下の値の場合は警告を出してdefaultValueを返します。
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration in environment; using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return d
}

// GetList はカンマ区切りの環境変数をスライスとして返します。空要素は除外します。
func GetList(key string) []string {
	raw := GetEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package llmjson は言語モデルの自由記述レスポンスからJSONオブジェクトを取り出すユーティリティを提供します。
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmpty はフェンス除去後に何も残らなかったことを示します。
	ErrEmpty = errors.New("response is empty")
	// ErrNotObject はレスポンスがJSONオブジェクトでないことを示します。
	ErrNotObject = errors.New("response is not a JSON object")
)

// fencePattern はモデルが回答を包むMarkdownコードフェンス（```json と ```）にマッチします。
var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// StripFences はコードフェンス記号をすべて取り除き、前後の空白を削除します。
func StripFences(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

// Decode はフェンスを除去したテキストをJSONオブジェクトとしてvにデコードします。
// 失敗時は呼び出し側で生テキストを添えてエラーを返すこと。
func Decode(raw string, v any) error {
	cleaned := StripFences(raw)
	if cleaned == "" {
		return ErrEmpty
	}
	if !strings.HasPrefix(cleaned, "{") {
		return ErrNotObject
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

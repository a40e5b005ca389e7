// Package entity はecoscanフィーチャーのドメインモデルを定義します。
package entity

// ImagePayload はアップロードされた画像と、その宣言済みメディアタイプを表します。
// リクエストごとに生成され、推論呼び出しへのエンコード後に破棄されます。
type ImagePayload struct {
	Data      []byte // 画像バイト列
	MediaType string // 例: "image/png"
}

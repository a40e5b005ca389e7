// Package http は外部サービス呼び出しとHTTPサーバー運用のためのプラットフォーム部品を提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultClientTimeout はtimeoutが指定されなかった場合のリクエスト全体のタイムアウトです。
const DefaultClientTimeout = 30 * time.Second

// NewHTTPClient は推論APIなどの外部呼び出し用に設定されたHTTPクライアントを作成します。
//
// http.DefaultClientにはタイムアウトが無いため、SDKにも必ずこのクライアントを渡すこと。
// timeoutが0以下の場合はDefaultClientTimeoutを使用します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

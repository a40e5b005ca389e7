package http

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestRun_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ReturnsListenError(t *testing.T) {
	t.Parallel()

	srv := &http.Server{Addr: "invalid-address", ReadHeaderTimeout: time.Second}

	if err := Run(context.Background(), srv, time.Second); err == nil {
		t.Fatal("expected listen error, got nil")
	}
}

package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(Config{
		UserAgent:  "test-agent",
		Timeout:    2 * time.Second,
		TextMaxLen: 800,
	}, zap.NewNop())
}

func TestFetchMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Ravi Kumar">
			<meta property="og:image" content="https://cdn.example.com/p.jpg">
		</head><body>Profile of Ravi Kumar</body></html>`))
	}))
	defer srv.Close()

	meta, err := newTestFetcher().FetchMeta(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchMeta returned error: %v", err)
	}
	if meta.Title != "Ravi Kumar" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Image != "https://cdn.example.com/p.jpg" {
		t.Errorf("Image = %q", meta.Image)
	}
}

func TestFetchMetaServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := newTestFetcher().FetchMeta(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestFetchMetaContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestFetcher().FetchMeta(ctx, srv.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"smartdocs/internal/cache"
	"smartdocs/internal/hooks"
	"smartdocs/internal/httpapi"
	"smartdocs/internal/observers"
	"smartdocs/internal/smartdocs"
	"smartdocs/internal/store"
)

const weatherDoc = `{
  "name": "weather",
  "displayName": "Weather API",
  "baseUrl": "https://api.example.com/v1",
  "resources": [
    {"name": "forecast", "path": "/forecast", "methods": [
      {"name": "getForecast", "verb": "GET", "displayName": "Get forecast", "description": "Daily forecast"},
      {"name": "postForecast", "verb": "POST"}
    ]}
  ]
}`

// stack is a server backed by a sqlite file, so it can be restarted over the
// same data.
type stack struct {
	srv *httptest.Server
	svc *smartdocs.Service
}

func sqlitePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "smartdocs.db")
}

// newStack opens dbPath, installs cfg plus any extra observers and serves the
// API over httptest.
func newStack(t *testing.T, dbPath string, cfg observers.Config, extra func(*hooks.Registry) error) *stack {
	t.Helper()
	st, err := store.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	reg := hooks.NewRegistry()
	if err := observers.Install(reg, cfg, zerolog.Nop()); err != nil {
		t.Fatalf("install observers: %v", err)
	}
	if extra != nil {
		if err := extra(reg); err != nil {
			t.Fatalf("register observers: %v", err)
		}
	}
	svc := smartdocs.New(smartdocs.Config{
		Store:       st,
		Cache:       cache.NewMemory(0),
		Registry:    reg,
		Logger:      zerolog.Nop(),
		RecentLimit: 512,
	})
	reg.Seal()
	s := &stack{srv: httptest.NewServer(httpapi.NewMux(svc)), svc: svc}
	t.Cleanup(s.stop)
	return s
}

func (s *stack) stop() {
	if s.srv == nil {
		return
	}
	s.srv.Close()
	_ = s.svc.Close()
	s.srv = nil
}

func (s *stack) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, s.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	out, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, out
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

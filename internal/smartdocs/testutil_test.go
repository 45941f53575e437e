package smartdocs

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"smartdocs/internal/cache"
	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
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

func newTestService(t *testing.T) *Service {
	t.Helper()
	return newTestServiceWithStore(t, store.NewMemoryStore())
}

func newTestServiceWithStore(t *testing.T, st store.Store) *Service {
	t.Helper()
	svc := New(Config{
		Store:    st,
		Cache:    cache.NewMemory(0),
		Registry: hooks.NewRegistry(),
		Logger:   zerolog.Nop(),
	})
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

// fixture is a model with one revision, resource and method.
type fixture struct {
	Model    types.Model
	Revision types.Revision
	Resource types.Resource
	Method   types.Method
}

func seed(t *testing.T, svc *Service) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture
	f.Model = types.Model{Name: "weather", DisplayName: "Weather API"}
	require.NoError(t, svc.SaveModel(ctx, &f.Model))
	f.Revision = types.Revision{BaseURL: "https://api.example.com/v1/"}
	require.NoError(t, svc.SaveRevision(ctx, "weather", &f.Revision))
	f.Resource = types.Resource{Name: "forecast", Path: "/forecast"}
	require.NoError(t, svc.SaveResource(ctx, "weather", f.Revision.UUID, &f.Resource))
	f.Method = types.Method{Name: "getForecast", DisplayName: "Get forecast", Verb: "get"}
	require.NoError(t, svc.SaveMethod(ctx, "weather", f.Revision.UUID, f.Resource.UUID, &f.Method))
	return f
}

// eventLog collects strings appended by observers.
type eventLog struct {
	mu    sync.Mutex
	items []string
}

func (l *eventLog) add(s string) {
	l.mu.Lock()
	l.items = append(l.items, s)
	l.mu.Unlock()
}

func (l *eventLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.items...)
}

// logEvent registers an observer on e that appends e's name to l.
func logEvent[A any](t *testing.T, svc *Service, l *eventLog, e hooks.Event[A]) {
	t.Helper()
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), e, func(context.Context, A) error {
		l.add(e.Name())
		return nil
	}))
}

// recentNames returns the recorded event names, optionally keeping only those
// with one of the given prefixes.
func recentNames(svc *Service, prefixes ...string) []string {
	var out []string
	for _, r := range svc.RecentEvents() {
		if len(prefixes) == 0 {
			out = append(out, r.Name)
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(r.Name, p) {
				out = append(out, r.Name)
				break
			}
		}
	}
	return out
}

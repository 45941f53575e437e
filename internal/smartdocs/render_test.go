package smartdocs

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdocs/internal/hooks"
	"smartdocs/pkg/types"
)

func TestRenderMethod_AlterChainAndCache(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f := seed(t, svc)
	publish(t, svc, f.Method.UUID)

	calls := 0
	require.NoError(t, hooks.RegisterAlterFunc(svc.Registry(), hooks.ModelRenderAlter, func(_ context.Context, content *string, a hooks.RenderAlterArgs) error {
		calls++
		*content = strings.ReplaceAll(*content, "%node-title%", a.Node.Title)
		return nil
	}))
	require.NoError(t, hooks.RegisterAlterFunc(svc.Registry(), hooks.ModelRenderAlter, func(_ context.Context, content *string, _ hooks.RenderAlterArgs) error {
		if strings.Contains(*content, "%node-title%") {
			t.Errorf("second alterer saw unaltered content")
		}
		*content += "<!-- b -->"
		return nil
	}))

	html, err := svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 class="method-title">Get forecast</h1>`)
	assert.Contains(t, html, "https://api.example.com/v1/forecast")
	assert.Contains(t, html, ">GET<")
	assert.True(t, strings.HasSuffix(html, "<!-- b -->"))
	assert.Equal(t, 1, calls)

	again, err := svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Equal(t, html, again)
	assert.Equal(t, 1, calls, "cached render must not run alterers")

	m := f.Method
	m.Description = "Daily forecast"
	require.NoError(t, svc.SaveMethod(ctx, "weather", f.Revision.UUID, f.Resource.UUID, &m))
	html, err = svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, html, "Daily forecast")
}

func TestRenderMethod_WithoutNodeAndSchemes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f := seed(t, svc)
	require.NoError(t, svc.SaveSecurityScheme(ctx, "weather", "latest", &types.SecurityScheme{Name: "key", Type: "apikey", In: "header", ParamName: "X-Key"}))
	var node types.MethodNode
	require.NoError(t, hooks.RegisterAlterFunc(svc.Registry(), hooks.ModelRenderAlter, func(_ context.Context, _ *string, a hooks.RenderAlterArgs) error {
		node = a.Node
		return nil
	}))
	html, err := svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Zero(t, node.NID)
	assert.Equal(t, f.Model.UUID, node.ModelUUID)
	assert.Contains(t, html, `<li class="scheme-APIKEY">key</li>`)

	_, err = svc.RenderMethod(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestRenderMethod_CustomTemplate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f := seed(t, svc)
	_, err := svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)

	_, err = svc.SaveTemplate(ctx, "weather", `<p>{{.Method.Verb}} {{.Resource.Path}} {{.Model.DisplayName}}</p>`)
	require.NoError(t, err)
	html, err := svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Equal(t, "<p>GET /forecast Weather API</p>", html)

	_, err = svc.RevertTemplate(ctx, "weather")
	require.NoError(t, err)
	html, err = svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Contains(t, html, "smartdocs-method")
}

func TestRenderMethod_InvalidationDuringRenderIsNotCached(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f := seed(t, svc)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	require.NoError(t, hooks.RegisterAlterFunc(svc.Registry(), hooks.ModelRenderAlter, func(context.Context, *string, hooks.RenderAlterArgs) error {
		first := false
		once.Do(func() { first = true })
		if first {
			close(entered)
			<-release
		}
		return nil
	}))

	done := make(chan error, 1)
	go func() {
		_, err := svc.RenderMethod(ctx, f.Method.UUID)
		done <- err
	}()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("render never reached the alter hook")
	}
	_, err := svc.SaveTemplate(ctx, "weather", "<p>NEW {{.Method.Name}}</p>")
	require.NoError(t, err)
	close(release)
	require.NoError(t, <-done)

	html, err := svc.RenderMethod(ctx, f.Method.UUID)
	require.NoError(t, err)
	assert.Equal(t, "<p>NEW getForecast</p>", html)
}

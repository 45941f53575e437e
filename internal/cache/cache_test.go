package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	_, ok, err := c.Get(ctx, RenderKey("m1", "a"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, RenderKey("m1", "a"), "<p>a</p>"))
	require.NoError(t, c.Set(ctx, RenderKey("m1", "b"), "<p>b</p>"))
	require.NoError(t, c.Set(ctx, RenderKey("m2", "c"), "<p>c</p>"))

	v, ok, err := c.Get(ctx, RenderKey("m1", "a"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>a</p>", v)

	require.NoError(t, c.DeletePrefix(ctx, RenderPrefix("m1")))
	_, ok, _ = c.Get(ctx, RenderKey("m1", "a"))
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, RenderKey("m1", "b"))
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, RenderKey("m2", "c"))
	assert.True(t, ok)
}

func TestMemoryCache(t *testing.T) {
	exercise(t, NewMemory(0))
}

func TestMemoryCache_TTL(t *testing.T) {
	c := NewMemory(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(context.Background(), "k", "v"))
	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestRedisCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisWithClient(client, Config{TTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	exercise(t, c)

	require.NoError(t, c.Set(context.Background(), "ttl", "v"))
	srv.FastForward(2 * time.Minute)
	_, ok, err := c.Get(context.Background(), "ttl")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, srv.Exists("smartdocs:"+RenderKey("m2", "c")))
}

func TestNew_InMemoryRedis(t *testing.T) {
	c, err := New(Config{Driver: "redis", InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.(*Redis).Ping(context.Background()))
	exercise(t, c)
}

func TestNew_Drivers(t *testing.T) {
	c, err := New(Config{Driver: "none"})
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "k", "v"))
	_, ok, _ := c.Get(context.Background(), "k")
	assert.False(t, ok)

	_, err = New(Config{Driver: "memcached"})
	assert.Error(t, err)
}

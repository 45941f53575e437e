package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "smartdocs:"

var (
	inMemoryRedisMu     sync.Mutex
	inMemoryRedisServer *miniredis.Miniredis
)

// Redis stores rendered content in redis.
type Redis struct {
	client *redis.Client
	cfg    Config
}

// NewRedis dials cfg.Addr, or an embedded server when cfg.InMemory is set.
func NewRedis(cfg Config) (*Redis, error) {
	addr := cfg.Addr
	if cfg.InMemory {
		a, err := ensureInMemoryRedisAddr()
		if err != nil {
			return nil, err
		}
		addr = a
	}
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Redis{client: client, cfg: cfg}, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, cfg Config) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = defaultRedisPrefix
	}
	return &Redis{client: client, cfg: cfg}
}

func ensureInMemoryRedisAddr() (string, error) {
	inMemoryRedisMu.Lock()
	defer inMemoryRedisMu.Unlock()

	if inMemoryRedisServer != nil {
		return inMemoryRedisServer.Addr(), nil
	}

	server, err := miniredis.Run()
	if err != nil {
		return "", err
	}

	inMemoryRedisServer = server
	return inMemoryRedisServer.Addr(), nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.cfg.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.cfg.Prefix+key, value, r.cfg.TTL).Err()
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, r.cfg.Prefix+prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error { return r.client.Ping(ctx).Err() }

func (r *Redis) Close() error { return r.client.Close() }

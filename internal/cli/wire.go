package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"smartdocs/internal/cache"
	"smartdocs/internal/common/fsutil"
	"smartdocs/internal/config"
	"smartdocs/internal/hooks"
	"smartdocs/internal/observers"
	"smartdocs/internal/smartdocs"
	"smartdocs/internal/store"
)

const defaultSQLitePath = "~/.smartdocs/smartdocs.db"

func openStore(cfg config.StoreConfig) (store.Store, error) {
	dsn := cfg.DSN
	if cfg.Driver == "sqlite" {
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		p, err := fsutil.ExpandHome(dsn)
		if err != nil {
			return nil, err
		}
		if isSQLiteFile(p) {
			if err := fsutil.EnsureParentDir(p); err != nil {
				return nil, err
			}
		}
		dsn = p
	}
	st, err := store.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	return st, nil
}

// isSQLiteFile reports whether dsn names a plain database file rather than a
// file: URI or an in-memory database.
func isSQLiteFile(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

func openCache(cfg config.CacheConfig) (cache.Cache, error) {
	c, err := cache.New(cache.Config{
		Driver:   cfg.Driver,
		Addr:     cfg.RedisAddr,
		Password: cfg.Password,
		DB:       cfg.DB,
		InMemory: cfg.InMemory,
		TTL:      time.Duration(cfg.TTLSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Driver, err)
	}
	return c, nil
}

func observerConfig(cfg config.ObserversConfig) observers.Config {
	return observers.Config{
		Logging:           cfg.Logging,
		NodeTitle:         cfg.NodeTitle,
		DisplayNamePrefix: cfg.DisplayNamePrefix,
		TemplateFooter:    cfg.TemplateFooter,
	}
}

// buildService wires the store, the cache and the observers into a Service
// and seals its registry.
func buildService(cfg config.Config, log zerolog.Logger) (*smartdocs.Service, error) {
	st, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	c, err := openCache(cfg.Cache)
	if err != nil {
		return nil, multierr.Append(err, st.Close())
	}
	reg := hooks.NewRegistry()
	if err := observers.Install(reg, observerConfig(cfg.Observers), log); err != nil {
		return nil, multierr.Combine(err, st.Close(), c.Close())
	}
	svc := smartdocs.New(smartdocs.Config{
		Store:       st,
		Cache:       c,
		Registry:    reg,
		Logger:      log,
		RecentLimit: cfg.RecentEvents,
	})
	reg.Seal()
	log.Info().
		Str("store", cfg.Store.Driver).
		Str("cache", cfg.Cache.Driver).
		Int("observers", countObservers(reg)).
		Msg("service ready")
	return svc, nil
}

func countObservers(reg *hooks.Registry) int {
	n := 0
	for _, info := range hooks.Catalog(reg) {
		n += info.Observers
	}
	return n
}

// importDir imports every document of dir and logs one line per model.
func importDir(ctx context.Context, svc *smartdocs.Service, dir string, log zerolog.Logger) error {
	out, err := svc.ImportDir(ctx, dir)
	for _, r := range out {
		log.Info().Str("model", r.Model.Name).Int("revision", r.Revision.Number).Int("methods", len(r.Methods)).Msg("imported")
	}
	return err
}

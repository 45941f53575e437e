package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"smartdocs/internal/config"
	"smartdocs/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(o *options) *cobra.Command {
	var (
		addr          string
		importDirFlag string
		storeDriver   string
		storeDSN      string
		cacheDriver   string
		redisAddr     string
		corsOrigins   string
		maxBodyBytes  int64
		importTimeout int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Example: "  smartdocsd serve --addr :8080\n" +
			"  smartdocsd serve --store-driver sqlite --store-dsn ./smartdocs.db --import-dir ./models",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("addr") {
				o.cfg.Addr = addr
			}
			if f.Changed("import-dir") {
				o.cfg.ImportDir = importDirFlag
			}
			if f.Changed("store-driver") {
				o.cfg.Store.Driver = storeDriver
			}
			if f.Changed("store-dsn") {
				o.cfg.Store.DSN = storeDSN
			}
			if f.Changed("cache-driver") {
				o.cfg.Cache.Driver = cacheDriver
			}
			if f.Changed("redis-addr") {
				o.cfg.Cache.RedisAddr = redisAddr
			}
			if f.Changed("cors-origins") {
				o.cfg.HTTP.CORSEnabled = true
				o.cfg.HTTP.CORSAllowedOrigins = splitCSV(corsOrigins)
			}
			if f.Changed("max-body-bytes") {
				o.cfg.HTTP.MaxBodyBytes = maxBodyBytes
			}
			if err := o.cfg.Validate(); err != nil {
				return err
			}
			ln, err := net.Listen("tcp", o.cfg.Addr)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), o, ln, importTimeout)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults "+config.EnvAddr+" or :8080)")
	f.StringVar(&importDirFlag, "import-dir", "", "Directory of API documents imported at startup")
	f.StringVar(&storeDriver, "store-driver", "", "Store driver: memory|sqlite|postgres|mysql")
	f.StringVar(&storeDSN, "store-dsn", "", "Store DSN or sqlite path")
	f.StringVar(&cacheDriver, "cache-driver", "", "Render cache driver: memory|redis|none")
	f.StringVar(&redisAddr, "redis-addr", "", "Redis address for the redis cache")
	f.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	f.Int64Var(&maxBodyBytes, "max-body-bytes", 0, "Maximum JSON request body size")
	f.Int64Var(&importTimeout, "import-timeout", 0, "Seconds before POST /import times out (0 disables)")
	return cmd
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, o *options, ln net.Listener, importTimeoutSec int64) error {
	cfg := o.cfg
	svc, err := buildService(cfg, o.log)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			o.log.Warn().Err(err).Msg("close service")
		}
	}()
	if cfg.ImportDir != "" {
		if err := importDir(ctx, svc, cfg.ImportDir, o.log); err != nil {
			_ = ln.Close()
			return err
		}
	}

	httpapi.SetLogger(o.log)
	httpapi.SetRequestLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	httpapi.SetImportTimeoutSeconds(importTimeoutSec)
	httpapi.SetCORSOptions(cfg.HTTP.CORSEnabled, cfg.HTTP.CORSAllowedOrigins, cfg.HTTP.CORSAllowedMethods, cfg.HTTP.CORSAllowedHeaders)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		o.log.Info().Str("addr", ln.Addr().String()).Msg("smartdocs listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		o.log.Warn().Err(err).Msg("graceful shutdown error")
		return err
	}
	o.log.Info().Msg("smartdocs stopped")
	return nil
}

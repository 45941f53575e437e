// Package cli implements the smartdocsd command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"smartdocs/internal/config"
)

// Version is set at build time with -ldflags "-X smartdocs/internal/cli.Version=...".
var Version = "dev"

type options struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
	log zerolog.Logger
	out io.Writer
	err io.Writer
}

// Execute runs the command tree with the process arguments and returns the
// exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree writing command output to out and logs
// to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	o := &options{out: out, err: errOut, log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "smartdocsd",
		Short:         "API documentation models with lifecycle hooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to "+config.EnvConfig)
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults "+config.EnvLogLevel+" or info)")
	root.PersistentFlags().StringVar(&o.logFormat, "log-format", "", "Log format: json|console")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return o.load()
	}

	root.AddCommand(
		newServeCmd(o),
		newImportCmd(o),
		newHooksCmd(o),
		newEventsCmd(o),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintln(o.out, "smartdocsd", Version)
				return err
			},
		},
	)
	return root
}

// load resolves the configuration: file, then defaults, then environment,
// then flags.
func (o *options) load() error {
	path := o.configPath
	if path == "" {
		path = envStr(config.EnvConfig, "")
	}
	var cfg config.Config
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	cfg = cfg.Merge(config.Defaults())
	cfg.ApplyEnv(os.Getenv)
	if o.logLevel != "" {
		cfg.LogLevel = strings.ToLower(o.logLevel)
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.log = newLogger(cfg.LogLevel, cfg.LogFormat, o.err)
	if path != "" {
		o.log.Debug().Str("path", path).Msg("config loaded")
	}
	return nil
}

// splitCSV splits a comma-separated flag value, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var errNoPaths = errors.New("import requires at least one file or directory")

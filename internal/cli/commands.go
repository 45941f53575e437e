package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"smartdocs/internal/importer"
	"smartdocs/internal/smartdocs"
	"smartdocs/pkg/types"
)

func newImportCmd(o *options) *cobra.Command {
	var (
		modelName string
		source    string
	)
	cmd := &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Import API description documents into the configured store",
		Example: "  smartdocsd import ./models\n" +
			"  smartdocsd --config smartdocs.yaml import weather.json --model-name weather-eu",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoPaths
			}
			src, err := types.ParseImportSource(source)
			if err != nil {
				return err
			}
			svc, err := buildService(o.cfg, o.log)
			if err != nil {
				return err
			}
			defer svc.Close()
			enc := json.NewEncoder(o.out)
			for _, p := range args {
				fi, err := os.Stat(p)
				if err != nil {
					return err
				}
				if fi.IsDir() {
					out, err := svc.ImportDir(cmd.Context(), p)
					for _, r := range out {
						if eerr := enc.Encode(summary(r)); eerr != nil {
							return eerr
						}
					}
					if err != nil {
						return err
					}
					continue
				}
				doc, err := importer.LoadFile(p)
				if err != nil {
					return err
				}
				r, err := svc.ImportModel(cmd.Context(), smartdocs.ImportInput{
					Contents:    doc.Contents,
					ContentType: doc.ContentType,
					Format:      doc.Format,
					Source:      src,
					Name:        doc.Path,
					ModelName:   modelName,
				})
				if err != nil {
					return fmt.Errorf("import %s: %w", p, err)
				}
				if err := enc.Encode(summary(r)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelName, "model-name", "", "Model name overriding the one in a single document")
	cmd.Flags().StringVar(&source, "source", "file", "Import source recorded on the event: file|url")
	return cmd
}

type importSummary struct {
	Model     string `json:"model"`
	UUID      string `json:"uuid"`
	Revision  int    `json:"revision"`
	Resources int    `json:"resources"`
	Methods   int    `json:"methods"`
}

func summary(r types.ImportResponse) importSummary {
	return importSummary{
		Model:     r.Model.Name,
		UUID:      r.Model.UUID,
		Revision:  r.Revision.Number,
		Resources: len(r.Resources),
		Methods:   len(r.Methods),
	}
}

func newHooksCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hooks",
		Short: "List the hook events and the observers the configuration installs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(o.cfg, o.log)
			if err != nil {
				return err
			}
			defer svc.Close()
			tw := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EVENT\tOBSERVERS\tKIND")
			for _, info := range svc.HookCatalog() {
				kind := "notify"
				if info.Mutating {
					kind = "alter"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Name, info.Observers, kind)
			}
			return tw.Flush()
		},
	}
}

func newEventsCmd(o *options) *cobra.Command {
	var (
		server string
		prefix string
		count  int
	)
	cmd := &cobra.Command{
		Use:     "events",
		Short:   "Stream hook events from a running server as JSON lines",
		Example: "  smartdocsd events --server http://localhost:8080 --prefix method.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := eventsURL(server, prefix)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
			if err != nil {
				return fmt.Errorf("connect %s: %w", u, err)
			}
			defer conn.Close()
			go func() {
				<-ctx.Done()
				_ = conn.Close()
			}()
			o.log.Debug().Str("url", u).Msg("streaming events")
			for n := 0; count <= 0 || n < count; n++ {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
						return nil
					}
					return err
				}
				if _, err := fmt.Fprintln(o.out, strings.TrimSpace(string(msg))); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "Base URL of a running smartdocsd")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only stream events whose name starts with this prefix")
	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 streams until interrupted)")
	return cmd
}

// eventsURL turns a server base URL into its websocket event stream URL.
func eventsURL(server, prefix string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server scheme %q", u.Scheme)
	}
	u.Path += "/events"
	if prefix != "" {
		u.RawQuery = url.Values{"prefix": {prefix}}.Encode()
	}
	return u.String(), nil
}

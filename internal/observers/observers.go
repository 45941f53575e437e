// Package observers contains the observers shipped with smartdocs and the
// Install function that registers the configured set at startup.
package observers

import (
	"context"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"smartdocs/internal/hooks"
)

// NodeTitleToken is replaced by the node title in rendered method pages.
const NodeTitleToken = "%node-title%"

// Config selects the observers Install registers.
type Config struct {
	// Logging logs every dispatched event.
	Logging bool
	// NodeTitle replaces NodeTitleToken in rendered pages.
	NodeTitle bool
	// DisplayNamePrefix is prepended to model display names on save.
	DisplayNamePrefix string
	// TemplateFooter is appended to model templates on save.
	TemplateFooter string
}

// Install registers the observers enabled in cfg. It must run before the
// registry is sealed.
func Install(reg *hooks.Registry, cfg Config, log zerolog.Logger) error {
	if cfg.Logging {
		if err := NewLogging(log).Register(reg); err != nil {
			return err
		}
	}
	if cfg.NodeTitle {
		if err := hooks.RegisterAlter[hooks.RenderAlterArgs](reg, hooks.ModelRenderAlter, NodeTitle{}); err != nil {
			return err
		}
	}
	if cfg.DisplayNamePrefix != "" {
		if err := hooks.Register[hooks.ModelSaveArgs](reg, hooks.ModelSavePre, DisplayNamePrefix(cfg.DisplayNamePrefix)); err != nil {
			return err
		}
	}
	if cfg.TemplateFooter != "" {
		if err := hooks.Register[hooks.TemplateSaveArgs](reg, hooks.TemplateSavePre, TemplateFooter(cfg.TemplateFooter)); err != nil {
			return err
		}
	}
	log.Debug().
		Bool("logging", cfg.Logging).
		Bool("node_title", cfg.NodeTitle).
		Bool("display_name_prefix", cfg.DisplayNamePrefix != "").
		Bool("template_footer", cfg.TemplateFooter != "").
		Msg("observers installed")
	return nil
}

// NodeTitle fills NodeTitleToken with the HTML-escaped node title.
type NodeTitle struct{}

func (NodeTitle) Alter(_ context.Context, content *string, a hooks.RenderAlterArgs) error {
	*content = strings.ReplaceAll(*content, NodeTitleToken, html.EscapeString(a.Node.Title))
	return nil
}

// DisplayNamePrefix prefixes the display name of a model being saved, once.
type DisplayNamePrefix string

func (p DisplayNamePrefix) Handle(_ context.Context, a hooks.ModelSaveArgs) error {
	prefix := string(p)
	if a.Model == nil || strings.HasPrefix(a.Model.DisplayName, prefix) {
		return nil
	}
	name := a.Model.DisplayName
	if name == "" {
		name = a.Model.Name
	}
	a.Model.DisplayName = prefix + name
	return nil
}

// TemplateFooter appends a footer to a template being saved, once.
type TemplateFooter string

func (f TemplateFooter) Handle(_ context.Context, a hooks.TemplateSaveArgs) error {
	if a.Content == nil || strings.HasSuffix(*a.Content, string(f)) {
		return nil
	}
	*a.Content += string(f)
	return nil
}

package observers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"smartdocs/internal/hooks"
)

// Logging writes one log line per dispatched event: debug for pre events,
// info for everything else. Only identifiers are logged, never entity bodies
// or credentials.
type Logging struct {
	log zerolog.Logger
}

// NewLogging returns a Logging observer writing to l.
func NewLogging(l zerolog.Logger) *Logging {
	return &Logging{log: l.With().Str("component", "hooks").Logger()}
}

func (o *Logging) event(name string) *zerolog.Event {
	if strings.HasSuffix(name, ".pre") {
		return o.log.Debug().Str("event", name)
	}
	return o.log.Info().Str("event", name)
}

// Register attaches o to every event of the catalog.
func (o *Logging) Register(reg *hooks.Registry) error {
	return multierr.Combine(
		logOn(reg, o, hooks.ModelUpdate),
		hooks.RegisterAlterFunc(reg, hooks.ModelRenderAlter, func(_ context.Context, content *string, a hooks.RenderAlterArgs) error {
			o.event(hooks.ModelRenderAlter.Name()).Int64("nid", a.Node.NID).Int("bytes", len(*content)).Msg("hook")
			return nil
		}),
		logOn(reg, o, hooks.MethodSavePre),
		logOn(reg, o, hooks.MethodSavePost),
		logOn(reg, o, hooks.MethodDeletePre),
		logOn(reg, o, hooks.MethodDeletePost),
		logOn(reg, o, hooks.MethodNodeSavePre),
		logOn(reg, o, hooks.MethodNodeSavePost),
		logOn(reg, o, hooks.MethodNodeActionPre),
		logOn(reg, o, hooks.MethodNodeActionPost),
		logOn(reg, o, hooks.MethodNodeDeletePre),
		logOn(reg, o, hooks.MethodNodeDeletePost),
		logOn(reg, o, hooks.ModelSavePre),
		logOn(reg, o, hooks.ModelSavePost),
		logOn(reg, o, hooks.ModelDeletePre),
		logOn(reg, o, hooks.ModelDeletePost),
		logOn(reg, o, hooks.TemplateSavePre),
		logOn(reg, o, hooks.TemplateSavePost),
		logOn(reg, o, hooks.TemplateReverted),
		logOn(reg, o, hooks.ModelImport),
		logOn(reg, o, hooks.ImportResourcesSavePre),
		logOn(reg, o, hooks.ImportResourcesSavePost),
		logOn(reg, o, hooks.ImportMethodsSavePre),
		logOn(reg, o, hooks.ImportMethodsSavePost),
		logOn(reg, o, hooks.ResourceSavePre),
		logOn(reg, o, hooks.ResourceSavePost),
		logOn(reg, o, hooks.ResourceDeletePre),
		logOn(reg, o, hooks.ResourceDeletePost),
		logOn(reg, o, hooks.TemplateAuthSchemeSavePre),
		logOn(reg, o, hooks.TemplateAuthSchemeSavePost),
		logOn(reg, o, hooks.TemplateAuthSchemeDeletePre),
		logOn(reg, o, hooks.TemplateAuthSchemeDeletePost),
		logOn(reg, o, hooks.SecuritySchemeSavePre),
		logOn(reg, o, hooks.SecuritySchemeSavePost),
		logOn(reg, o, hooks.SecurityDeletePre),
		logOn(reg, o, hooks.SecurityDeletePost),
		logOn(reg, o, hooks.RevisionSavePre),
		logOn(reg, o, hooks.RevisionSavePost),
	)
}

func logOn[A any](reg *hooks.Registry, o *Logging, e hooks.Event[A]) error {
	return hooks.RegisterFunc(reg, e, func(_ context.Context, args A) error {
		withFields(o.event(e.Name()), args).Msg("hook")
		return nil
	})
}

// withFields adds the identifying fields of an argument struct.
func withFields(ev *zerolog.Event, args any) *zerolog.Event {
	switch a := args.(type) {
	case hooks.ModelUpdateArgs:
		return ev.Str("model_uuid", a.ModelUUID)
	case hooks.MethodSaveArgs:
		return ev.Str("model", a.ModelName).Str("method", a.Method.Name).Str("method_uuid", a.Method.UUID).Bool("update", a.IsUpdate)
	case hooks.MethodDeleteArgs:
		return ev.Str("model_uuid", a.ModelUUID).Str("method", a.Method.Name).Str("method_uuid", a.Method.UUID)
	case hooks.MethodNodeSaveArgs:
		return ev.Str("model", a.Model.Name).Str("method", a.Method.Name).Int64("nid", a.Node.NID).Str("title", a.Node.Title)
	case hooks.MethodNodeActionArgs:
		return ev.Str("model_uuid", a.ModelUUID).Str("method", a.Method.Name).Int64("nid", a.NodeID).Str("action", string(a.Action))
	case hooks.MethodNodeDeleteArgs:
		return ev.Str("model_uuid", a.ModelUUID).Str("method_uuid", a.MethodUUID).Int64("nid", a.NodeID)
	case hooks.ModelSaveArgs:
		return ev.Str("model", a.Model.Name).Str("model_uuid", a.Model.UUID)
	case hooks.ModelDeleteArgs:
		return ev.Str("model", a.ModelName)
	case hooks.TemplateSaveArgs:
		return ev.Str("model", a.ModelName).Int("bytes", len(*a.Content))
	case hooks.TemplateRevertedArgs:
		return ev.Str("model", a.ModelName)
	case hooks.ModelImportArgs:
		return ev.Str("model", a.Model.Name).Str("format", string(a.Format)).Str("content_type", string(a.ContentType)).Str("source", string(a.Source)).Int("bytes", len(a.Contents))
	case hooks.ImportResourcesArgs:
		return ev.Str("model", a.Model.Name).Int("revision", a.Revision.Number).Int("resources", len(a.Resources))
	case hooks.ImportMethodsArgs:
		return ev.Str("model", a.Model.Name).Int("revision", a.Revision.Number).Int("methods", len(a.Methods))
	case hooks.ResourceSaveArgs:
		return ev.Str("model", a.Model.Name).Str("resource", a.Resource.Name).Str("resource_uuid", a.Resource.UUID).Bool("update", a.IsUpdate)
	case hooks.ResourceDeleteArgs:
		return ev.Str("model", a.ModelName).Str("resource", a.Resource.Name).Str("resource_uuid", a.Resource.UUID)
	case hooks.TemplateAuthSchemeSaveArgs:
		return ev.Str("model_uuid", a.ModelUUID).Str("scheme", a.Scheme.Name).Str("type", a.Scheme.Type).Bool("update", a.IsUpdate)
	case hooks.TemplateAuthSchemeDeleteArgs:
		return ev.Str("model_uuid", a.ModelUUID).Str("scheme", a.SchemeName)
	case hooks.SecuritySchemeSaveArgs:
		return ev.Str("model", a.Model.Name).Int("revision", a.Revision.Number).Str("scheme", a.Scheme.Name).Bool("update", a.IsUpdate)
	case hooks.SecurityDeleteArgs:
		return ev.Str("model_uuid", a.ModelUUID).Str("revision_uuid", a.RevisionUUID).Str("scheme", a.Scheme.Name)
	case hooks.RevisionSaveArgs:
		return ev.Str("model", a.Model.Name).Int("revision", a.Revision.Number).Str("revision_uuid", a.Revision.UUID)
	}
	return ev
}

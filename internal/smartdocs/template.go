package smartdocs

import (
	"context"
	"errors"
	"html/template"

	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// templateContent returns the custom template of a model, or DefaultTemplate
// with isDefault set when there is none.
func (s *Service) templateContent(ctx context.Context, modelUUID string) (content string, isDefault bool, err error) {
	c, err := s.store.GetTemplate(ctx, modelUUID)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultTemplate, true, nil
	}
	if err != nil {
		return "", false, err
	}
	return c, false, nil
}

// GetTemplate returns the template a model renders with.
func (s *Service) GetTemplate(ctx context.Context, modelName string) (types.Template, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return types.Template{}, err
	}
	c, isDefault, err := s.templateContent(ctx, m.UUID)
	if err != nil {
		return types.Template{}, err
	}
	return types.Template{ModelName: m.Name, Content: c, Default: isDefault}, nil
}

// SaveTemplate stores a custom template for a model. template.save.pre may
// rewrite the content; the rewritten content must still parse.
func (s *Service) SaveTemplate(ctx context.Context, modelName, content string) (types.Template, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return types.Template{}, err
	}
	args := hooks.TemplateSaveArgs{ModelName: m.Name, Content: &content}
	if err := hooks.Dispatch(ctx, s.reg, hooks.TemplateSavePre, args); err != nil {
		return types.Template{}, err
	}
	if _, err := template.New(m.Name).Parse(content); err != nil {
		return types.Template{}, ErrInvalid("invalid template", err)
	}
	if err := s.store.PutTemplate(ctx, m.UUID, content); err != nil {
		return types.Template{}, err
	}
	s.invalidate(ctx, m.UUID)
	s.log.Debug().Str("model", m.Name).Int("bytes", len(content)).Msg("template saved")
	saved := types.Template{ModelName: m.Name, Content: content}
	return saved, hooks.Dispatch(ctx, s.reg, hooks.TemplateSavePost, args)
}

// RevertTemplate drops the custom template of a model so it renders with
// DefaultTemplate again.
func (s *Service) RevertTemplate(ctx context.Context, modelName string) (types.Template, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return types.Template{}, err
	}
	if err := s.store.DeleteTemplate(ctx, m.UUID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return types.Template{}, err
	}
	s.invalidate(ctx, m.UUID)
	s.log.Debug().Str("model", m.Name).Msg("template reverted")
	reverted := types.Template{ModelName: m.Name, Content: DefaultTemplate, Default: true}
	return reverted, hooks.Dispatch(ctx, s.reg, hooks.TemplateReverted, hooks.TemplateRevertedArgs{ModelName: m.Name})
}

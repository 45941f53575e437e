package smartdocs

import (
	"context"
	"errors"
	"strings"

	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// GetTemplateAuth returns the template auth configuration of a model.
func (s *Service) GetTemplateAuth(ctx context.Context, modelName string) (types.TemplateAuth, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return types.TemplateAuth{}, err
	}
	return s.store.GetTemplateAuth(ctx, m.UUID)
}

// SaveTemplateAuthScheme creates or replaces a template auth scheme by name.
func (s *Service) SaveTemplateAuthScheme(ctx context.Context, modelName string, sc *types.TemplateAuthScheme) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	ta, err := s.store.GetTemplateAuth(ctx, m.UUID)
	if err != nil {
		return err
	}
	_, isUpdate := ta.Scheme(sc.Name)
	args := hooks.TemplateAuthSchemeSaveArgs{TemplateAuth: ta, Scheme: sc, ModelUUID: m.UUID, IsUpdate: isUpdate}
	if err := hooks.Dispatch(ctx, s.reg, hooks.TemplateAuthSchemeSavePre, args); err != nil {
		return err
	}
	sc.Type = strings.ToUpper(strings.TrimSpace(sc.Type))
	if err := validate("template auth scheme", sc); err != nil {
		return err
	}
	if err := s.store.PutTemplateAuthScheme(ctx, m.UUID, *sc); err != nil {
		return err
	}
	s.invalidate(ctx, m.UUID)
	if args.TemplateAuth, err = s.store.GetTemplateAuth(ctx, m.UUID); err != nil {
		return err
	}
	s.log.Debug().Str("model", m.Name).Str("scheme", sc.Name).Bool("update", isUpdate).Msg("template auth scheme saved")
	return hooks.Dispatch(ctx, s.reg, hooks.TemplateAuthSchemeSavePost, args)
}

// DeleteTemplateAuthScheme removes a template auth scheme by name.
func (s *Service) DeleteTemplateAuthScheme(ctx context.Context, modelName, schemeName string) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	ta, err := s.store.GetTemplateAuth(ctx, m.UUID)
	if err != nil {
		return err
	}
	if _, ok := ta.Scheme(schemeName); !ok {
		return ErrNotFound("template auth scheme", m.Name+"/"+schemeName)
	}
	args := hooks.TemplateAuthSchemeDeleteArgs{SchemeName: schemeName, ModelUUID: m.UUID}
	if err := hooks.Dispatch(ctx, s.reg, hooks.TemplateAuthSchemeDeletePre, args); err != nil {
		return err
	}
	if err := s.store.DeleteTemplateAuthScheme(ctx, m.UUID, schemeName); err != nil {
		return lookupErr(err, "template auth scheme", schemeName)
	}
	s.invalidate(ctx, m.UUID)
	s.log.Debug().Str("model", m.Name).Str("scheme", schemeName).Msg("template auth scheme deleted")
	return hooks.Dispatch(ctx, s.reg, hooks.TemplateAuthSchemeDeletePost, args)
}

// ListSecuritySchemes returns the security schemes of a revision.
func (s *Service) ListSecuritySchemes(ctx context.Context, modelName, revisionRef string) ([]types.SecurityScheme, error) {
	rev, err := s.GetRevision(ctx, modelName, revisionRef)
	if err != nil {
		return nil, err
	}
	out, err := s.store.ListSecuritySchemes(ctx, rev.UUID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.SecurityScheme{}
	}
	return out, nil
}

// SaveSecurityScheme creates or replaces a security scheme of a revision.
func (s *Service) SaveSecurityScheme(ctx context.Context, modelName, revisionRef string, sc *types.SecurityScheme) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	rev, err := s.resolveRevision(ctx, m, revisionRef)
	if err != nil {
		return err
	}
	sc.RevisionUUID = rev.UUID
	isUpdate := true
	if _, err := s.store.GetSecurityScheme(ctx, rev.UUID, sc.Name); errors.Is(err, store.ErrNotFound) {
		isUpdate = false
	} else if err != nil {
		return err
	}
	args := hooks.SecuritySchemeSaveArgs{Scheme: sc, Model: m, Revision: rev, IsUpdate: isUpdate}
	if err := hooks.Dispatch(ctx, s.reg, hooks.SecuritySchemeSavePre, args); err != nil {
		return err
	}
	sc.RevisionUUID = rev.UUID
	sc.Type = strings.ToUpper(strings.TrimSpace(sc.Type))
	if err := validate("security scheme", sc); err != nil {
		return err
	}
	if err := s.store.PutSecurityScheme(ctx, *sc); err != nil {
		return err
	}
	s.invalidate(ctx, m.UUID)
	s.log.Debug().Str("model", m.Name).Str("scheme", sc.Name).Bool("update", isUpdate).Msg("security scheme saved")
	return hooks.Dispatch(ctx, s.reg, hooks.SecuritySchemeSavePost, args)
}

// DeleteSecurityScheme removes a security scheme of a revision.
func (s *Service) DeleteSecurityScheme(ctx context.Context, modelName, revisionRef, schemeName string) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	rev, err := s.resolveRevision(ctx, m, revisionRef)
	if err != nil {
		return err
	}
	sc, err := s.store.GetSecurityScheme(ctx, rev.UUID, schemeName)
	if err != nil {
		return lookupErr(err, "security scheme", schemeName)
	}
	args := hooks.SecurityDeleteArgs{Scheme: &sc, ModelUUID: m.UUID, RevisionUUID: rev.UUID}
	if err := hooks.Dispatch(ctx, s.reg, hooks.SecurityDeletePre, args); err != nil {
		return err
	}
	if err := s.store.DeleteSecurityScheme(ctx, rev.UUID, schemeName); err != nil {
		return lookupErr(err, "security scheme", schemeName)
	}
	s.invalidate(ctx, m.UUID)
	s.log.Debug().Str("model", m.Name).Str("scheme", schemeName).Msg("security scheme deleted")
	return hooks.Dispatch(ctx, s.reg, hooks.SecurityDeletePost, args)
}

package smartdocs

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/multierr"

	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// GetModel returns a model by name or UUID.
func (s *Service) GetModel(ctx context.Context, nameOrUUID string) (types.Model, error) {
	return s.model(ctx, nameOrUUID)
}

// ListModels returns every model sorted by name.
func (s *Service) ListModels(ctx context.Context) ([]types.Model, error) {
	ms, err := s.store.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []types.Model{}
	}
	return ms, nil
}

// SaveModel creates m when m.UUID is empty and updates it otherwise. On
// create the UUID and timestamps are assigned after model.save.pre, so
// presave observers see the model as submitted.
func (s *Service) SaveModel(ctx context.Context, m *types.Model) error {
	committed, err := s.saveModel(ctx, m)
	if !committed {
		return err
	}
	return multierr.Combine(err, s.modelUpdated(ctx, m.UUID))
}

// saveModel reports whether the model was written. A false result means the
// error came from lookup, a pre observer or validation.
func (s *Service) saveModel(ctx context.Context, m *types.Model) (bool, error) {
	isUpdate := m.UUID != ""
	if isUpdate {
		if _, err := s.model(ctx, m.UUID); err != nil {
			return false, err
		}
	}
	if err := hooks.Dispatch(ctx, s.reg, hooks.ModelSavePre, hooks.ModelSaveArgs{Model: m}); err != nil {
		return false, err
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	if err := validate("model", m); err != nil {
		return false, err
	}

	s.mu.Lock()
	err := s.putModelLocked(ctx, m, isUpdate)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.log.Debug().Str("model", m.Name).Str("uuid", m.UUID).Bool("update", isUpdate).Msg("model saved")
	return true, hooks.Dispatch(ctx, s.reg, hooks.ModelSavePost, hooks.ModelSaveArgs{Model: m})
}

func (s *Service) putModelLocked(ctx context.Context, m *types.Model, isUpdate bool) error {
	other, err := s.store.GetModel(ctx, m.Name)
	switch {
	case err == nil && other.UUID != m.UUID:
		return conflictError{msg: "model name already in use: " + m.Name}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return err
	}
	now := s.now()
	if isUpdate {
		cur, err := s.store.GetModel(ctx, m.UUID)
		if err != nil {
			return lookupErr(err, "model", m.UUID)
		}
		m.CreatedAt = cur.CreatedAt
		m.LatestRevisionNumber = cur.LatestRevisionNumber
	} else {
		m.UUID = s.newID()
		m.CreatedAt = now
		m.LatestRevisionNumber = 0
	}
	m.ModifiedAt = now
	return s.store.PutModel(ctx, *m)
}

// DeleteModel removes a model with its revisions, resources, methods, nodes,
// schemes and template.
func (s *Service) DeleteModel(ctx context.Context, name string) error {
	m, err := s.model(ctx, name)
	if err != nil {
		return err
	}
	args := hooks.ModelDeleteArgs{ModelName: m.Name}
	if err := hooks.Dispatch(ctx, s.reg, hooks.ModelDeletePre, args); err != nil {
		return err
	}
	if err := s.store.DeleteModel(ctx, m.UUID); err != nil {
		return lookupErr(err, "model", name)
	}
	s.log.Debug().Str("model", m.Name).Msg("model deleted")
	return multierr.Combine(
		hooks.Dispatch(ctx, s.reg, hooks.ModelDeletePost, args),
		s.modelUpdated(ctx, m.UUID),
	)
}

package smartdocs

import (
	"context"

	"go.uber.org/multierr"

	"smartdocs/internal/hooks"
	"smartdocs/pkg/types"
)

// ListResources returns the resources of a revision.
func (s *Service) ListResources(ctx context.Context, modelName, revisionRef string) ([]types.Resource, error) {
	rev, err := s.GetRevision(ctx, modelName, revisionRef)
	if err != nil {
		return nil, err
	}
	res, err := s.store.ListResources(ctx, rev.UUID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []types.Resource{}
	}
	return res, nil
}

// SaveResource creates or updates a resource of a revision.
func (s *Service) SaveResource(ctx context.Context, modelName, revisionRef string, res *types.Resource) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	rev, err := s.resolveRevision(ctx, m, revisionRef)
	if err != nil {
		return err
	}
	committed, err := s.saveResource(ctx, m, rev, res)
	if !committed {
		return err
	}
	return multierr.Combine(err, s.modelUpdated(ctx, m.UUID))
}

func (s *Service) saveResource(ctx context.Context, m types.Model, rev types.Revision, res *types.Resource) (bool, error) {
	isUpdate := res.UUID != ""
	if isUpdate {
		if _, err := s.resourceOf(ctx, rev, res.UUID); err != nil {
			return false, err
		}
	}
	res.RevisionUUID = rev.UUID
	args := hooks.ResourceSaveArgs{Resource: res, Revision: rev, Model: m, IsUpdate: isUpdate}
	if err := hooks.Dispatch(ctx, s.reg, hooks.ResourceSavePre, args); err != nil {
		return false, err
	}
	res.RevisionUUID = rev.UUID
	if res.DisplayName == "" {
		res.DisplayName = res.Name
	}
	if err := validate("resource", res); err != nil {
		return false, err
	}
	if !isUpdate {
		res.UUID = s.newID()
	}
	if err := s.store.PutResource(ctx, *res); err != nil {
		return false, err
	}
	s.log.Debug().Str("model", m.Name).Str("resource", res.Name).Bool("update", isUpdate).Msg("resource saved")
	return true, hooks.Dispatch(ctx, s.reg, hooks.ResourceSavePost, args)
}

// DeleteResource removes a resource together with its methods and their
// nodes. Only the resource hooks fire; no per-method hooks are dispatched
// for the cascade.
func (s *Service) DeleteResource(ctx context.Context, modelName, revisionRef, resourceUUID string) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	rev, err := s.resolveRevision(ctx, m, revisionRef)
	if err != nil {
		return err
	}
	res, err := s.resourceOf(ctx, rev, resourceUUID)
	if err != nil {
		return err
	}
	args := hooks.ResourceDeleteArgs{Resource: &res, RevisionUUID: rev.UUID, ModelName: m.Name}
	if err := hooks.Dispatch(ctx, s.reg, hooks.ResourceDeletePre, args); err != nil {
		return err
	}
	if err := s.store.DeleteResource(ctx, res.UUID); err != nil {
		return lookupErr(err, "resource", res.UUID)
	}
	s.log.Debug().Str("model", m.Name).Str("resource", res.Name).Msg("resource deleted")
	return multierr.Combine(
		hooks.Dispatch(ctx, s.reg, hooks.ResourceDeletePost, args),
		s.modelUpdated(ctx, m.UUID),
	)
}

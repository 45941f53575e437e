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

// GetMethod returns a method by UUID.
func (s *Service) GetMethod(ctx context.Context, methodUUID string) (types.Method, error) {
	m, err := s.store.GetMethod(ctx, methodUUID)
	if err != nil {
		return types.Method{}, lookupErr(err, "method", methodUUID)
	}
	return m, nil
}

// ListMethods returns the methods of a resource.
func (s *Service) ListMethods(ctx context.Context, modelName, revisionRef, resourceUUID string) ([]types.Method, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return nil, err
	}
	rev, err := s.resolveRevision(ctx, m, revisionRef)
	if err != nil {
		return nil, err
	}
	res, err := s.resourceOf(ctx, rev, resourceUUID)
	if err != nil {
		return nil, err
	}
	ms, err := s.store.ListMethods(ctx, res.UUID)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []types.Method{}
	}
	return ms, nil
}

// SaveMethod creates or updates a method of a resource.
func (s *Service) SaveMethod(ctx context.Context, modelName, revisionRef, resourceUUID string, meth *types.Method) error {
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
	committed, err := s.saveMethod(ctx, m, rev, res, meth)
	if !committed {
		return err
	}
	return multierr.Combine(err, s.modelUpdated(ctx, m.UUID))
}

func (s *Service) saveMethod(ctx context.Context, m types.Model, rev types.Revision, res types.Resource, meth *types.Method) (bool, error) {
	isUpdate := meth.UUID != ""
	if isUpdate {
		cur, err := s.store.GetMethod(ctx, meth.UUID)
		if err != nil {
			return false, lookupErr(err, "method", meth.UUID)
		}
		if cur.ResourceUUID != res.UUID {
			return false, ErrNotFound("method", res.UUID+"/"+meth.UUID)
		}
	}
	meth.ResourceUUID = res.UUID
	args := hooks.MethodSaveArgs{
		Method:       meth,
		ModelName:    m.Name,
		RevisionUUID: rev.UUID,
		ResourceUUID: res.UUID,
		IsUpdate:     isUpdate,
	}
	if err := hooks.Dispatch(ctx, s.reg, hooks.MethodSavePre, args); err != nil {
		return false, err
	}
	meth.ResourceUUID = res.UUID
	meth.Verb = strings.ToUpper(strings.TrimSpace(meth.Verb))
	if meth.DisplayName == "" {
		meth.DisplayName = meth.Name
	}
	if err := validate("method", meth); err != nil {
		return false, err
	}
	if !isUpdate {
		meth.UUID = s.newID()
	}
	if err := s.store.PutMethod(ctx, *meth); err != nil {
		return false, err
	}
	s.log.Debug().Str("model", m.Name).Str("method", meth.Name).Bool("update", isUpdate).Msg("method saved")
	return true, hooks.Dispatch(ctx, s.reg, hooks.MethodSavePost, args)
}

// DeleteMethod removes a method. When the method has a node, action decides
// what happens to it (empty means delete); the node action runs between
// method.delete.pre and the removal of the method, and any error from it
// leaves the method in place.
func (s *Service) DeleteMethod(ctx context.Context, modelName, revisionRef, resourceUUID, methodUUID string, action types.NodeAction) error {
	if action == "" {
		action = types.NodeActionDelete
	}
	if _, err := types.ParseNodeAction(string(action)); err != nil {
		return ErrInvalid("invalid node action", err)
	}
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
	meth, err := s.store.GetMethod(ctx, methodUUID)
	if err != nil {
		return lookupErr(err, "method", methodUUID)
	}
	if meth.ResourceUUID != res.UUID {
		return ErrNotFound("method", res.UUID+"/"+methodUUID)
	}

	args := hooks.MethodDeleteArgs{Method: &meth, ModelUUID: m.UUID, RevisionUUID: rev.UUID, ResourceUUID: res.UUID}
	if err := hooks.Dispatch(ctx, s.reg, hooks.MethodDeletePre, args); err != nil {
		return err
	}
	node, err := s.store.GetNodeByMethod(ctx, meth.UUID)
	switch {
	case err == nil:
		l := lineage{Model: m, Revision: rev, Resource: res, Method: meth}
		if err := s.nodeAction(ctx, l, node, action); err != nil {
			return err
		}
	case !errors.Is(err, store.ErrNotFound):
		return err
	}
	if err := s.store.DeleteMethod(ctx, meth.UUID); err != nil {
		return lookupErr(err, "method", meth.UUID)
	}
	s.log.Debug().Str("model", m.Name).Str("method", meth.Name).Str("node_action", string(action)).Msg("method deleted")
	return multierr.Combine(
		hooks.Dispatch(ctx, s.reg, hooks.MethodDeletePost, args),
		s.modelUpdated(ctx, m.UUID),
	)
}

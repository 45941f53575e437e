package smartdocs

import (
	"context"

	"smartdocs/pkg/types"
)

// lineage is a method together with its ancestors.
type lineage struct {
	Model    types.Model
	Revision types.Revision
	Resource types.Resource
	Method   types.Method
}

func (s *Service) model(ctx context.Context, nameOrUUID string) (types.Model, error) {
	m, err := s.store.GetModel(ctx, nameOrUUID)
	if err != nil {
		return types.Model{}, lookupErr(err, "model", nameOrUUID)
	}
	return m, nil
}

// revisionOf loads a revision and checks it belongs to m.
func (s *Service) revisionOf(ctx context.Context, m types.Model, revisionUUID string) (types.Revision, error) {
	rev, err := s.store.GetRevision(ctx, revisionUUID)
	if err != nil {
		return types.Revision{}, lookupErr(err, "revision", revisionUUID)
	}
	if rev.ModelUUID != m.UUID {
		return types.Revision{}, ErrNotFound("revision", m.Name+"/"+revisionUUID)
	}
	return rev, nil
}

// resourceOf loads a resource and checks it belongs to rev.
func (s *Service) resourceOf(ctx context.Context, rev types.Revision, resourceUUID string) (types.Resource, error) {
	res, err := s.store.GetResource(ctx, resourceUUID)
	if err != nil {
		return types.Resource{}, lookupErr(err, "resource", resourceUUID)
	}
	if res.RevisionUUID != rev.UUID {
		return types.Resource{}, ErrNotFound("resource", rev.UUID+"/"+resourceUUID)
	}
	return res, nil
}

// ancestors resolves model, revision and resource for a model name and the
// UUIDs below it.
func (s *Service) ancestors(ctx context.Context, modelName, revisionUUID, resourceUUID string) (types.Model, types.Revision, types.Resource, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return types.Model{}, types.Revision{}, types.Resource{}, err
	}
	rev, err := s.revisionOf(ctx, m, revisionUUID)
	if err != nil {
		return types.Model{}, types.Revision{}, types.Resource{}, err
	}
	res, err := s.resourceOf(ctx, rev, resourceUUID)
	if err != nil {
		return types.Model{}, types.Revision{}, types.Resource{}, err
	}
	return m, rev, res, nil
}

// lineageOf walks up from a method to its model.
func (s *Service) lineageOf(ctx context.Context, methodUUID string) (lineage, error) {
	var l lineage
	var err error
	if l.Method, err = s.store.GetMethod(ctx, methodUUID); err != nil {
		return l, lookupErr(err, "method", methodUUID)
	}
	if l.Resource, err = s.store.GetResource(ctx, l.Method.ResourceUUID); err != nil {
		return l, lookupErr(err, "resource", l.Method.ResourceUUID)
	}
	if l.Revision, err = s.store.GetRevision(ctx, l.Resource.RevisionUUID); err != nil {
		return l, lookupErr(err, "revision", l.Resource.RevisionUUID)
	}
	if l.Model, err = s.store.GetModel(ctx, l.Revision.ModelUUID); err != nil {
		return l, lookupErr(err, "model", l.Revision.ModelUUID)
	}
	return l, nil
}

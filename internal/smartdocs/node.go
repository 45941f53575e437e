package smartdocs

import (
	"context"
	"errors"

	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// GetMethodNode returns the node rendered from a method.
func (s *Service) GetMethodNode(ctx context.Context, methodUUID string) (types.MethodNode, error) {
	n, err := s.store.GetNodeByMethod(ctx, methodUUID)
	if err != nil {
		return types.MethodNode{}, lookupErr(err, "method node", methodUUID)
	}
	return n, nil
}

// SaveMethodNode creates or updates the node of node.MethodUUID. A method has
// at most one node: saving a node without NID for a method that already has
// one updates the existing node, and a node created for a method must not
// carry an NID. The ancestor UUIDs are derived from the method and an empty
// title defaults to the method display name.
func (s *Service) SaveMethodNode(ctx context.Context, node *types.MethodNode) error {
	l, err := s.lineageOf(ctx, node.MethodUUID)
	if err != nil {
		return err
	}
	existing, err := s.store.GetNodeByMethod(ctx, node.MethodUUID)
	switch {
	case err == nil:
		if node.NID != 0 && node.NID != existing.NID {
			return conflictError{msg: "method already has a node"}
		}
		node.NID = existing.NID
	case errors.Is(err, store.ErrNotFound):
		if node.NID != 0 {
			return conflictError{msg: "node ids are assigned on create; method has no node"}
		}
	default:
		return err
	}
	adoptLineage(node, l)
	if node.Title == "" {
		node.Title = l.Method.DisplayName
	}
	args := hooks.MethodNodeSaveArgs{
		Node:     node,
		Model:    l.Model,
		Revision: l.Revision,
		Resource: l.Resource,
		Method:   l.Method,
	}
	if err := hooks.Dispatch(ctx, s.reg, hooks.MethodNodeSavePre, args); err != nil {
		return err
	}
	adoptLineage(node, l)
	if err := validate("method node", node); err != nil {
		return err
	}
	node.ModifiedAt = s.now()
	if err := s.store.PutNode(ctx, node); err != nil {
		return err
	}
	s.invalidate(ctx, l.Model.UUID)
	s.log.Debug().Str("model", l.Model.Name).Int64("nid", node.NID).Msg("method node saved")
	return hooks.Dispatch(ctx, s.reg, hooks.MethodNodeSavePost, args)
}

func adoptLineage(node *types.MethodNode, l lineage) {
	node.MethodUUID = l.Method.UUID
	node.ResourceUUID = l.Resource.UUID
	node.RevisionUUID = l.Revision.UUID
	node.ModelUUID = l.Model.UUID
}

// NodeAction applies action to the node of a method. The action pair always
// fires; for delete, method.node.delete pre/post fire inside it.
func (s *Service) NodeAction(ctx context.Context, methodUUID string, action types.NodeAction) error {
	if _, err := types.ParseNodeAction(string(action)); err != nil {
		return ErrInvalid("invalid node action", err)
	}
	l, err := s.lineageOf(ctx, methodUUID)
	if err != nil {
		return err
	}
	node, err := s.store.GetNodeByMethod(ctx, methodUUID)
	if err != nil {
		return lookupErr(err, "method node", methodUUID)
	}
	return s.nodeAction(ctx, l, node, action)
}

func (s *Service) nodeAction(ctx context.Context, l lineage, node types.MethodNode, action types.NodeAction) error {
	method := l.Method
	args := hooks.MethodNodeActionArgs{
		Method:       &method,
		NodeID:       node.NID,
		ModelUUID:    l.Model.UUID,
		RevisionUUID: l.Revision.UUID,
		ResourceUUID: l.Resource.UUID,
		Action:       action,
	}
	if err := hooks.Dispatch(ctx, s.reg, hooks.MethodNodeActionPre, args); err != nil {
		return err
	}
	switch action {
	case types.NodeActionDelete:
		dargs := hooks.MethodNodeDeleteArgs{
			MethodUUID:   l.Method.UUID,
			NodeID:       node.NID,
			ModelUUID:    l.Model.UUID,
			RevisionUUID: l.Revision.UUID,
			ResourceUUID: l.Resource.UUID,
		}
		if err := hooks.Dispatch(ctx, s.reg, hooks.MethodNodeDeletePre, dargs); err != nil {
			return err
		}
		if err := s.store.DeleteNode(ctx, node.NID); err != nil {
			return err
		}
		if err := hooks.Dispatch(ctx, s.reg, hooks.MethodNodeDeletePost, dargs); err != nil {
			return err
		}
	case types.NodeActionUnpublish:
		node.Published = false
		node.ModifiedAt = s.now()
		if err := s.store.PutNode(ctx, &node); err != nil {
			return err
		}
	case types.NodeActionKeep:
	}
	s.invalidate(ctx, l.Model.UUID)
	s.log.Debug().Str("model", l.Model.Name).Int64("nid", node.NID).Str("action", string(action)).Msg("node action applied")
	return hooks.Dispatch(ctx, s.reg, hooks.MethodNodeActionPost, args)
}

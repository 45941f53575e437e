package smartdocs

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"smartdocs/internal/hooks"
	"smartdocs/pkg/types"
)

// ListRevisions returns the revisions of a model ordered by number.
func (s *Service) ListRevisions(ctx context.Context, modelName string) ([]types.Revision, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return nil, err
	}
	revs, err := s.store.ListRevisions(ctx, m.UUID)
	if err != nil {
		return nil, err
	}
	if revs == nil {
		revs = []types.Revision{}
	}
	return revs, nil
}

// GetRevision resolves ref within a model. ref is a revision UUID, a
// revision number, or "latest".
func (s *Service) GetRevision(ctx context.Context, modelName, ref string) (types.Revision, error) {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return types.Revision{}, err
	}
	return s.resolveRevision(ctx, m, ref)
}

func (s *Service) resolveRevision(ctx context.Context, m types.Model, ref string) (types.Revision, error) {
	ref = strings.TrimSpace(ref)
	n, numErr := strconv.Atoi(ref)
	if ref == "latest" {
		n, numErr = m.LatestRevisionNumber, nil
	}
	if numErr != nil {
		return s.revisionOf(ctx, m, ref)
	}
	revs, err := s.store.ListRevisions(ctx, m.UUID)
	if err != nil {
		return types.Revision{}, err
	}
	for _, r := range revs {
		if r.Number == n {
			return r, nil
		}
	}
	return types.Revision{}, ErrNotFound("revision", m.Name+"/"+ref)
}

// SaveRevision creates rev under the model when rev.UUID is empty, giving it
// the next revision number, and updates it otherwise.
func (s *Service) SaveRevision(ctx context.Context, modelName string, rev *types.Revision) error {
	m, err := s.model(ctx, modelName)
	if err != nil {
		return err
	}
	committed, err := s.saveRevision(ctx, m, rev)
	if !committed {
		return err
	}
	return multierr.Combine(err, s.modelUpdated(ctx, m.UUID))
}

func (s *Service) saveRevision(ctx context.Context, m types.Model, rev *types.Revision) (bool, error) {
	isUpdate := rev.UUID != ""
	if isUpdate {
		cur, err := s.revisionOf(ctx, m, rev.UUID)
		if err != nil {
			return false, err
		}
		rev.Number = cur.Number
		rev.CreatedAt = cur.CreatedAt
	} else {
		rev.Number = m.LatestRevisionNumber + 1
	}
	rev.ModelUUID = m.UUID
	if err := hooks.Dispatch(ctx, s.reg, hooks.RevisionSavePre, hooks.RevisionSaveArgs{Revision: rev, Model: m}); err != nil {
		return false, err
	}
	rev.ModelUUID = m.UUID

	s.mu.Lock()
	err := s.putRevisionLocked(ctx, &m, rev, isUpdate)
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	s.log.Debug().Str("model", m.Name).Int("revision", rev.Number).Bool("update", isUpdate).Msg("revision saved")
	return true, hooks.Dispatch(ctx, s.reg, hooks.RevisionSavePost, hooks.RevisionSaveArgs{Revision: rev, Model: m})
}

// putRevisionLocked assigns the revision number from the stored model so
// concurrent creates never share one, and bumps the model's latest number.
func (s *Service) putRevisionLocked(ctx context.Context, m *types.Model, rev *types.Revision, isUpdate bool) error {
	now := s.now()
	if !isUpdate {
		cur, err := s.store.GetModel(ctx, m.UUID)
		if err != nil {
			return lookupErr(err, "model", m.UUID)
		}
		*m = cur
		rev.Number = m.LatestRevisionNumber + 1
		rev.CreatedAt = now
	}
	rev.ModifiedAt = now
	if err := validate("revision", rev); err != nil {
		return err
	}
	if !isUpdate {
		rev.UUID = s.newID()
	}
	if err := s.store.PutRevision(ctx, *rev); err != nil {
		return err
	}
	if isUpdate {
		return nil
	}
	m.LatestRevisionNumber = rev.Number
	m.ModifiedAt = now
	return s.store.PutModel(ctx, *m)
}

package smartdocs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"smartdocs/internal/hooks"
	"smartdocs/internal/importer"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// ImportInput describes a document to import.
type ImportInput struct {
	Contents []byte
	// ContentType and Format are detected from Name and Contents when empty.
	ContentType types.ContentType
	Format      types.DocumentFormat
	Source      types.ImportSource
	// Name is the file name or URL the contents came from.
	Name string
	// ModelName overrides the model name of the document.
	ModelName string
}

// ImportModel imports a document as a new revision of its model, creating the
// model when it does not exist yet. Resources and methods are saved in two
// batches; each batch is bracketed by its import.*.save pre/post events and
// every item fires its own save events inside the batch. model.import fires
// once everything is stored.
func (s *Service) ImportModel(ctx context.Context, in ImportInput) (types.ImportResponse, error) {
	if in.ContentType == "" {
		in.ContentType = importer.DetectContentType(in.Name, in.Contents)
	}
	if in.Format == "" {
		in.Format = importer.DetectFormat(in.ContentType, in.Contents)
	}
	if in.Source == "" {
		in.Source = types.SourceFile
	}
	resp, committed, err := s.importModel(ctx, in)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	importTotal.WithLabelValues(string(in.Format), outcome).Inc()
	if !committed {
		return resp, err
	}
	return resp, multierr.Combine(err, s.modelUpdated(ctx, resp.Model.UUID))
}

func (s *Service) importModel(ctx context.Context, in ImportInput) (types.ImportResponse, bool, error) {
	resp := types.ImportResponse{Resources: []types.Resource{}, Methods: []types.Method{}}
	if len(strings.TrimSpace(string(in.Contents))) == 0 {
		return resp, false, ErrInvalid("import contents are empty", nil)
	}
	doc, err := importer.Decode(in.Contents, in.ContentType, in.Format)
	if err != nil {
		return resp, false, ErrInvalid("import failed", err)
	}
	if in.ModelName != "" {
		doc.Name = in.ModelName
	}

	model := doc.Model()
	existing, err := s.store.GetModel(ctx, model.Name)
	switch {
	case err == nil:
		model.UUID = existing.UUID
		if doc.DisplayName == "" {
			model.DisplayName = existing.DisplayName
		}
		if model.Description == "" {
			model.Description = existing.Description
		}
	case !errors.Is(err, store.ErrNotFound):
		return resp, false, err
	}
	// From here on the model may be written; post observer errors are
	// collected and the import continues.
	var errs error
	committed, err := s.saveModel(ctx, &model)
	if !committed {
		return resp, false, err
	}
	errs = multierr.Append(errs, err)

	rev := doc.Revision()
	committed, err = s.saveRevision(ctx, model, &rev)
	resp.Model, resp.Revision = model, rev
	if !committed {
		return resp, true, multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, err)
	if m, err := s.store.GetModel(ctx, model.UUID); err == nil {
		model = m
		resp.Model = m
	}

	resources := make([]*types.Resource, len(doc.Resources))
	for i, dr := range doc.Resources {
		r := dr.Resource()
		r.RevisionUUID = rev.UUID
		resources[i] = &r
	}
	rargs := hooks.ImportResourcesArgs{Model: model, Revision: rev, Resources: resources}
	if err := hooks.Dispatch(ctx, s.reg, hooks.ImportResourcesSavePre, rargs); err != nil {
		return resp, true, multierr.Append(errs, err)
	}
	for _, r := range rargs.Resources {
		committed, err := s.saveResource(ctx, model, rev, r)
		if !committed {
			return resp, true, multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, err)
		resp.Resources = append(resp.Resources, *r)
	}
	errs = multierr.Append(errs, hooks.Dispatch(ctx, s.reg, hooks.ImportResourcesSavePost, rargs))

	var methods []*types.Method
	var owners []types.Resource
	for i, dr := range doc.Resources {
		if i >= len(rargs.Resources) {
			break
		}
		for _, meth := range dr.MethodList() {
			meth.ResourceUUID = rargs.Resources[i].UUID
			methods = append(methods, &meth)
			owners = append(owners, *rargs.Resources[i])
		}
	}
	margs := hooks.ImportMethodsArgs{Model: model, Revision: rev, Methods: methods}
	if err := hooks.Dispatch(ctx, s.reg, hooks.ImportMethodsSavePre, margs); err != nil {
		return resp, true, multierr.Append(errs, err)
	}
	for i, meth := range margs.Methods {
		committed, err := s.saveMethod(ctx, model, rev, owners[i], meth)
		if !committed {
			return resp, true, multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, err)
		resp.Methods = append(resp.Methods, *meth)
	}
	errs = multierr.Append(errs, hooks.Dispatch(ctx, s.reg, hooks.ImportMethodsSavePost, margs))

	iargs := hooks.ModelImportArgs{
		Contents:    string(in.Contents),
		ContentType: in.ContentType,
		Format:      in.Format,
		Model:       &model,
		Source:      in.Source,
	}
	errs = multierr.Append(errs, hooks.Dispatch(ctx, s.reg, hooks.ModelImport, iargs))
	s.log.Info().
		Str("model", model.Name).
		Int("revision", rev.Number).
		Int("resources", len(resp.Resources)).
		Int("methods", len(resp.Methods)).
		Str("format", string(in.Format)).
		Msg("model imported")
	return resp, true, errs
}

// ImportDir imports every document of a directory, in file name order. It
// stops at the first document that fails.
func (s *Service) ImportDir(ctx context.Context, dir string) ([]types.ImportResponse, error) {
	srcs, err := importer.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]types.ImportResponse, 0, len(srcs))
	for _, src := range srcs {
		resp, err := s.ImportModel(ctx, ImportInput{
			Contents:    src.Contents,
			ContentType: src.ContentType,
			Format:      src.Format,
			Source:      types.SourceFile,
			Name:        src.Path,
		})
		if err != nil {
			return out, fmt.Errorf("import %s: %w", src.Path, err)
		}
		out = append(out, resp)
	}
	return out, nil
}

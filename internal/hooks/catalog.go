package hooks

import "smartdocs/pkg/types"

// ModelUpdateArgs is passed after a model or one of its children (revision,
// resource, method) was created, updated or deleted.
type ModelUpdateArgs struct {
	ModelUUID string
}

// RenderAlterArgs accompanies the rendered HTML of a method node.
type RenderAlterArgs struct {
	Node types.MethodNode
}

// MethodSaveArgs is passed around saving a method. Presave observers may
// modify *Method.
type MethodSaveArgs struct {
	Method       *types.Method
	ModelName    string
	RevisionUUID string
	ResourceUUID string
	IsUpdate     bool
}

// MethodDeleteArgs is passed around deleting a method.
type MethodDeleteArgs struct {
	Method       *types.Method
	ModelUUID    string
	RevisionUUID string
	ResourceUUID string
}

// MethodNodeSaveArgs is passed around saving the node rendered from a method.
type MethodNodeSaveArgs struct {
	Node     *types.MethodNode
	Model    types.Model
	Revision types.Revision
	Resource types.Resource
	Method   types.Method
}

// MethodNodeActionArgs is passed around any action taken on a method node.
type MethodNodeActionArgs struct {
	Method       *types.Method
	NodeID       int64
	ModelUUID    string
	RevisionUUID string
	ResourceUUID string
	Action       types.NodeAction
}

// MethodNodeDeleteArgs is the shortened form of MethodNodeActionArgs for the
// delete action.
type MethodNodeDeleteArgs struct {
	MethodUUID   string
	NodeID       int64
	ModelUUID    string
	RevisionUUID string
	ResourceUUID string
}

// ModelSaveArgs is passed around saving a model. Presave observers may modify *Model.
type ModelSaveArgs struct {
	Model *types.Model
}

// ModelDeleteArgs is passed around deleting a model.
type ModelDeleteArgs struct {
	ModelName string
}

// TemplateSaveArgs is passed around saving a model template. Presave
// observers may rewrite *Content.
type TemplateSaveArgs struct {
	ModelName string
	Content   *string
}

// TemplateRevertedArgs is passed after a model template was reverted.
type TemplateRevertedArgs struct {
	ModelName string
}

// ModelImportArgs is passed after a model was imported from a document.
type ModelImportArgs struct {
	Contents    string
	ContentType types.ContentType
	Format      types.DocumentFormat
	Model       *types.Model
	Source      types.ImportSource
}

// ImportResourcesArgs brackets the batch of resources imported into a revision.
type ImportResourcesArgs struct {
	Model     types.Model
	Revision  types.Revision
	Resources []*types.Resource
}

// ImportMethodsArgs brackets the batch of methods imported into a revision.
type ImportMethodsArgs struct {
	Model    types.Model
	Revision types.Revision
	Methods  []*types.Method
}

// ResourceSaveArgs is passed around saving a resource.
type ResourceSaveArgs struct {
	Resource *types.Resource
	Revision types.Revision
	Model    types.Model
	IsUpdate bool
}

// ResourceDeleteArgs is passed around deleting a resource.
type ResourceDeleteArgs struct {
	Resource     *types.Resource
	RevisionUUID string
	ModelName    string
}

// TemplateAuthSchemeSaveArgs is passed around saving a template auth scheme.
type TemplateAuthSchemeSaveArgs struct {
	TemplateAuth types.TemplateAuth
	Scheme       *types.TemplateAuthScheme
	ModelUUID    string
	IsUpdate     bool
}

// TemplateAuthSchemeDeleteArgs is passed around deleting a template auth scheme.
type TemplateAuthSchemeDeleteArgs struct {
	SchemeName string
	ModelUUID  string
}

// SecuritySchemeSaveArgs is passed around saving a security scheme.
type SecuritySchemeSaveArgs struct {
	Scheme   *types.SecurityScheme
	Model    types.Model
	Revision types.Revision
	IsUpdate bool
}

// SecurityDeleteArgs is passed around deleting a security scheme.
type SecurityDeleteArgs struct {
	Scheme       *types.SecurityScheme
	ModelUUID    string
	RevisionUUID string
}

// RevisionSaveArgs is passed around saving a revision.
type RevisionSaveArgs struct {
	Revision *types.Revision
	Model    types.Model
}

var (
	ModelUpdate      = NewEvent[ModelUpdateArgs]("model.update")
	ModelRenderAlter = NewAlterEvent[RenderAlterArgs]("model.render.alter")

	MethodSavePre    = NewEvent[MethodSaveArgs]("method.save.pre")
	MethodSavePost   = NewEvent[MethodSaveArgs]("method.save.post")
	MethodDeletePre  = NewEvent[MethodDeleteArgs]("method.delete.pre")
	MethodDeletePost = NewEvent[MethodDeleteArgs]("method.delete.post")

	MethodNodeSavePre    = NewEvent[MethodNodeSaveArgs]("method.node.save.pre")
	MethodNodeSavePost   = NewEvent[MethodNodeSaveArgs]("method.node.save.post")
	MethodNodeActionPre  = NewEvent[MethodNodeActionArgs]("method.node.action.pre")
	MethodNodeActionPost = NewEvent[MethodNodeActionArgs]("method.node.action.post")
	MethodNodeDeletePre  = NewEvent[MethodNodeDeleteArgs]("method.node.delete.pre")
	MethodNodeDeletePost = NewEvent[MethodNodeDeleteArgs]("method.node.delete.post")

	ModelSavePre    = NewEvent[ModelSaveArgs]("model.save.pre")
	ModelSavePost   = NewEvent[ModelSaveArgs]("model.save.post")
	ModelDeletePre  = NewEvent[ModelDeleteArgs]("model.delete.pre")
	ModelDeletePost = NewEvent[ModelDeleteArgs]("model.delete.post")

	TemplateSavePre  = NewEvent[TemplateSaveArgs]("template.save.pre")
	TemplateSavePost = NewEvent[TemplateSaveArgs]("template.save.post")
	TemplateReverted = NewEvent[TemplateRevertedArgs]("template.reverted")

	ModelImport             = NewEvent[ModelImportArgs]("model.import")
	ImportResourcesSavePre  = NewEvent[ImportResourcesArgs]("import.resources.save.pre")
	ImportResourcesSavePost = NewEvent[ImportResourcesArgs]("import.resources.save.post")
	ImportMethodsSavePre    = NewEvent[ImportMethodsArgs]("import.methods.save.pre")
	ImportMethodsSavePost   = NewEvent[ImportMethodsArgs]("import.methods.save.post")

	ResourceSavePre    = NewEvent[ResourceSaveArgs]("resource.save.pre")
	ResourceSavePost   = NewEvent[ResourceSaveArgs]("resource.save.post")
	ResourceDeletePre  = NewEvent[ResourceDeleteArgs]("resource.delete.pre")
	ResourceDeletePost = NewEvent[ResourceDeleteArgs]("resource.delete.post")

	TemplateAuthSchemeSavePre    = NewEvent[TemplateAuthSchemeSaveArgs]("template.auth.scheme.save.pre")
	TemplateAuthSchemeSavePost   = NewEvent[TemplateAuthSchemeSaveArgs]("template.auth.scheme.save.post")
	TemplateAuthSchemeDeletePre  = NewEvent[TemplateAuthSchemeDeleteArgs]("template.auth.scheme.delete.pre")
	TemplateAuthSchemeDeletePost = NewEvent[TemplateAuthSchemeDeleteArgs]("template.auth.scheme.delete.post")

	SecuritySchemeSavePre  = NewEvent[SecuritySchemeSaveArgs]("security.scheme.save.pre")
	SecuritySchemeSavePost = NewEvent[SecuritySchemeSaveArgs]("security.scheme.save.post")
	SecurityDeletePre      = NewEvent[SecurityDeleteArgs]("security.delete.pre")
	SecurityDeletePost     = NewEvent[SecurityDeleteArgs]("security.delete.post")

	RevisionSavePre  = NewEvent[RevisionSaveArgs]("revision.save.pre")
	RevisionSavePost = NewEvent[RevisionSaveArgs]("revision.save.post")
)

type named interface{ Name() string }

var catalog = []named{
	ModelUpdate, ModelRenderAlter,
	MethodSavePre, MethodSavePost, MethodDeletePre, MethodDeletePost,
	MethodNodeSavePre, MethodNodeSavePost,
	MethodNodeActionPre, MethodNodeActionPost,
	MethodNodeDeletePre, MethodNodeDeletePost,
	ModelSavePre, ModelSavePost, ModelDeletePre, ModelDeletePost,
	TemplateSavePre, TemplateSavePost, TemplateReverted,
	ModelImport,
	ImportResourcesSavePre, ImportResourcesSavePost,
	ImportMethodsSavePre, ImportMethodsSavePost,
	ResourceSavePre, ResourceSavePost, ResourceDeletePre, ResourceDeletePost,
	TemplateAuthSchemeSavePre, TemplateAuthSchemeSavePost,
	TemplateAuthSchemeDeletePre, TemplateAuthSchemeDeletePost,
	SecuritySchemeSavePre, SecuritySchemeSavePost,
	SecurityDeletePre, SecurityDeletePost,
	RevisionSavePre, RevisionSavePost,
}

// Catalog lists every lifecycle event with its current observer count.
func Catalog(r *Registry) []types.HookInfo {
	out := make([]types.HookInfo, 0, len(catalog))
	for _, e := range catalog {
		_, mutating := e.(AlterEvent[RenderAlterArgs])
		out = append(out, types.HookInfo{
			Name:      e.Name(),
			Observers: r.Count(e.Name()),
			Mutating:  mutating,
		})
	}
	return out
}

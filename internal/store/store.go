// Package store persists smartdocs entities. Two backends implement Store:
// MemoryStore for tests and single-process use, and GormStore for
// sqlite/postgres/mysql.
//
// Store methods do not fire hooks and do not validate; lifecycle semantics
// live in the smartdocs package.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartdocs/pkg/types"
)

// ErrNotFound is returned (possibly wrapped) when a record does not exist.
var ErrNotFound = errors.New("not found")

func notFound(kind, key string) error {
	return fmt.Errorf("%s %s: %w", kind, key, ErrNotFound)
}

// Store is the persistence contract used by the smartdocs service.
type Store interface {
	// GetModel looks a model up by name or UUID.
	GetModel(ctx context.Context, nameOrUUID string) (types.Model, error)
	ListModels(ctx context.Context) ([]types.Model, error)
	PutModel(ctx context.Context, m types.Model) error
	// DeleteModel removes the model and everything it owns.
	DeleteModel(ctx context.Context, uuid string) error

	GetRevision(ctx context.Context, uuid string) (types.Revision, error)
	ListRevisions(ctx context.Context, modelUUID string) ([]types.Revision, error)
	PutRevision(ctx context.Context, r types.Revision) error

	GetResource(ctx context.Context, uuid string) (types.Resource, error)
	ListResources(ctx context.Context, revisionUUID string) ([]types.Resource, error)
	PutResource(ctx context.Context, r types.Resource) error
	// DeleteResource removes the resource, its methods and their nodes.
	DeleteResource(ctx context.Context, uuid string) error

	GetMethod(ctx context.Context, uuid string) (types.Method, error)
	ListMethods(ctx context.Context, resourceUUID string) ([]types.Method, error)
	PutMethod(ctx context.Context, m types.Method) error
	// DeleteMethod removes only the method; its node is handled by the caller.
	DeleteMethod(ctx context.Context, uuid string) error

	GetNodeByMethod(ctx context.Context, methodUUID string) (types.MethodNode, error)
	// PutNode stores n, assigning NID when it is zero.
	PutNode(ctx context.Context, n *types.MethodNode) error
	DeleteNode(ctx context.Context, nid int64) error

	// GetTemplate returns ErrNotFound when the model has no custom template.
	GetTemplate(ctx context.Context, modelUUID string) (string, error)
	PutTemplate(ctx context.Context, modelUUID, content string) error
	DeleteTemplate(ctx context.Context, modelUUID string) error

	// GetTemplateAuth returns an empty TemplateAuth when none is stored.
	GetTemplateAuth(ctx context.Context, modelUUID string) (types.TemplateAuth, error)
	PutTemplateAuthScheme(ctx context.Context, modelUUID string, s types.TemplateAuthScheme) error
	DeleteTemplateAuthScheme(ctx context.Context, modelUUID, name string) error

	GetSecurityScheme(ctx context.Context, revisionUUID, name string) (types.SecurityScheme, error)
	ListSecuritySchemes(ctx context.Context, revisionUUID string) ([]types.SecurityScheme, error)
	PutSecurityScheme(ctx context.Context, s types.SecurityScheme) error
	DeleteSecurityScheme(ctx context.Context, revisionUUID, name string) error

	Close() error
}

// Open selects a backend by driver name: memory (default), sqlite,
// postgres or mysql.
func Open(driver, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3", "postgres", "postgresql", "mysql":
		return OpenGorm(driver, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

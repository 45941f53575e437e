// Package smartdocs implements the lifecycle of documented API models and
// fires the hooks catalog around every mutation. It is structured into small
// files by concern:
//
//   - service.go: Service type, Config and constructor, hook catalog access.
//   - errors.go: error types and predicates (IsNotFound, IsInvalid, IsConflict).
//   - lineage.go: ancestor resolution for revisions, resources and methods.
//   - model.go, revision.go, resource.go, method.go: entity save/delete.
//   - node.go: method nodes and node actions (delete, keep, unpublish).
//   - template.go: model templates and their revert.
//   - auth.go: template auth schemes and security schemes.
//   - render.go: method rendering with the render cache and alter hook.
//   - import.go: bulk import of apimodel documents.
//
// Every save and delete follows the same protocol: dispatch the pre event,
// validate and persist, dispatch the post event. An error from a pre observer
// aborts the operation before anything is written. An error from a post
// observer is returned after the write has been committed. Successful writes
// to a model, its revisions, resources or methods also dispatch model.update.
//
// Observers run on the caller's goroutine and must not call back into the
// mutating methods of the Service for the same model.
package smartdocs

package store

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"sync"

	"smartdocs/pkg/types"
)

// MemoryStore keeps everything in maps. Returned values are copies.
type MemoryStore struct {
	mu        sync.RWMutex
	models    map[string]types.Model
	revisions map[string]types.Revision
	resources map[string]types.Resource
	methods   map[string]types.Method
	nodes     map[int64]types.MethodNode
	nextNID   int64
	templates map[string]string
	auth      map[string][]types.TemplateAuthScheme
	security  map[string][]types.SecurityScheme // by revision UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		models:    make(map[string]types.Model),
		revisions: make(map[string]types.Revision),
		resources: make(map[string]types.Resource),
		methods:   make(map[string]types.Method),
		nodes:     make(map[int64]types.MethodNode),
		templates: make(map[string]string),
		auth:      make(map[string][]types.TemplateAuthScheme),
		security:  make(map[string][]types.SecurityScheme),
	}
}

func (s *MemoryStore) GetModel(_ context.Context, key string) (types.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.models[key]; ok {
		return m, nil
	}
	for _, m := range s.models {
		if m.Name == key {
			return m, nil
		}
	}
	return types.Model{}, notFound("model", key)
}

func (s *MemoryStore) ListModels(context.Context) ([]types.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) PutModel(_ context.Context, m types.Model) error {
	s.mu.Lock()
	s.models[m.UUID] = m
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteModel(_ context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.models[uuid]; !ok {
		return notFound("model", uuid)
	}
	for ruuid, rev := range s.revisions {
		if rev.ModelUUID != uuid {
			continue
		}
		for resUUID, res := range s.resources {
			if res.RevisionUUID == ruuid {
				s.deleteResourceLocked(resUUID)
			}
		}
		delete(s.security, ruuid)
		delete(s.revisions, ruuid)
	}
	for nid, n := range s.nodes {
		if n.ModelUUID == uuid {
			delete(s.nodes, nid)
		}
	}
	delete(s.templates, uuid)
	delete(s.auth, uuid)
	delete(s.models, uuid)
	return nil
}

func (s *MemoryStore) GetRevision(_ context.Context, uuid string) (types.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.revisions[uuid]
	if !ok {
		return types.Revision{}, notFound("revision", uuid)
	}
	return r, nil
}

func (s *MemoryStore) ListRevisions(_ context.Context, modelUUID string) ([]types.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Revision
	for _, r := range s.revisions {
		if r.ModelUUID == modelUUID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *MemoryStore) PutRevision(_ context.Context, r types.Revision) error {
	s.mu.Lock()
	s.revisions[r.UUID] = r
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetResource(_ context.Context, uuid string) (types.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[uuid]
	if !ok {
		return types.Resource{}, notFound("resource", uuid)
	}
	return r, nil
}

func (s *MemoryStore) ListResources(_ context.Context, revisionUUID string) ([]types.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Resource
	for _, r := range s.resources {
		if r.RevisionUUID == revisionUUID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *MemoryStore) PutResource(_ context.Context, r types.Resource) error {
	s.mu.Lock()
	s.resources[r.UUID] = r
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteResource(_ context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[uuid]; !ok {
		return notFound("resource", uuid)
	}
	s.deleteResourceLocked(uuid)
	return nil
}

// deleteResourceLocked drops the resource, its methods and every node filed
// under it, including nodes kept after their method was deleted.
func (s *MemoryStore) deleteResourceLocked(uuid string) {
	for muuid, m := range s.methods {
		if m.ResourceUUID == uuid {
			delete(s.methods, muuid)
		}
	}
	for nid, n := range s.nodes {
		if n.ResourceUUID == uuid {
			delete(s.nodes, nid)
		}
	}
	delete(s.resources, uuid)
}

func (s *MemoryStore) GetMethod(_ context.Context, uuid string) (types.Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.methods[uuid]
	if !ok {
		return types.Method{}, notFound("method", uuid)
	}
	return m, nil
}

func (s *MemoryStore) ListMethods(_ context.Context, resourceUUID string) ([]types.Method, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.Method
	for _, m := range s.methods {
		if m.ResourceUUID == resourceUUID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) PutMethod(_ context.Context, m types.Method) error {
	s.mu.Lock()
	s.methods[m.UUID] = m
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteMethod(_ context.Context, uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.methods[uuid]; !ok {
		return notFound("method", uuid)
	}
	delete(s.methods, uuid)
	return nil
}

func (s *MemoryStore) GetNodeByMethod(_ context.Context, methodUUID string) (types.MethodNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if n.MethodUUID == methodUUID {
			return n, nil
		}
	}
	return types.MethodNode{}, notFound("node for method", methodUUID)
}

func (s *MemoryStore) PutNode(_ context.Context, n *types.MethodNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.NID == 0 {
		s.nextNID++
		n.NID = s.nextNID
	} else if n.NID > s.nextNID {
		s.nextNID = n.NID
	}
	s.nodes[n.NID] = *n
	return nil
}

func (s *MemoryStore) DeleteNode(_ context.Context, nid int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[nid]; !ok {
		return notFound("node", strconv.FormatInt(nid, 10))
	}
	delete(s.nodes, nid)
	return nil
}

func (s *MemoryStore) GetTemplate(_ context.Context, modelUUID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.templates[modelUUID]
	if !ok {
		return "", notFound("template", modelUUID)
	}
	return c, nil
}

func (s *MemoryStore) PutTemplate(_ context.Context, modelUUID, content string) error {
	s.mu.Lock()
	s.templates[modelUUID] = content
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteTemplate(_ context.Context, modelUUID string) error {
	s.mu.Lock()
	delete(s.templates, modelUUID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetTemplateAuth(_ context.Context, modelUUID string) (types.TemplateAuth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schemes := append([]types.TemplateAuthScheme(nil), s.auth[modelUUID]...)
	return types.TemplateAuth{ModelUUID: modelUUID, Schemes: schemes}, nil
}

func (s *MemoryStore) PutTemplateAuthScheme(_ context.Context, modelUUID string, sc types.TemplateAuthScheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.auth[modelUUID]
	for i := range list {
		if list[i].Name == sc.Name {
			list[i] = sc
			return nil
		}
	}
	s.auth[modelUUID] = append(list, sc)
	return nil
}

func (s *MemoryStore) DeleteTemplateAuthScheme(_ context.Context, modelUUID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.auth[modelUUID]
	for i := range list {
		if list[i].Name == name {
			s.auth[modelUUID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return notFound("template auth scheme", name)
}

func (s *MemoryStore) GetSecurityScheme(_ context.Context, revisionUUID, name string) (types.SecurityScheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sc := range s.security[revisionUUID] {
		if sc.Name == name {
			return cloneScheme(sc), nil
		}
	}
	return types.SecurityScheme{}, notFound("security scheme", name)
}

func (s *MemoryStore) ListSecuritySchemes(_ context.Context, revisionUUID string) ([]types.SecurityScheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.security[revisionUUID]
	out := make([]types.SecurityScheme, len(list))
	for i, sc := range list {
		out[i] = cloneScheme(sc)
	}
	return out, nil
}

func (s *MemoryStore) PutSecurityScheme(_ context.Context, sc types.SecurityScheme) error {
	sc = cloneScheme(sc)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.security[sc.RevisionUUID]
	for i := range list {
		if list[i].Name == sc.Name {
			list[i] = sc
			return nil
		}
	}
	s.security[sc.RevisionUUID] = append(list, sc)
	return nil
}

func (s *MemoryStore) DeleteSecurityScheme(_ context.Context, revisionUUID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.security[revisionUUID]
	for i := range list {
		if list[i].Name == name {
			s.security[revisionUUID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return notFound("security scheme", name)
}

func (s *MemoryStore) Close() error { return nil }

func cloneScheme(sc types.SecurityScheme) types.SecurityScheme {
	sc.Scopes = slices.Clone(sc.Scopes)
	return sc
}

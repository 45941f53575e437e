package e2e

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"smartdocs/internal/hooks"
	"smartdocs/internal/observers"
	"smartdocs/pkg/types"
)

func methodByName(t *testing.T, ms []types.Method, name string) types.Method {
	t.Helper()
	for _, m := range ms {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("method %q not imported", name)
	return types.Method{}
}

// TestE2E_ImportRenderDeleteRestart drives a model through import, node
// publishing, rendering and method deletion, then restarts over the same
// sqlite file.
func TestE2E_ImportRenderDeleteRestart(t *testing.T) {
	db := sqlitePath(t)
	cfg := observers.Config{NodeTitle: true, DisplayNamePrefix: "[beta] "}
	s := newStack(t, db, cfg, nil)

	resp, body := s.do(t, http.MethodPost, "/import", types.ImportRequest{Contents: weatherDoc})
	expectStatus(t, resp, body, http.StatusCreated)
	var imp types.ImportResponse
	decode(t, body, &imp)
	if imp.Revision.Number != 1 || len(imp.Resources) != 1 || len(imp.Methods) != 2 {
		t.Fatalf("unexpected import: %+v", imp)
	}
	if imp.Model.DisplayName != "[beta] Weather API" {
		t.Fatalf("display name prefix not applied: %q", imp.Model.DisplayName)
	}
	get := methodByName(t, imp.Methods, "getForecast")
	post := methodByName(t, imp.Methods, "postForecast")

	resp, body = s.do(t, http.MethodPost, "/methods/"+get.UUID+"/node", types.MethodNodeRequest{Title: "Forecast <daily>"})
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		t.Fatalf("save node: %d %s", resp.StatusCode, body)
	}
	var node types.MethodNode
	decode(t, body, &node)
	if node.NID == 0 || !node.Published || node.ModelUUID != imp.Model.UUID {
		t.Fatalf("unexpected node: %+v", node)
	}

	resp, body = s.do(t, http.MethodGet, "/methods/"+get.UUID+"/render", nil)
	expectStatus(t, resp, body, http.StatusOK)
	page := string(body)
	if !strings.Contains(page, "Forecast &lt;daily&gt;") || strings.Contains(page, observers.NodeTitleToken) {
		t.Fatalf("node title not rendered: %s", page)
	}
	if !strings.Contains(page, "GET") {
		t.Fatalf("verb missing from page: %s", page)
	}

	path := "/models/weather/revisions/1/resources/" + get.ResourceUUID + "/methods/" + get.UUID + "?nodeAction=unpublish"
	resp, body = s.do(t, http.MethodDelete, path, nil)
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = s.do(t, http.MethodGet, "/methods/"+get.UUID, nil)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = s.do(t, http.MethodGet, "/hooks/recent", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var recent types.RecentHooksResponse
	decode(t, body, &recent)
	seen := map[string]bool{}
	for _, r := range recent.Records {
		seen[r.Name] = true
	}
	for _, name := range []string{
		"model.save.pre", "model.import", "import.methods.save.post",
		"method.node.save.post", "model.render.alter",
		"method.node.action.pre", "method.delete.post", "model.update",
	} {
		if !seen[name] {
			t.Fatalf("event %s not recorded; saw %v", name, seen)
		}
	}

	s.stop()
	s = newStack(t, db, cfg, nil)

	resp, body = s.do(t, http.MethodGet, "/models/weather", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var m types.Model
	decode(t, body, &m)
	if m.UUID != imp.Model.UUID || m.DisplayName != "[beta] Weather API" {
		t.Fatalf("model not persisted: %+v", m)
	}
	resp, body = s.do(t, http.MethodGet, "/methods/"+post.UUID, nil)
	expectStatus(t, resp, body, http.StatusOK)
	resp, body = s.do(t, http.MethodGet, "/methods/"+get.UUID, nil)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = s.do(t, http.MethodPost, "/import", types.ImportRequest{Contents: weatherDoc})
	expectStatus(t, resp, body, http.StatusCreated)
	decode(t, body, &imp)
	if imp.Revision.Number != 2 || imp.Model.UUID != m.UUID {
		t.Fatalf("reimport should add revision 2 to the same model: %+v", imp)
	}
	resp, body = s.do(t, http.MethodGet, "/models/weather/revisions", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var revs types.RevisionsResponse
	decode(t, body, &revs)
	if len(revs.Revisions) != 2 {
		t.Fatalf("want 2 revisions, got %d", len(revs.Revisions))
	}
}

// TestE2E_PreHookRejects verifies a failing pre observer aborts the save
// end to end and nothing is written.
func TestE2E_PreHookRejects(t *testing.T) {
	reserve := func(reg *hooks.Registry) error {
		return hooks.RegisterFunc(reg, hooks.ModelSavePre, func(_ context.Context, a hooks.ModelSaveArgs) error {
			if a.Model.Name == "forbidden" {
				return errors.New("name is reserved")
			}
			return nil
		})
	}
	s := newStack(t, sqlitePath(t), observers.Config{}, reserve)

	resp, body := s.do(t, http.MethodPost, "/models", types.Model{Name: "forbidden"})
	expectStatus(t, resp, body, http.StatusUnprocessableEntity)
	var e types.ErrorResponse
	decode(t, body, &e)
	if e.Code != http.StatusUnprocessableEntity || !strings.Contains(e.Error, "name is reserved") {
		t.Fatalf("unexpected error body: %+v", e)
	}
	resp, body = s.do(t, http.MethodGet, "/models/forbidden", nil)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = s.do(t, http.MethodPost, "/models", types.Model{Name: "allowed"})
	expectStatus(t, resp, body, http.StatusCreated)
}

// TestE2E_DeleteModelCascades removes a model and everything below it.
func TestE2E_DeleteModelCascades(t *testing.T) {
	s := newStack(t, sqlitePath(t), observers.Config{}, nil)
	resp, body := s.do(t, http.MethodPost, "/import", types.ImportRequest{Contents: weatherDoc})
	expectStatus(t, resp, body, http.StatusCreated)
	var imp types.ImportResponse
	decode(t, body, &imp)

	resp, body = s.do(t, http.MethodDelete, "/models/weather", nil)
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = s.do(t, http.MethodGet, "/models/weather", nil)
	expectStatus(t, resp, body, http.StatusNotFound)
	for _, m := range imp.Methods {
		resp, body = s.do(t, http.MethodGet, "/methods/"+m.UUID, nil)
		expectStatus(t, resp, body, http.StatusNotFound)
	}

	resp, body = s.do(t, http.MethodGet, "/models", nil)
	expectStatus(t, resp, body, http.StatusOK)
	var list types.ModelsResponse
	decode(t, body, &list)
	if len(list.Models) != 0 {
		t.Fatalf("want no models, got %+v", list.Models)
	}
}

// Package httpapi exposes the smartdocs service over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartdocs/internal/smartdocs"
	"smartdocs/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels(ctx context.Context) ([]types.Model, error)
	GetModel(ctx context.Context, nameOrUUID string) (types.Model, error)
	SaveModel(ctx context.Context, m *types.Model) error
	DeleteModel(ctx context.Context, name string) error

	ListRevisions(ctx context.Context, modelName string) ([]types.Revision, error)
	GetRevision(ctx context.Context, modelName, ref string) (types.Revision, error)
	SaveRevision(ctx context.Context, modelName string, rev *types.Revision) error

	ListResources(ctx context.Context, modelName, revisionRef string) ([]types.Resource, error)
	SaveResource(ctx context.Context, modelName, revisionRef string, res *types.Resource) error
	DeleteResource(ctx context.Context, modelName, revisionRef, resourceUUID string) error

	GetMethod(ctx context.Context, methodUUID string) (types.Method, error)
	ListMethods(ctx context.Context, modelName, revisionRef, resourceUUID string) ([]types.Method, error)
	SaveMethod(ctx context.Context, modelName, revisionRef, resourceUUID string, meth *types.Method) error
	DeleteMethod(ctx context.Context, modelName, revisionRef, resourceUUID, methodUUID string, action types.NodeAction) error

	GetMethodNode(ctx context.Context, methodUUID string) (types.MethodNode, error)
	SaveMethodNode(ctx context.Context, node *types.MethodNode) error
	NodeAction(ctx context.Context, methodUUID string, action types.NodeAction) error
	RenderMethod(ctx context.Context, methodUUID string) (string, error)

	GetTemplate(ctx context.Context, modelName string) (types.Template, error)
	SaveTemplate(ctx context.Context, modelName, content string) (types.Template, error)
	RevertTemplate(ctx context.Context, modelName string) (types.Template, error)

	GetTemplateAuth(ctx context.Context, modelName string) (types.TemplateAuth, error)
	SaveTemplateAuthScheme(ctx context.Context, modelName string, sc *types.TemplateAuthScheme) error
	DeleteTemplateAuthScheme(ctx context.Context, modelName, schemeName string) error
	ListSecuritySchemes(ctx context.Context, modelName, revisionRef string) ([]types.SecurityScheme, error)
	SaveSecurityScheme(ctx context.Context, modelName, revisionRef string, sc *types.SecurityScheme) error
	DeleteSecurityScheme(ctx context.Context, modelName, revisionRef, schemeName string) error

	ImportModel(ctx context.Context, in smartdocs.ImportInput) (types.ImportResponse, error)

	HookCatalog() []types.HookInfo
	RecentEvents() []types.HookRecord
	SubscribeEvents(buf int) (<-chan types.HookRecord, func())
	Ready() bool
}

// NewMux builds the router.
func NewMux(svc Service) http.Handler {
	h := &handlers{svc: svc}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// /events hijacks the connection and must stay out of the compressed group.
	r.Get("/events", h.events)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))

		r.Route("/models", func(r chi.Router) {
			r.Get("/", h.listModels)
			r.Post("/", h.saveModel)
			r.Route("/{model}", func(r chi.Router) {
				r.Get("/", h.getModel)
				r.Delete("/", h.deleteModel)

				r.Get("/template", h.getTemplate)
				r.Put("/template", h.saveTemplate)
				r.Delete("/template", h.revertTemplate)
				r.Post("/template/revert", h.revertTemplate)

				r.Get("/template-auth", h.getTemplateAuth)
				r.Post("/template-auth/schemes", h.saveTemplateAuthScheme)
				r.Delete("/template-auth/schemes/{scheme}", h.deleteTemplateAuthScheme)

				r.Get("/revisions", h.listRevisions)
				r.Post("/revisions", h.saveRevision)
				r.Route("/revisions/{rev}", func(r chi.Router) {
					r.Get("/", h.getRevision)
					r.Get("/security", h.listSecuritySchemes)
					r.Post("/security", h.saveSecurityScheme)
					r.Delete("/security/{scheme}", h.deleteSecurityScheme)
					r.Get("/resources", h.listResources)
					r.Post("/resources", h.saveResource)
					r.Route("/resources/{res}", func(r chi.Router) {
						r.Delete("/", h.deleteResource)
						r.Get("/methods", h.listMethods)
						r.Post("/methods", h.saveMethod)
						r.Delete("/methods/{method}", h.deleteMethod)
					})
				})
			})
		})

		r.Route("/methods/{method}", func(r chi.Router) {
			r.Get("/", h.getMethod)
			r.Get("/render", h.renderMethod)
			r.Get("/node", h.getNode)
			r.Post("/node", h.saveNode)
			r.Post("/node/{action}", h.nodeAction)
		})

		r.Post("/import", h.importModel)

		r.Get("/hooks", h.hooks)
		r.Get("/hooks/recent", h.recentHooks)

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
			if svc.Ready() {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ready"))
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("starting"))
		})

		r.Get("/metrics", promhttp.Handler().ServeHTTP)

		MountSwagger(r)
	})

	return r
}

type handlers struct {
	svc Service
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warn().Err(err).Msg("encode response")
	}
}

// decodeJSON reads a JSON body into v. It writes the error response and
// returns false when the body is unacceptable.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// saved writes v with 201 when the entity was created and 200 otherwise.
func saved(w http.ResponseWriter, created bool, v any) {
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, v)
}

func (h *handlers) listModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.ListModels(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ModelsResponse{Models: models})
}

func (h *handlers) getModel(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetModel(r.Context(), chi.URLParam(r, "model"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *handlers) saveModel(w http.ResponseWriter, r *http.Request) {
	var m types.Model
	if !decodeJSON(w, r, &m) {
		return
	}
	created := m.UUID == ""
	if err := h.svc.SaveModel(r.Context(), &m); err != nil {
		writeServiceError(w, err)
		return
	}
	saved(w, created, m)
}

func (h *handlers) deleteModel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteModel(r.Context(), chi.URLParam(r, "model")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) getTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetTemplate(r.Context(), chi.URLParam(r, "model"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) saveTemplate(w http.ResponseWriter, r *http.Request) {
	var req types.TemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.SaveTemplate(r.Context(), chi.URLParam(r, "model"), req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) revertTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.RevertTemplate(r.Context(), chi.URLParam(r, "model"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) getTemplateAuth(w http.ResponseWriter, r *http.Request) {
	ta, err := h.svc.GetTemplateAuth(r.Context(), chi.URLParam(r, "model"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ta)
}

func (h *handlers) saveTemplateAuthScheme(w http.ResponseWriter, r *http.Request) {
	var sc types.TemplateAuthScheme
	if !decodeJSON(w, r, &sc) {
		return
	}
	if err := h.svc.SaveTemplateAuthScheme(r.Context(), chi.URLParam(r, "model"), &sc); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *handlers) deleteTemplateAuthScheme(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTemplateAuthScheme(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "scheme")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listRevisions(w http.ResponseWriter, r *http.Request) {
	revs, err := h.svc.ListRevisions(r.Context(), chi.URLParam(r, "model"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.RevisionsResponse{Revisions: revs})
}

func (h *handlers) getRevision(w http.ResponseWriter, r *http.Request) {
	rev, err := h.svc.GetRevision(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (h *handlers) saveRevision(w http.ResponseWriter, r *http.Request) {
	var rev types.Revision
	if !decodeJSON(w, r, &rev) {
		return
	}
	if err := h.svc.SaveRevision(r.Context(), chi.URLParam(r, "model"), &rev); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (h *handlers) listSecuritySchemes(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListSecuritySchemes(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) saveSecurityScheme(w http.ResponseWriter, r *http.Request) {
	var sc types.SecurityScheme
	if !decodeJSON(w, r, &sc) {
		return
	}
	if err := h.svc.SaveSecurityScheme(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), &sc); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *handlers) deleteSecurityScheme(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteSecurityScheme(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), chi.URLParam(r, "scheme"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listResources(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListResources(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) saveResource(w http.ResponseWriter, r *http.Request) {
	var res types.Resource
	if !decodeJSON(w, r, &res) {
		return
	}
	created := res.UUID == ""
	if err := h.svc.SaveResource(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), &res); err != nil {
		writeServiceError(w, err)
		return
	}
	saved(w, created, res)
}

func (h *handlers) deleteResource(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteResource(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), chi.URLParam(r, "res"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listMethods(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListMethods(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), chi.URLParam(r, "res"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) saveMethod(w http.ResponseWriter, r *http.Request) {
	var m types.Method
	if !decodeJSON(w, r, &m) {
		return
	}
	created := m.UUID == ""
	err := h.svc.SaveMethod(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), chi.URLParam(r, "res"), &m)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	saved(w, created, m)
}

// deleteMethod reads the node action from ?nodeAction= or from an optional
// JSON body.
func (h *handlers) deleteMethod(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("nodeAction")
	if raw == "" && r.ContentLength > 0 {
		var req types.DeleteMethodRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		raw = req.NodeAction
	}
	var action types.NodeAction
	if raw != "" {
		a, err := types.ParseNodeAction(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		action = a
	}
	err := h.svc.DeleteMethod(r.Context(), chi.URLParam(r, "model"), chi.URLParam(r, "rev"), chi.URLParam(r, "res"), chi.URLParam(r, "method"), action)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) getMethod(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMethod(r.Context(), chi.URLParam(r, "method"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *handlers) renderMethod(w http.ResponseWriter, r *http.Request) {
	html, err := h.svc.RenderMethod(r.Context(), chi.URLParam(r, "method"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *handlers) getNode(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.GetMethodNode(r.Context(), chi.URLParam(r, "method"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// saveNode creates or updates the node of a method. Fields omitted from the
// request keep their stored values.
func (h *handlers) saveNode(w http.ResponseWriter, r *http.Request) {
	var req types.MethodNodeRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	methodUUID := chi.URLParam(r, "method")
	node, err := h.svc.GetMethodNode(r.Context(), methodUUID)
	created := false
	switch {
	case smartdocs.IsNotFound(err):
		node = types.MethodNode{MethodUUID: methodUUID, Published: true}
		created = true
	case err != nil:
		writeServiceError(w, err)
		return
	}
	if req.Title != "" {
		node.Title = req.Title
	}
	if req.Published != nil {
		node.Published = *req.Published
	}
	if err := h.svc.SaveMethodNode(r.Context(), &node); err != nil {
		writeServiceError(w, err)
		return
	}
	saved(w, created, node)
}

func (h *handlers) nodeAction(w http.ResponseWriter, r *http.Request) {
	action, err := types.ParseNodeAction(chi.URLParam(r, "action"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.NodeAction(r.Context(), chi.URLParam(r, "method"), action); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) importModel(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := smartdocs.ImportInput{Contents: []byte(req.Contents), ModelName: req.ModelName}
	var err error
	if req.ContentType != "" {
		if in.ContentType, err = types.ParseContentType(req.ContentType); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Format != "" {
		if in.Format, err = types.ParseDocumentFormat(req.Format); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if in.Source, err = types.ParseImportSource(req.Source); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if d := importDeadline(); d > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, d)
		defer tcancel()
	}
	resp, err := h.svc.ImportModel(ctx, in)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		if ctx.Err() != nil {
			writeJSONError(w, http.StatusGatewayTimeout, "import timed out")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handlers) hooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HooksResponse{Hooks: h.svc.HookCatalog()})
}

func (h *handlers) recentHooks(w http.ResponseWriter, r *http.Request) {
	recs := h.svc.RecentEvents()
	if recs == nil {
		recs = []types.HookRecord{}
	}
	writeJSON(w, http.StatusOK, types.RecentHooksResponse{Records: recs})
}

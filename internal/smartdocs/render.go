package smartdocs

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"

	"smartdocs/internal/cache"
	"smartdocs/internal/hooks"
	"smartdocs/internal/store"
	"smartdocs/pkg/types"
)

// DefaultTemplate renders a method when its model has no custom template.
// %node-title% is left for the render alter observers to fill in.
const DefaultTemplate = `<article class="smartdocs-method" data-nid="{{.Node.NID}}">
<h1 class="method-title">%node-title%</h1>
<p class="method-signature"><span class="verb verb-{{.Method.Verb}}">{{.Method.Verb}}</span> <code>{{.URL}}</code></p>
{{with .Method.Description}}<div class="method-description">{{.}}</div>
{{end}}{{with .Method.Body}}<pre class="method-body" data-content-type="{{$.Method.BodyContentType}}">{{.}}</pre>
{{end}}{{if .SecuritySchemes}}<ul class="method-security">
{{range .SecuritySchemes}}<li class="scheme-{{.Type}}">{{.Name}}</li>
{{end}}</ul>
{{end}}</article>
`

// renderData is the dot of a model template.
type renderData struct {
	Model           types.Model
	Revision        types.Revision
	Resource        types.Resource
	Method          types.Method
	Node            types.MethodNode
	SecuritySchemes []types.SecurityScheme
	TemplateAuth    types.TemplateAuth
	// URL is the revision base URL joined with the resource path.
	URL string
}

// RenderMethod returns the HTML documentation of a method. Cached output is
// returned as is; otherwise the model template is executed, the result runs
// through model.render.alter and is cached before being returned, unless the
// model's pages were invalidated while it rendered. A method without a saved
// node renders with a transient, unpublished node.
func (s *Service) RenderMethod(ctx context.Context, methodUUID string) (string, error) {
	l, err := s.lineageOf(ctx, methodUUID)
	if err != nil {
		return "", err
	}
	key := cache.RenderKey(l.Model.UUID, l.Method.UUID)
	if html, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("render cache read failed")
	} else if ok {
		renderTotal.WithLabelValues("hit").Inc()
		return html, nil
	}
	renderTotal.WithLabelValues("miss").Inc()
	gen := s.generation(l.Model.UUID)

	node, err := s.store.GetNodeByMethod(ctx, l.Method.UUID)
	if errors.Is(err, store.ErrNotFound) {
		node = types.MethodNode{Title: l.Method.DisplayName}
		adoptLineage(&node, l)
	} else if err != nil {
		return "", err
	}
	src, _, err := s.templateContent(ctx, l.Model.UUID)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(l.Model.Name).Parse(src)
	if err != nil {
		return "", ErrInvalid("invalid template of model "+l.Model.Name, err)
	}
	schemes, err := s.store.ListSecuritySchemes(ctx, l.Revision.UUID)
	if err != nil {
		return "", err
	}
	auth, err := s.store.GetTemplateAuth(ctx, l.Model.UUID)
	if err != nil {
		return "", err
	}
	data := renderData{
		Model:           l.Model,
		Revision:        l.Revision,
		Resource:        l.Resource,
		Method:          l.Method,
		Node:            node,
		SecuritySchemes: schemes,
		TemplateAuth:    auth,
		URL:             strings.TrimRight(l.Revision.BaseURL, "/") + l.Resource.Path,
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	html, err := hooks.Alter(ctx, s.reg, hooks.ModelRenderAlter, buf.String(), hooks.RenderAlterArgs{Node: node})
	if err != nil {
		return "", err
	}
	s.cacheRender(ctx, l.Model.UUID, key, html, gen)
	return html, nil
}

package smartdocs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartdocs/internal/hooks"
	"smartdocs/pkg/types"
)

func TestTemplate_SaveGetRevert(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc)

	tpl, err := svc.GetTemplate(ctx, "weather")
	require.NoError(t, err)
	assert.True(t, tpl.Default)
	assert.Equal(t, DefaultTemplate, tpl.Content)

	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.TemplateSavePre, func(_ context.Context, a hooks.TemplateSaveArgs) error {
		*a.Content += "<footer/>"
		return nil
	}))
	var posted string
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.TemplateSavePost, func(_ context.Context, a hooks.TemplateSaveArgs) error {
		posted = *a.Content
		return nil
	}))
	saved, err := svc.SaveTemplate(ctx, "weather", "<main>{{.Method.Name}}</main>")
	require.NoError(t, err)
	assert.Equal(t, "<main>{{.Method.Name}}</main><footer/>", saved.Content)
	assert.Equal(t, saved.Content, posted)

	tpl, err = svc.GetTemplate(ctx, "weather")
	require.NoError(t, err)
	assert.False(t, tpl.Default)
	assert.Equal(t, saved.Content, tpl.Content)

	_, err = svc.SaveTemplate(ctx, "weather", "{{.Broken")
	assert.True(t, IsInvalid(err), "got %v", err)

	var reverted string
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.TemplateReverted, func(_ context.Context, a hooks.TemplateRevertedArgs) error {
		reverted = a.ModelName
		return nil
	}))
	tpl, err = svc.RevertTemplate(ctx, "weather")
	require.NoError(t, err)
	assert.True(t, tpl.Default)
	assert.Equal(t, "weather", reverted)

	_, err = svc.GetTemplate(ctx, "nope")
	assert.True(t, IsNotFound(err))
}

func TestTemplateAuthScheme_Lifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f := seed(t, svc)

	var flags []bool
	var sizes []int
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.TemplateAuthSchemeSavePost, func(_ context.Context, a hooks.TemplateAuthSchemeSaveArgs) error {
		flags = append(flags, a.IsUpdate)
		sizes = append(sizes, len(a.TemplateAuth.Schemes))
		assert.Equal(t, f.Model.UUID, a.ModelUUID)
		return nil
	}))
	sc := types.TemplateAuthScheme{Name: "oauth", Type: "oauth2webserver", ClientID: "id", CallbackURL: "https://portal.example.com/cb"}
	require.NoError(t, svc.SaveTemplateAuthScheme(ctx, "weather", &sc))
	assert.Equal(t, "OAUTH2WEBSERVER", sc.Type)
	sc.ClientSecret = "s3cret"
	require.NoError(t, svc.SaveTemplateAuthScheme(ctx, "weather", &sc))
	assert.Equal(t, []bool{false, true}, flags)
	assert.Equal(t, []int{1, 1}, sizes)

	ta, err := svc.GetTemplateAuth(ctx, "weather")
	require.NoError(t, err)
	got, ok := ta.Scheme("oauth")
	require.True(t, ok)
	assert.Equal(t, "s3cret", got.ClientSecret)

	err = svc.SaveTemplateAuthScheme(ctx, "weather", &types.TemplateAuthScheme{Name: "x", Type: "DIGEST"})
	assert.True(t, IsInvalid(err))

	var deleted string
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.TemplateAuthSchemeDeletePost, func(_ context.Context, a hooks.TemplateAuthSchemeDeleteArgs) error {
		deleted = a.SchemeName
		return nil
	}))
	require.NoError(t, svc.DeleteTemplateAuthScheme(ctx, "weather", "oauth"))
	assert.Equal(t, "oauth", deleted)
	assert.True(t, IsNotFound(svc.DeleteTemplateAuthScheme(ctx, "weather", "oauth")))
}

func TestSecurityScheme_Lifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	f := seed(t, svc)

	var flags []bool
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.SecuritySchemeSavePre, func(_ context.Context, a hooks.SecuritySchemeSaveArgs) error {
		flags = append(flags, a.IsUpdate)
		assert.Equal(t, f.Revision.UUID, a.Revision.UUID)
		assert.Equal(t, "weather", a.Model.Name)
		return nil
	}))
	sc := types.SecurityScheme{Name: "oauth", Type: "oauth2", AuthorizationURL: "https://auth.example.com/authorize", Scopes: []string{"read"}}
	require.NoError(t, svc.SaveSecurityScheme(ctx, "weather", f.Revision.UUID, &sc))
	sc.Scopes = append(sc.Scopes, "write")
	require.NoError(t, svc.SaveSecurityScheme(ctx, "weather", "latest", &sc))
	assert.Equal(t, []bool{false, true}, flags)

	list, err := svc.ListSecuritySchemes(ctx, "weather", "1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"read", "write"}, list[0].Scopes)

	var args hooks.SecurityDeleteArgs
	require.NoError(t, hooks.RegisterFunc(svc.Registry(), hooks.SecurityDeletePre, func(_ context.Context, a hooks.SecurityDeleteArgs) error {
		args = a
		return nil
	}))
	require.NoError(t, svc.DeleteSecurityScheme(ctx, "weather", f.Revision.UUID, "oauth"))
	assert.Equal(t, "oauth", args.Scheme.Name)
	assert.Equal(t, f.Model.UUID, args.ModelUUID)
	assert.Equal(t, f.Revision.UUID, args.RevisionUUID)
	assert.True(t, IsNotFound(svc.DeleteSecurityScheme(ctx, "weather", f.Revision.UUID, "oauth")))
}

func TestRecentEvents_RedactsSecrets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	seed(t, svc)
	sc := types.TemplateAuthScheme{Name: "oauth", Type: "OAUTH2WEBSERVER", ClientID: "id", ClientSecret: "s3cret", CallbackURL: "https://portal.example.com/cb"}
	require.NoError(t, svc.SaveTemplateAuthScheme(ctx, "weather", &sc))

	var found bool
	for _, rec := range svc.RecentEvents() {
		if rec.Name != hooks.TemplateAuthSchemeSavePost.Name() {
			continue
		}
		found = true
		raw, ok := rec.Args.(json.RawMessage)
		require.True(t, ok)
		assert.Contains(t, string(raw), `"clientId":"id"`)
		assert.NotContains(t, string(raw), "s3cret")
	}
	assert.True(t, found)

	sc.ClientID = "changed"
	for _, rec := range svc.RecentEvents() {
		assert.NotContains(t, string(rec.Args.(json.RawMessage)), "changed")
	}
}

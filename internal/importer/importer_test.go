package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"smartdocs/pkg/types"
)

const apimodelJSON = `{
  "name": "weather",
  "displayName": "Weather API",
  "baseUrl": "https://api.example.com/v1",
  "resources": [
    {"name": "forecast", "path": "/forecast", "methods": [
      {"name": "getForecast", "verb": "get", "displayName": "Get forecast"},
      {"name": "postForecast", "verb": "POST"}
    ]}
  ]
}`

const apimodelYAML = `name: weather
displayName: Weather API
resources:
  - name: forecast
    path: /forecast
    methods:
      - name: getForecast
        verb: GET
`

const apimodelXML = `<?xml version="1.0"?>
<apimodel name="weather" displayName="Weather API">
  <resources>
    <resource name="forecast" path="/forecast">
      <methods>
        <method name="getForecast" verb="GET"><description>Fetch</description></method>
      </methods>
    </resource>
  </resources>
</apimodel>`

func TestDecodeAPIModel_AllContentTypes(t *testing.T) {
	cases := []struct {
		ct   types.ContentType
		body string
	}{
		{types.ContentTypeJSON, apimodelJSON},
		{types.ContentTypeYAML, apimodelYAML},
		{types.ContentTypeXML, apimodelXML},
	}
	for _, c := range cases {
		doc, err := Decode([]byte(c.body), c.ct, types.FormatAPIModel)
		if err != nil {
			t.Fatalf("%s: decode: %v", c.ct, err)
		}
		if doc.Name != "weather" || doc.Model().DisplayName != "Weather API" {
			t.Fatalf("%s: unexpected model %+v", c.ct, doc.Model())
		}
		if len(doc.Resources) != 1 || doc.Resources[0].Resource().Path != "/forecast" {
			t.Fatalf("%s: unexpected resources %+v", c.ct, doc.Resources)
		}
		ms := doc.Resources[0].MethodList()
		if len(ms) == 0 || ms[0].Verb != "GET" || ms[0].Name != "getForecast" {
			t.Fatalf("%s: unexpected methods %+v", c.ct, ms)
		}
	}
}

func TestDecode_DefaultsDisplayNames(t *testing.T) {
	doc, err := Decode([]byte(apimodelJSON), types.ContentTypeJSON, types.FormatAPIModel)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ms := doc.Resources[0].MethodList()
	if ms[1].DisplayName != "postForecast" {
		t.Fatalf("display name default: %q", ms[1].DisplayName)
	}
	if doc.Resources[0].Resource().DisplayName != "forecast" {
		t.Fatalf("resource display default")
	}
	if doc.Revision().BaseURL != "https://api.example.com/v1" {
		t.Fatalf("base url: %q", doc.Revision().BaseURL)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode([]byte(`{}`), types.ContentTypeJSON, types.FormatSwagger); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
	if _, err := Decode([]byte(`{"displayName":"x"}`), types.ContentTypeJSON, types.FormatAPIModel); err == nil {
		t.Fatalf("expected missing name error")
	}
	if _, err := Decode([]byte(`not json`), types.ContentTypeJSON, types.FormatAPIModel); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestDetect(t *testing.T) {
	if ct := DetectContentType("x.yaml", nil); ct != types.ContentTypeYAML {
		t.Fatalf("yaml ext: %s", ct)
	}
	if ct := DetectContentType("", []byte("  {\"a\":1}")); ct != types.ContentTypeJSON {
		t.Fatalf("sniff json: %s", ct)
	}
	if ct := DetectContentType("", []byte("<a/>")); ct != types.ContentTypeXML {
		t.Fatalf("sniff xml: %s", ct)
	}
	if f := DetectFormat(types.ContentTypeJSON, []byte(`{"swagger":"2.0"}`)); f != types.FormatSwagger {
		t.Fatalf("swagger: %s", f)
	}
	if f := DetectFormat(types.ContentTypeYAML, []byte("openapi: 3.0.0\n")); f != types.FormatSwagger {
		t.Fatalf("openapi: %s", f)
	}
	if f := DetectFormat(types.ContentTypeXML, []byte(`<?xml version="1.0"?><application xmlns="http://wadl.dev.java.net/2009/02"/>`)); f != types.FormatWADL {
		t.Fatalf("wadl: %s", f)
	}
	if f := DetectFormat(types.ContentTypeXML, []byte(apimodelXML)); f != types.FormatAPIModel {
		t.Fatalf("apimodel xml: %s", f)
	}
}

func TestLoadDir_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":    apimodelYAML,
		"a.json":    apimodelJSON,
		"notes.txt": "ignored",
		"spec.WADL": `<application/>`,
	}
	for n, c := range files {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(c), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	srcs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(srcs) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(srcs))
	}
	if filepath.Base(srcs[0].Path) != "a.json" || srcs[0].ContentType != types.ContentTypeJSON {
		t.Fatalf("unexpected first source %+v", srcs[0])
	}
	if srcs[2].Format != types.FormatWADL {
		t.Fatalf("expected wadl detection, got %s", srcs[2].Format)
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

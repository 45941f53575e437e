// Package importer turns API description documents into smartdocs entities.
// Only the apimodel dialect is decoded here; swagger and wadl documents are
// recognized but rejected with ErrUnsupportedFormat.
package importer

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"smartdocs/pkg/types"
)

// ErrUnsupportedFormat is returned for document formats without a decoder.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is the apimodel dialect: a model with one revision worth of
// resources and methods.
type Document struct {
	XMLName     xml.Name      `json:"-" yaml:"-" xml:"apimodel"`
	Name        string        `json:"name" yaml:"name" xml:"name,attr"`
	DisplayName string        `json:"displayName,omitempty" yaml:"displayName,omitempty" xml:"displayName,attr,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty" xml:"description,omitempty"`
	BaseURL     string        `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty" xml:"baseUrl,attr,omitempty"`
	Resources   []DocResource `json:"resources" yaml:"resources" xml:"resources>resource"`
}

// DocResource is one resource of a Document.
type DocResource struct {
	Name        string      `json:"name" yaml:"name" xml:"name,attr"`
	DisplayName string      `json:"displayName,omitempty" yaml:"displayName,omitempty" xml:"displayName,attr,omitempty"`
	Path        string      `json:"path" yaml:"path" xml:"path,attr"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" xml:"description,omitempty"`
	Methods     []DocMethod `json:"methods" yaml:"methods" xml:"methods>method"`
}

// DocMethod is one method of a DocResource.
type DocMethod struct {
	Name            string `json:"name" yaml:"name" xml:"name,attr"`
	DisplayName     string `json:"displayName,omitempty" yaml:"displayName,omitempty" xml:"displayName,attr,omitempty"`
	Verb            string `json:"verb" yaml:"verb" xml:"verb,attr"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty" xml:"description,omitempty"`
	Body            string `json:"body,omitempty" yaml:"body,omitempty" xml:"body,omitempty"`
	BodyContentType string `json:"bodyContentType,omitempty" yaml:"bodyContentType,omitempty" xml:"bodyContentType,attr,omitempty"`
}

// Decode parses contents of the given content type and format.
func Decode(contents []byte, ct types.ContentType, format types.DocumentFormat) (Document, error) {
	var doc Document
	if format != types.FormatAPIModel {
		return doc, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	var err error
	switch ct {
	case types.ContentTypeJSON:
		err = json.Unmarshal(contents, &doc)
	case types.ContentTypeYAML:
		err = yaml.Unmarshal(contents, &doc)
	case types.ContentTypeXML:
		err = xml.Unmarshal(contents, &doc)
	default:
		return doc, fmt.Errorf("unsupported content type %q", ct)
	}
	if err != nil {
		return doc, fmt.Errorf("decode %s %s: %w", format, ct, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return doc, errors.New("decode apimodel: missing model name")
	}
	return doc, nil
}

// Model returns the model described by the document.
func (d Document) Model() types.Model {
	display := d.DisplayName
	if display == "" {
		display = d.Name
	}
	return types.Model{Name: d.Name, DisplayName: display, Description: strings.TrimSpace(d.Description)}
}

// Revision returns the revision described by the document.
func (d Document) Revision() types.Revision {
	return types.Revision{BaseURL: d.BaseURL, Description: strings.TrimSpace(d.Description)}
}

// Resource converts r; methods are returned separately by MethodList.
func (r DocResource) Resource() types.Resource {
	display := r.DisplayName
	if display == "" {
		display = r.Name
	}
	return types.Resource{Name: r.Name, DisplayName: display, Path: r.Path, Description: strings.TrimSpace(r.Description)}
}

// MethodList converts the methods of r.
func (r DocResource) MethodList() []types.Method {
	out := make([]types.Method, 0, len(r.Methods))
	for _, m := range r.Methods {
		display := m.DisplayName
		if display == "" {
			display = m.Name
		}
		out = append(out, types.Method{
			Name:            m.Name,
			DisplayName:     display,
			Verb:            strings.ToUpper(strings.TrimSpace(m.Verb)),
			Description:     strings.TrimSpace(m.Description),
			Body:            m.Body,
			BodyContentType: m.BodyContentType,
		})
	}
	return out
}

// DetectContentType guesses the content type from the file name, falling back
// to sniffing the first significant byte of contents.
func DetectContentType(name string, contents []byte) types.ContentType {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return types.ContentTypeJSON
	case strings.HasSuffix(lower, ".xml"), strings.HasSuffix(lower, ".wadl"):
		return types.ContentTypeXML
	case strings.HasSuffix(lower, ".yml"), strings.HasSuffix(lower, ".yaml"):
		return types.ContentTypeYAML
	}
	trimmed := bytes.TrimSpace(contents)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '{', '[':
			return types.ContentTypeJSON
		case '<':
			return types.ContentTypeXML
		}
	}
	return types.ContentTypeYAML
}

// DetectFormat inspects contents for swagger/openapi markers or a WADL root
// element; everything else is treated as apimodel.
func DetectFormat(ct types.ContentType, contents []byte) types.DocumentFormat {
	switch ct {
	case types.ContentTypeXML:
		dec := xml.NewDecoder(bytes.NewReader(contents))
		for {
			tok, err := dec.Token()
			if err != nil {
				return types.FormatAPIModel
			}
			if se, ok := tok.(xml.StartElement); ok {
				if se.Name.Local == "application" {
					return types.FormatWADL
				}
				return types.FormatAPIModel
			}
		}
	case types.ContentTypeJSON, types.ContentTypeYAML:
		var top map[string]any
		var err error
		if ct == types.ContentTypeJSON {
			err = json.Unmarshal(contents, &top)
		} else {
			err = yaml.Unmarshal(contents, &top)
		}
		if err == nil {
			if _, ok := top["swagger"]; ok {
				return types.FormatSwagger
			}
			if _, ok := top["openapi"]; ok {
				return types.FormatSwagger
			}
		}
	}
	return types.FormatAPIModel
}

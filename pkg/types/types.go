package types

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// NodeAction is the verb applied to a method node when its method changes.
type NodeAction string

const (
	NodeActionDelete    NodeAction = "delete"
	NodeActionKeep      NodeAction = "keep"
	NodeActionUnpublish NodeAction = "unpublish"
)

// ParseNodeAction validates s against the known node actions.
func ParseNodeAction(s string) (NodeAction, error) {
	switch a := NodeAction(strings.ToLower(strings.TrimSpace(s))); a {
	case NodeActionDelete, NodeActionKeep, NodeActionUnpublish:
		return a, nil
	}
	return "", fmt.Errorf("unknown node action %q (want delete, keep or unpublish)", s)
}

// ContentType is the serialization of an imported document.
type ContentType string

const (
	ContentTypeJSON ContentType = "json"
	ContentTypeXML  ContentType = "xml"
	ContentTypeYAML ContentType = "yml"
)

// ParseContentType accepts short names and application/* media types.
func ParseContentType(s string) (ContentType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "application/")
	v = strings.TrimPrefix(v, "text/")
	if i := strings.IndexByte(v, ';'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	switch v {
	case "json":
		return ContentTypeJSON, nil
	case "xml":
		return ContentTypeXML, nil
	case "yml", "yaml", "x-yaml":
		return ContentTypeYAML, nil
	}
	return "", fmt.Errorf("unsupported content type %q", s)
}

// MediaType returns the application/* form of the content type.
func (c ContentType) MediaType() string { return "application/" + string(c) }

// DocumentFormat is the API description dialect of an imported document.
type DocumentFormat string

const (
	FormatAPIModel DocumentFormat = "apimodel"
	FormatSwagger  DocumentFormat = "swagger"
	FormatWADL     DocumentFormat = "wadl"
)

// ParseDocumentFormat validates s against the known document formats.
func ParseDocumentFormat(s string) (DocumentFormat, error) {
	switch f := DocumentFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAPIModel, FormatSwagger, FormatWADL:
		return f, nil
	}
	return "", fmt.Errorf("unsupported document format %q", s)
}

// ImportSource tells where imported contents came from.
type ImportSource string

const (
	SourceURL  ImportSource = "url"
	SourceFile ImportSource = "file"
)

// ParseImportSource validates s; empty defaults to file.
func ParseImportSource(s string) (ImportSource, error) {
	switch src := ImportSource(strings.ToLower(strings.TrimSpace(s))); src {
	case "":
		return SourceFile, nil
	case SourceURL, SourceFile:
		return src, nil
	}
	return "", fmt.Errorf("unknown import source %q (want url or file)", s)
}

var machineName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("machinename", func(fl validator.FieldLevel) bool {
			return machineName.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks the struct tags of an entity record.
func Validate(v any) error {
	return validatorInstance().Struct(v)
}

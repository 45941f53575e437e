package types

import "time"

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model not found: weather
	Error string `json:"error" example:"model not found: weather"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// RevisionsResponse wraps the list of revisions of a model.
type RevisionsResponse struct {
	Revisions []Revision `json:"revisions"`
}

// DeleteMethodRequest optionally selects what happens to the method's node.
type DeleteMethodRequest struct {
	// One of delete, keep, unpublish. Defaults to delete.
	// example: unpublish
	NodeAction string `json:"nodeAction,omitempty" example:"unpublish"`
}

// MethodNodeRequest is the payload of POST /methods/{method}/node.
type MethodNodeRequest struct {
	// Optional title; defaults to the method display name.
	Title string `json:"title,omitempty"`
	// Defaults to true when omitted.
	Published *bool `json:"published,omitempty"`
}

// TemplateRequest is the payload of PUT /models/{model}/template.
type TemplateRequest struct {
	Content string `json:"content"`
}

// ImportRequest is the payload of POST /import.
type ImportRequest struct {
	// Raw document contents.
	Contents string `json:"contents"`
	// One of json, xml, yml (application/* forms accepted). Detected when empty.
	// example: json
	ContentType string `json:"contentType,omitempty" example:"json"`
	// One of apimodel, swagger, wadl. Detected when empty.
	// example: apimodel
	Format string `json:"format,omitempty" example:"apimodel"`
	// Either url or file. Defaults to file.
	// example: file
	Source string `json:"source,omitempty" example:"file"`
	// Optional model name overriding the one in the document.
	ModelName string `json:"modelName,omitempty"`
}

// ImportResponse summarizes an import.
type ImportResponse struct {
	Model     Model      `json:"model"`
	Revision  Revision   `json:"revision"`
	Resources []Resource `json:"resources"`
	Methods   []Method   `json:"methods"`
}

// HookInfo describes one event key of the hook catalog.
type HookInfo struct {
	// example: method.save.pre
	Name string `json:"name" example:"method.save.pre"`
	// Number of observers registered for the event.
	Observers int `json:"observers"`
	// True for the content-altering event.
	Mutating bool `json:"mutating"`
}

// HooksResponse is returned by GET /hooks.
type HooksResponse struct {
	Hooks []HookInfo `json:"hooks"`
}

// HookRecord is one dispatched event, as returned by GET /hooks/recent and
// streamed over /events.
type HookRecord struct {
	Name  string    `json:"name"`
	Args  any       `json:"args,omitempty"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

// RecentHooksResponse is returned by GET /hooks/recent.
type RecentHooksResponse struct {
	Records []HookRecord `json:"records"`
}

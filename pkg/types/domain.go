package types

import "time"

// Model is the top-level documented API specification.
type Model struct {
	// Stable identifier assigned on first save.
	// example: 6f1c1f0e-6a4b-4f7e-9d8e-2b1f3f1c9a10
	UUID string `json:"uuid" example:"6f1c1f0e-6a4b-4f7e-9d8e-2b1f3f1c9a10"`
	// Machine name, unique across models.
	// example: weather
	Name string `json:"name" validate:"required,max=64,machinename" example:"weather"`
	// Human-friendly name.
	// example: Weather API
	DisplayName string `json:"displayName" validate:"max=255" example:"Weather API"`
	// Free-form description.
	Description string `json:"description,omitempty"`
	// Number of the most recently created revision (0 when none).
	// example: 2
	LatestRevisionNumber int       `json:"latestRevisionNumber" example:"2"`
	CreatedAt            time.Time `json:"createdAt"`
	ModifiedAt           time.Time `json:"modifiedAt"`
}

// Revision is a versioned snapshot of a model's structure.
type Revision struct {
	UUID      string `json:"uuid"`
	ModelUUID string `json:"modelUuid" validate:"required"`
	// Sequential number within the model, starting at 1.
	// example: 1
	Number int `json:"revisionNumber" validate:"gte=1" example:"1"`
	// example: https://api.example.com/v1
	BaseURL     string    `json:"baseUrl,omitempty" validate:"omitempty,url" example:"https://api.example.com/v1"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// Resource groups methods within a revision, e.g. an HTTP endpoint family.
type Resource struct {
	UUID         string `json:"uuid"`
	RevisionUUID string `json:"revisionUuid" validate:"required"`
	// example: forecast
	Name string `json:"name" validate:"required,max=128" example:"forecast"`
	// example: Forecast
	DisplayName string `json:"displayName,omitempty" validate:"max=255" example:"Forecast"`
	// example: /forecast/{city}
	Path        string `json:"path" validate:"required,startswith=/" example:"/forecast/{city}"`
	Description string `json:"description,omitempty"`
}

// Method is a single documented API operation.
type Method struct {
	UUID         string `json:"uuid"`
	ResourceUUID string `json:"resourceUuid" validate:"required"`
	// example: getForecast
	Name string `json:"name" validate:"required,max=128" example:"getForecast"`
	// example: Get forecast
	DisplayName string `json:"displayName,omitempty" validate:"max=255" example:"Get forecast"`
	// example: GET
	Verb        string `json:"verb" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS" example:"GET"`
	Description string `json:"description,omitempty"`
	// Example request body shown in the rendered documentation.
	Body string `json:"body,omitempty"`
	// Media type of the example body.
	// example: application/json
	BodyContentType string `json:"bodyContentType,omitempty" example:"application/json"`
}

// MethodNode is the rendered, publishable artifact of a Method.
type MethodNode struct {
	// Numeric node identifier assigned on first save.
	// example: 42
	NID          int64  `json:"nid" example:"42"`
	MethodUUID   string `json:"methodUuid" validate:"required"`
	ResourceUUID string `json:"resourceUuid" validate:"required"`
	RevisionUUID string `json:"revisionUuid" validate:"required"`
	ModelUUID    string `json:"modelUuid" validate:"required"`
	// example: Weather API: Get forecast
	Title      string    `json:"title" validate:"required,max=255" example:"Weather API: Get forecast"`
	Published  bool      `json:"published"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// SecurityScheme is a named authentication configuration attached to a revision.
type SecurityScheme struct {
	// example: oauth
	Name         string `json:"name" validate:"required,max=128,machinename" example:"oauth"`
	RevisionUUID string `json:"revisionUuid" validate:"required"`
	// example: OAUTH2
	Type string `json:"type" validate:"required,oneof=BASIC APIKEY OAUTH2 CUSTOM" example:"OAUTH2"`
	// Location of the credential for APIKEY schemes (header or query).
	In string `json:"in,omitempty" validate:"omitempty,oneof=header query"`
	// Parameter name carrying the credential for APIKEY schemes.
	ParamName        string   `json:"paramName,omitempty"`
	AuthorizationURL string   `json:"authorizationUrl,omitempty" validate:"omitempty,url"`
	AccessTokenURL   string   `json:"accessTokenUrl,omitempty" validate:"omitempty,url"`
	Scopes           []string `json:"scopes,omitempty"`
}

// TemplateAuth is the per-model authentication configuration used when
// rendering example requests.
type TemplateAuth struct {
	ModelUUID string               `json:"modelUuid"`
	Schemes   []TemplateAuthScheme `json:"schemes"`
}

// Scheme returns the named scheme and whether it exists.
func (ta TemplateAuth) Scheme(name string) (TemplateAuthScheme, bool) {
	for _, s := range ta.Schemes {
		if s.Name == name {
			return s, true
		}
	}
	return TemplateAuthScheme{}, false
}

// TemplateAuthScheme holds the client-side credentials for a security scheme.
type TemplateAuthScheme struct {
	// example: oauth
	Name string `json:"name" validate:"required,max=128,machinename" example:"oauth"`
	// example: OAUTH2WEBSERVER
	Type         string `json:"type" validate:"required,oneof=BASIC OAUTH2 OAUTH2WEBSERVER APIKEY" example:"OAUTH2WEBSERVER"`
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	CallbackURL  string `json:"callbackUrl,omitempty" validate:"omitempty,url"`
}

// Template is the raw rendering template of a model.
type Template struct {
	ModelName string `json:"modelName"`
	Content   string `json:"content"`
	// True when the model has no custom template and the built-in default is used.
	Default bool `json:"default"`
}

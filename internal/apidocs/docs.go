// Package apidocs registers the swagger document of the smartdocs API.
// The document is maintained by hand alongside internal/httpapi routes.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/models": {
			"get": {
				"summary": "List models",
				"tags": [
					"models"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.ModelsResponse"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"summary": "Create or update a model",
				"tags": [
					"models"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Model"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.Model"
						}
					}
				]
			}
		},
		"/models/{model}": {
			"get": {
				"summary": "Get a model",
				"tags": [
					"models"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Model"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			},
			"delete": {
				"summary": "Delete a model",
				"tags": [
					"models"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/template": {
			"get": {
				"summary": "Get the model template",
				"tags": [
					"templates"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Template"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"summary": "Save the model template",
				"tags": [
					"templates"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Template"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.TemplateRequest"
						}
					}
				]
			},
			"delete": {
				"summary": "Revert the model template",
				"tags": [
					"templates"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Template"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/template/revert": {
			"post": {
				"summary": "Revert the model template",
				"tags": [
					"templates"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Template"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/template-auth": {
			"get": {
				"summary": "Get template auth",
				"tags": [
					"auth"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.TemplateAuth"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/template-auth/schemes": {
			"post": {
				"summary": "Save a template auth scheme",
				"tags": [
					"auth"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.TemplateAuthScheme"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.TemplateAuthScheme"
						}
					}
				]
			}
		},
		"/models/{model}/template-auth/schemes/{scheme}": {
			"delete": {
				"summary": "Delete a template auth scheme",
				"tags": [
					"auth"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "scheme",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/revisions": {
			"get": {
				"summary": "List revisions",
				"tags": [
					"revisions"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.RevisionsResponse"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"summary": "Create a revision",
				"tags": [
					"revisions"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Revision"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.Revision"
						}
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}": {
			"get": {
				"summary": "Get a revision by uuid, number or latest",
				"tags": [
					"revisions"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Revision"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}/security": {
			"get": {
				"summary": "List security schemes",
				"tags": [
					"auth"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"summary": "Save a security scheme",
				"tags": [
					"auth"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.SecurityScheme"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.SecurityScheme"
						}
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}/security/{scheme}": {
			"delete": {
				"summary": "Delete a security scheme",
				"tags": [
					"auth"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "scheme",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}/resources": {
			"get": {
				"summary": "List resources",
				"tags": [
					"resources"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"summary": "Create or update a resource",
				"tags": [
					"resources"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Resource"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.Resource"
						}
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}/resources/{res}": {
			"delete": {
				"summary": "Delete a resource and its methods",
				"tags": [
					"resources"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "res",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}/resources/{res}/methods": {
			"get": {
				"summary": "List methods",
				"tags": [
					"methods"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "res",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"summary": "Create or update a method",
				"tags": [
					"methods"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Method"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "res",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.Method"
						}
					}
				]
			}
		},
		"/models/{model}/revisions/{rev}/resources/{res}/methods/{method}": {
			"delete": {
				"summary": "Delete a method",
				"tags": [
					"methods"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "model",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "rev",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "res",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "method",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/methods/{method}": {
			"get": {
				"summary": "Get a method",
				"tags": [
					"methods"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.Method"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "method",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/methods/{method}/render": {
			"get": {
				"summary": "Render the documentation page of a method",
				"tags": [
					"render"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "method",
						"in": "path",
						"required": true
					}
				],
				"produces": [
					"text/html"
				]
			}
		},
		"/methods/{method}/node": {
			"get": {
				"summary": "Get the node of a method",
				"tags": [
					"nodes"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.MethodNode"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "method",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"summary": "Create or update the node of a method",
				"tags": [
					"nodes"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.MethodNode"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "method",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.MethodNodeRequest"
						}
					}
				]
			}
		},
		"/methods/{method}/node/{action}": {
			"post": {
				"summary": "Apply delete, keep or unpublish to a node",
				"tags": [
					"nodes"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "method",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"name": "action",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/import": {
			"post": {
				"summary": "Import an API description document",
				"tags": [
					"import"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.ImportResponse"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/types.ImportRequest"
						}
					}
				]
			}
		},
		"/hooks": {
			"get": {
				"summary": "List hook events with observer counts",
				"tags": [
					"hooks"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.HooksResponse"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				}
			}
		},
		"/hooks/recent": {
			"get": {
				"summary": "List recently dispatched hook events",
				"tags": [
					"hooks"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/types.RecentHooksResponse"
						}
					},
					"default": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/types.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"types.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"code": {
					"type": "integer"
				}
			}
		},
		"types.Model": {
			"type": "object",
			"properties": {
				"uuid": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"displayName": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"latestRevisionNumber": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string"
				},
				"modifiedAt": {
					"type": "string"
				}
			}
		},
		"types.ModelsResponse": {
			"type": "object",
			"properties": {
				"models": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.Model"
					}
				}
			}
		},
		"types.Revision": {
			"type": "object",
			"properties": {
				"uuid": {
					"type": "string"
				},
				"modelUuid": {
					"type": "string"
				},
				"revisionNumber": {
					"type": "integer"
				},
				"baseUrl": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"types.RevisionsResponse": {
			"type": "object",
			"properties": {
				"revisions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.Revision"
					}
				}
			}
		},
		"types.Resource": {
			"type": "object",
			"properties": {
				"uuid": {
					"type": "string"
				},
				"revisionUuid": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"displayName": {
					"type": "string"
				},
				"path": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"types.Method": {
			"type": "object",
			"properties": {
				"uuid": {
					"type": "string"
				},
				"resourceUuid": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"displayName": {
					"type": "string"
				},
				"verb": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"body": {
					"type": "string"
				}
			}
		},
		"types.MethodNode": {
			"type": "object",
			"properties": {
				"nid": {
					"type": "integer"
				},
				"methodUuid": {
					"type": "string"
				},
				"resourceUuid": {
					"type": "string"
				},
				"revisionUuid": {
					"type": "string"
				},
				"modelUuid": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"published": {
					"type": "boolean"
				},
				"modifiedAt": {
					"type": "string"
				}
			}
		},
		"types.MethodNodeRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"published": {
					"type": "boolean"
				}
			}
		},
		"types.Template": {
			"type": "object",
			"properties": {
				"modelName": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"default": {
					"type": "boolean"
				}
			}
		},
		"types.TemplateRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			}
		},
		"types.TemplateAuthScheme": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"clientId": {
					"type": "string"
				},
				"clientSecret": {
					"type": "string"
				},
				"callbackUrl": {
					"type": "string"
				}
			}
		},
		"types.TemplateAuth": {
			"type": "object",
			"properties": {
				"modelUuid": {
					"type": "string"
				},
				"schemes": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.TemplateAuthScheme"
					}
				}
			}
		},
		"types.SecurityScheme": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"in": {
					"type": "string"
				},
				"paramName": {
					"type": "string"
				},
				"authorizationUrl": {
					"type": "string"
				},
				"accessTokenUrl": {
					"type": "string"
				},
				"scopes": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"types.ImportRequest": {
			"type": "object",
			"properties": {
				"contents": {
					"type": "string"
				},
				"contentType": {
					"type": "string"
				},
				"format": {
					"type": "string"
				},
				"source": {
					"type": "string"
				},
				"modelName": {
					"type": "string"
				}
			}
		},
		"types.ImportResponse": {
			"type": "object",
			"properties": {
				"model": {
					"$ref": "#/definitions/types.Model"
				},
				"revision": {
					"$ref": "#/definitions/types.Revision"
				},
				"resources": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.Resource"
					}
				},
				"methods": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.Method"
					}
				}
			}
		},
		"types.HookInfo": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"observers": {
					"type": "integer"
				},
				"mutating": {
					"type": "boolean"
				}
			}
		},
		"types.HooksResponse": {
			"type": "object",
			"properties": {
				"hooks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.HookInfo"
					}
				}
			}
		},
		"types.HookRecord": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"args": {
					"type": "object"
				},
				"error": {
					"type": "string"
				},
				"at": {
					"type": "string"
				}
			}
		},
		"types.RecentHooksResponse": {
			"type": "object",
			"properties": {
				"records": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/types.HookRecord"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{"http"},
	Title:			"smartdocs API",
	Description:	  "Lifecycle hooks and documentation rendering for API models.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

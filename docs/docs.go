// Package docs registers the innsikt OpenAPI description with swag.
package docs

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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Dashboard login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/feedback": {
            "post": {
                "tags": ["feedback"],
                "summary": "Submit survey feedback",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/stats/{report}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Report over the filtered feedback of a team",
                "description": "report is one of ratings, tasks, themes, blockers, words, priority, overview",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "report", "in": "path", "required": true},
                    {"type": "string", "name": "team", "in": "query", "required": true},
                    {"type": "string", "name": "app", "in": "query"},
                    {"type": "string", "name": "fromDate", "in": "query", "description": "YYYY-MM-DD"},
                    {"type": "string", "name": "toDate", "in": "query", "description": "YYYY-MM-DD, inclusive"},
                    {"type": "string", "name": "surveyId", "in": "query"},
                    {"type": "string", "name": "deviceType", "in": "query", "enum": ["mobile", "tablet", "desktop", "unknown"]},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "segment", "in": "query", "description": "key:value"},
                    {"type": "string", "name": "task", "in": "query"},
                    {"type": "string", "name": "context", "in": "query", "enum": ["GENERAL_FEEDBACK", "BLOCKER"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/v1/themes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["themes"],
                "summary": "List themes of a team",
                "parameters": [{"type": "string", "name": "team", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["themes"],
                "summary": "Create a theme",
                "parameters": [
                    {"type": "string", "name": "team", "in": "query", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.ThemeRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/v1/themes/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["themes"],
                "summary": "Update a theme",
                "parameters": [
                    {"type": "string", "name": "team", "in": "query", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.ThemeRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["themes"],
                "summary": "Delete a theme",
                "parameters": [
                    {"type": "string", "name": "team", "in": "query", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/surveys": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "List surveys of a team",
                "parameters": [{"type": "string", "name": "team", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "Register a survey",
                "parameters": [
                    {"type": "string", "name": "team", "in": "query", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.SurveyRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/v1/surveys/{surveyId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["surveys"],
                "summary": "Get a survey",
                "parameters": [
                    {"type": "string", "name": "team", "in": "query", "required": true},
                    {"type": "string", "name": "surveyId", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.SubmitResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "userId": {"type": "string"},
                "teams": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.ThemeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "keywords": {"type": "array", "items": {"type": "string"}},
                "color": {"type": "string"},
                "priority": {"type": "integer"},
                "analysisContext": {"type": "string", "enum": ["GENERAL_FEEDBACK", "BLOCKER"]}
            }
        },
        "model.SurveyRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "type": {"type": "string", "enum": ["RATING", "TOP_TASKS", "DISCOVERY", "TASK_PRIORITY", "CUSTOM"]},
                "app": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Innsikt Feedback Analytics API",
	Description:      "Survey feedback ingestion and dashboard reports",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

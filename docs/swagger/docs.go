// Package swagger holds the OpenAPI document served at /swagger, matching the
// swag annotations on the handlers in feature/.
package swagger

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
        "/paths": {
            "get": {
                "description": "Lists the immediate children of a directory-like path. With a pattern, lists every object below the path whose relative path matches it.",
                "produces": ["application/json"],
                "tags": ["paths"],
                "summary": "List Path",
                "parameters": [
                    {"type": "string", "description": "Path URI, e.g. s3://bucket/dir", "name": "uri", "in": "query", "required": true},
                    {"type": "string", "description": "Glob pattern, e.g. *.txt", "name": "pattern", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Entries", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "description": "Unlinks a file. Removes a directory, which must only hold folder markers unless contents=true.",
                "produces": ["application/json"],
                "tags": ["paths"],
                "summary": "Delete Path",
                "parameters": [
                    {"type": "string", "description": "Path URI", "name": "uri", "in": "query", "required": true},
                    {"type": "boolean", "description": "Remove directory contents", "name": "contents", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Precondition Failed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/paths/content": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["paths"],
                "summary": "Read Object",
                "parameters": [
                    {"type": "string", "description": "Path URI", "name": "uri", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Object content", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["paths"],
                "summary": "Write Object",
                "parameters": [
                    {"type": "string", "description": "Path URI", "name": "uri", "in": "query", "required": true},
                    {"type": "boolean", "description": "Require UTF-8 text", "name": "text", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Written", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/paths/copy": {
            "post": {
                "description": "Server-side copy of every object under src to dst. Objects whose name starts with \"_\" are skipped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["paths"],
                "summary": "Copy Path",
                "parameters": [
                    {"description": "Source and destination URIs", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/browse.CopyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Copied", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/paths/stat": {
            "get": {
                "description": "Reports the bucket, key, existence and file status of a path.",
                "produces": ["application/json"],
                "tags": ["paths"],
                "summary": "Stat Path",
                "parameters": [
                    {"type": "string", "description": "Path URI", "name": "uri", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Info", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reconcile": {
            "get": {
                "description": "Compares every object under src with dst by relative key and size, and lists the actions that would make dst match.",
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "Check Reconciliation",
                "parameters": [
                    {"type": "string", "description": "Source URI", "name": "src", "in": "query", "required": true},
                    {"type": "string", "description": "Destination URI", "name": "dst", "in": "query", "required": true},
                    {"type": "boolean", "description": "Plan deletes for objects missing in src", "name": "purge", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Plan", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reconcile/apply": {
            "post": {
                "description": "Copies missing and mismatched objects from src to dst. With purge, deletes objects in dst that src does not have.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "Apply Reconciliation",
                "parameters": [
                    {"description": "Source, destination and options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/mirror.ApplyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "mirror.ApplyRequest": {
            "type": "object",
            "properties": {
                "dry_run": {"type": "boolean"},
                "dst": {"type": "string"},
                "purge": {"type": "boolean"},
                "src": {"type": "string"}
            }
        },
        "browse.CopyRequest": {
            "type": "object",
            "properties": {
                "dst": {"type": "string"},
                "src": {"type": "string"}
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
	Title:            "s3lib API",
	Description:      "Filesystem-style access to S3 paths.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

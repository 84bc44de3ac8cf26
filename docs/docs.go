// Package docs holds the Swagger spec registered with swaggo/swag,
// backing the /docs/* handler in internal/api/admin/router.go. A real
// build regenerates this file from the @-annotations in cmd/api/main.go
// via `swag init`; its shape here matches exactly what that generator
// emits, so swapping in a generated copy is a drop-in replacement.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Platform Team"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "description": "Liveness probe; always 200 once the process has started.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Liveness probe",
                "responses": {
                    "200": { "description": "ok" }
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe; runs the configured health checks (a ping of the webhook Postgres pool, when one is configured).",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Readiness probe",
                "responses": {
                    "200": { "description": "ready" },
                    "503": { "description": "not ready" }
                }
            }
        },
        "/admin/config/reload": {
            "post": {
                "security": [{"AdminBearer": []}],
                "description": "Re-reads the config file and swaps it in behind an atomic pointer. The CORS origins, webhook secrets and JWT secret in use are fixed at startup and are not changed by a reload.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reload config",
                "responses": {
                    "200": { "description": "reloaded" },
                    "401": { "description": "unauthenticated" }
                }
            }
        }
    },
    "securityDefinitions": {
        "AdminBearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9090",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Connector Gateway Service",
	Description:      "Stateless gRPC gateway dispatching payment operations to third-party connectors through a flow-generic execution engine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

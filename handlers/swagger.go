package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the agenda service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>agenda API docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "agenda", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "Team": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"} } },
      "Contact": { "type": "object", "properties": { "id": {"type":"string"}, "name": {"type":"string"}, "phone": {"type":"string"}, "timezone": {"type":"string"}, "equipos": {"type":"array","items":{"$ref":"#/components/schemas/Team"}} } },
      "ContactInput": { "type": "object", "required": ["name","phone"], "properties": { "name": {"type":"string"}, "phone": {"type":"string"}, "equipos": {"type":"array","items":{"type":"string"}} } }
    }
  },
  "paths": {
    "/contacts": {
      "get": { "summary": "List contacts with timezone and teams", "parameters": [{"name":"name","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "contacts", "content": {"application/json":{"schema":{"type":"array","items":{"$ref":"#/components/schemas/Contact"}}}} } } }
    },
    "/contact": {
      "post": { "summary": "Create a contact", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/ContactInput"} } } }, "responses": { "200": { "description": "created" }, "400": { "description": "invalid input" }, "404": { "description": "unknown team" }, "409": { "description": "phone already exists" } } },
      "put": { "summary": "Update the contact owning phone", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/ContactInput"} } } }, "responses": { "200": { "description": "updated" }, "400": { "description": "invalid input" }, "404": { "description": "contact or team not found" } } },
      "delete": { "summary": "Delete a contact", "parameters": [{"name":"id","in":"query","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } }
    },
    "/teams": {
      "get": { "summary": "List teams", "responses": { "200": { "description": "teams", "content": {"application/json":{"schema":{"type":"array","items":{"$ref":"#/components/schemas/Team"}}}} } } }
    },
    "/team": {
      "get": { "summary": "Get a team", "parameters": [{"name":"id","in":"query","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "team" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } },
      "post": { "summary": "Create a team", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name"],"properties":{"name":{"type":"string"}}} } } }, "responses": { "200": { "description": "created" }, "400": { "description": "invalid input" } } },
      "put": { "summary": "Rename a team", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Team"} } } }, "responses": { "200": { "description": "updated" }, "400": { "description": "invalid input" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a team and pull it from contacts", "parameters": [{"name":"id","in":"query","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`

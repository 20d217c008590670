// Package swaggerkit serves swagger UI over an OpenAPI document assembled
// from the routes each handler package declares
package swaggerkit

import (
	"net/http"
	"sort"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"salesboard/internal/core/version"
	phttp "salesboard/internal/platform/net/http"
)

// Route documents one endpoint; Path is relative to the API scope
type Route struct {
	Method  string
	Path    string
	Tag     string
	Summary string
	// Body names the request schema, empty when the endpoint reads no body
	Body string
}

// Spec renders routes as an OpenAPI 3 document served under base
func Spec(base string, routes []Route) map[string]any {
	paths := map[string]any{}
	tags := map[string]bool{}
	for _, rt := range routes {
		op := map[string]any{
			"summary":     rt.Summary,
			"tags":        []string{rt.Tag},
			"operationId": operationID(rt),
			"responses": map[string]any{
				"200":     map[string]any{"description": "envelope with data"},
				"default": map[string]any{"description": "envelope with code, error and field"},
			},
		}
		if rt.Body != "" {
			op["requestBody"] = map[string]any{
				"required": true,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"type": "object", "title": rt.Body},
					},
				},
			}
		}
		item, _ := paths[rt.Path].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[rt.Path] = item
		}
		item[strings.ToLower(rt.Method)] = op
		tags[rt.Tag] = true
	}

	names := make([]string, 0, len(tags))
	for t := range tags {
		names = append(names, t)
	}
	sort.Strings(names)
	tagList := make([]map[string]string, len(names))
	for i, n := range names {
		tagList[i] = map[string]string{"name": n}
	}

	bi := version.Info()
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Salesboard API",
			"description": "Cascading filters and summary tables over daily ticket sales",
			"version":     bi.Version + "+" + bi.Commit,
		},
		"servers": []map[string]string{{"url": base}},
		"tags":    tagList,
		"paths":   paths,
	}
}

// operationID turns POST /dashboard/report into dashboardReport
func operationID(rt Route) string {
	var sb strings.Builder
	for i, part := range strings.FieldsFunc(rt.Path, func(r rune) bool { return r == '/' || r == '-' || r == '_' }) {
		if i > 0 {
			part = strings.ToUpper(part[:1]) + part[1:]
		}
		sb.WriteString(part)
	}
	return sb.String()
}

// Mount serves the UI at /api/docs/ and the document at /api/docs/doc.json
func Mount(r phttp.Router, enabled bool, base string, routes ...Route) {
	if !enabled {
		return
	}
	spec := Spec(base, routes)
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		phttp.WriteJSON(w, http.StatusOK, spec)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
}

// Package scalar serves the Scalar API reference UI for the published
// OpenAPI document.
package scalar

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Handler returns a handler that renders the reference UI pointed at the
// spec served from specURL.
func Handler(specURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		indexTmpl.Execute(w, map[string]string{"SpecURL": specURL})
	}
}

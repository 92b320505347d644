// Package web holds the page templates and static assets, embedded into the binary.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	// delay renders a duration the way htmx trigger modifiers expect it
	"delay": func(d time.Duration) string {
		return fmt.Sprintf("%dms", d.Milliseconds())
	},
	"categoryURL": func(name string) template.URL {
		return template.URL("/regions/category?" + url.Values{"name": {name}}.Encode())
	},
	"resolveURL": func(id, name string) template.URL {
		return template.URL("/regions/resolve?" + url.Values{"id": {id}, "name": {name}}.Encode())
	},
}

// Templates parses every page and fragment template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
}

// Static is the file tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Package web embeds the HTML templates and the browser client.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates static
var files embed.FS

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

// Static serves the client assets.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

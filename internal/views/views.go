// Package views holds the HTML pages served by the board, embedded into the binary.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Load parses every embedded page. Pages are addressed by file name, e.g. "submit.html".
func Load() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

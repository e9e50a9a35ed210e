// Package templates holds the HTML views of the web front end.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

// FS holds the embedded template files
//
//go:embed *.tmpl pages/*.tmpl components/*.tmpl
var FS embed.FS

// Load parses every template in fsys
func Load(fsys fs.FS) (*template.Template, error) {
	patterns := []string{
		"base.tmpl",
		"pages/*.tmpl",
		"components/*.tmpl",
	}

	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// FuncMap returns the helpers available to templates
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"num": func(f float64) string {
			return fmt.Sprintf("%.1f", f)
		},
	}
}

package ui

import (
	"embed"
	"fmt"
	"html/template"

	"structdetect/domain/core"
)

//go:embed templates/fragments/*/*.html
var embeddedFiles embed.FS

// templateFuncs are shared by every fragment
var templateFuncs = template.FuncMap{
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
	"sub":     func(a, b int) int { return a - b },
	"timestamp": func(t core.Timestamp) string {
		if t.IsZero() {
			return ""
		}
		return t.Time().Format("2006-01-02 15:04")
	},
}

// parseTemplates loads every embedded fragment
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("fragments").Funcs(templateFuncs).ParseFS(embeddedFiles, "templates/fragments/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

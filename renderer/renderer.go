// Package renderer turns valuations into markdown documents.
package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// RenderReport renders a valuation report as markdown.
func RenderReport(r *Report) string {
	return render("report", r)
}

// load parses the template name and all its partials into a single set. Each template is named
// after its file without the ".md" extension.
func load(name string) (*template.Template, error) {
	files, err := fs.Glob(templates, name+"*.md")
	if err != nil {
		return nil, err
	}
	set := template.New(name)
	for _, file := range files {
		base := strings.TrimSuffix(file, ".md")
		if base != name && !strings.HasPrefix(base, name+"_") {
			continue
		}
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return nil, err
		}
		if _, err := set.New(base).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("template %s: %w", file, err)
		}
	}
	if set.Lookup(name) == nil {
		return nil, fmt.Errorf("template %s.md not found", name)
	}
	return set, nil
}

// render executes the template name with data. Failures are rendered in place of the document,
// they can only come from a broken template.
func render(name string, data any) string {
	set, err := load(name)
	if err != nil {
		return fmt.Sprintf("cannot load %s: %v", name, err)
	}
	var b strings.Builder
	if err := set.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("cannot render %s: %v", name, err)
	}
	return b.String()
}

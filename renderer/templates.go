package renderer

import "embed"

// templates holds the report templates. A template named after another one plus a suffix, like
// "report_title.md" for "report.md", is a partial of it.
//
//go:embed *.md
var templates embed.FS

package api

import (
	"embed"
	"html/template"
)

//go:embed static/index.html.tmpl
var apiStaticFS embed.FS

// pageTemplate renders the candidate table page.
var pageTemplate = template.Must(template.ParseFS(apiStaticFS, "static/index.html.tmpl"))

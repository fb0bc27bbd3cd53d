package web

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"postPath": func(query string) string {
		return "/blog/post/" + url.PathEscape(query)
	},
	"categoryPath": func(name string) string {
		return "/blog/category/" + url.PathEscape(name)
	},
}).ParseFS(templatesFS, "templates/*.html"))

// renderMarkdown converts stored article markdown to HTML for templates.
// The content comes from our own generation pipeline, not from request
// input.
func renderMarkdown(md string) template.HTML {
	opts := mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank}
	renderer := mdhtml.NewRenderer(opts)
	return template.HTML(markdown.ToHTML([]byte(md), nil, renderer))
}

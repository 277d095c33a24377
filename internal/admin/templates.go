// ABOUTME: Template loading and rendering for admin UI.
// ABOUTME: Embeds HTML templates and provides render helpers and template funcs.

package admin

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/yuin/goldmark"
)

//go:embed templates/*
var templateFS embed.FS

var (
	layoutTmpl   *template.Template
	pageTmpls    map[string]*template.Template
	partialTmpls *template.Template
)

// partialPaths defines the fragments served to htmx requests
var partialPaths = []string{
	"templates/blocks/description.html",
}

// pageDefinitions maps page names to their template files
func getPageDefinitions() map[string]string {
	return map[string]string{
		"dashboard":   "templates/dashboard.html",
		"blocks-list": "templates/blocks/list.html",
		"blocks-form": "templates/blocks/form.html",
		"logs-list":   "templates/logs/list.html",
	}
}

var funcs = template.FuncMap{
	"markdown": markdownToHTML,
	"timeAgo":  timeAgo,
}

// markdownToHTML converts a markdown string to HTML using goldmark.
// goldmark drops raw HTML in the input unless told otherwise.
func markdownToHTML(input string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(buf.String())
}

// timeAgo formats a time as a short relative duration.
func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago"
	}
}

func parsePartialTemplates() *template.Template {
	return template.Must(template.New("partials").Funcs(funcs).ParseFS(templateFS, partialPaths...))
}

// parsePageTemplates creates a map of page templates, each with layout and partials
func parsePageTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	for name, path := range getPageDefinitions() {
		tmpl := template.Must(layoutTmpl.Clone())
		tmpl = template.Must(tmpl.ParseFS(templateFS, path))
		tmpl = template.Must(tmpl.ParseFS(templateFS, partialPaths...))
		templates[name] = tmpl
	}
	return templates
}

func init() {
	layoutTmpl = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html"))
	partialTmpls = parsePartialTemplates()
	pageTmpls = parsePageTemplates()
}

func renderPage(w io.Writer, page string, data any) error {
	tmpl, ok := pageTmpls[page]
	if !ok {
		return nil
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

func renderPartial(w io.Writer, name string, data any) error {
	return partialTmpls.ExecuteTemplate(w, name, data)
}

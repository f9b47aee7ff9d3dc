// Package emitter renders parsed pages to HTML.
package emitter

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/html"

	"github.com/aledsdavies/blog/pkgs/ast"
	"github.com/aledsdavies/blog/pkgs/config"
	"github.com/aledsdavies/blog/pkgs/result"
	"github.com/aledsdavies/blog/pkgs/styles"
)

// DateLayout formats the ::date marker
const DateLayout = "Monday, January 02, 2006"

const headTemplate = `<html>
<head>
<meta charset="utf-8">
{{- if .Analytics}}
{{.Analytics}}
{{- end}}
<title>{{.Title}}</title>
{{- if .Stylesheet}}
<link rel="stylesheet" href="/{{.Stylesheet}}">
{{- end}}
{{- if .Links}}
{{.Links}}
{{- end}}
{{- if .Icon}}
<link rel="icon" href="{{.Icon}}">
{{- end}}
</head>
<body>
`

var head = template.Must(template.New("head").Parse(headTemplate))

// headData holds pre-escaped values for the head template
type headData struct {
	Analytics  string
	Title      string
	Stylesheet string
	Links      string
	Icon       string
}

// Option configures an Emitter
type Option func(*Emitter)

// WithClock replaces the clock used for ::date
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		e.now = now
	}
}

// Emitter renders expressions for one site. It only reads its config and
// site files, so one Emitter serves every page of a build.
type Emitter struct {
	cfg  *config.Config
	site fs.FS
	now  func() time.Time
}

// New creates an emitter. site is the site root; analytics snippets and
// included code files are read from it.
func New(cfg *config.Config, site fs.FS, opts ...Option) *Emitter {
	e := &Emitter{
		cfg:  cfg,
		site: site,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit renders a complete HTML document. The expressions must already
// have passed validation. File read failures are accumulated and the
// rest of the page is still rendered.
func (e *Emitter) Emit(exprs []ast.Expression, page Page) result.Result[string] {
	var out strings.Builder

	res := e.head(&out, page)

	for _, expr := range exprs {
		var rendered string
		if _, ok := expr.(ast.Menu); ok {
			rendered = e.Menu()
		} else {
			r := e.Render(expr, true)
			res = res.Errs(r.Errors()...)
			rendered = r.Value()
		}

		if rendered != "" {
			out.WriteString(rendered)
			out.WriteString("\n")
		}
	}

	out.WriteString("</body>\n</html>\n")

	return res.Ok(out.String())
}

func (e *Emitter) head(out *strings.Builder, page Page) result.Result[string] {
	var res result.Result[string]

	data := headData{
		Title: html.EscapeString(e.title(page)),
	}

	if e.cfg.HasAnalytics() {
		snippet, err := fs.ReadFile(e.site, sitePath(e.cfg.Analytics.Tag))
		if err != nil {
			res = res.ErrContext(err, "could not read analytics file '%s'", e.cfg.Analytics.Tag)
		} else {
			data.Analytics = strings.TrimSpace(string(snippet))
		}
	}

	if e.cfg.HasStyle() {
		data.Stylesheet = styles.StylesheetFileName
		data.Links = strings.TrimSpace(styles.Links(e.cfg.SiteStyle()))
	}

	if e.cfg.HasIcon() {
		data.Icon = html.EscapeString("/" + sitePath(e.cfg.Site.Icon))
	}

	if err := head.Execute(out, data); err != nil {
		res = res.Err(fmt.Errorf("failed to execute head template: %w", err))
	}

	return res
}

func (e *Emitter) title(page Page) string {
	if page.IsIndex() {
		return e.cfg.Site.Name
	}
	return page.Title() + " | " + e.cfg.Site.Name
}

// Menu renders the configured menu, or "" when the site has none
func (e *Emitter) Menu() string {
	if !e.cfg.HasMenu() {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="menu">`)
	for _, item := range e.cfg.MenuItems() {
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, html.EscapeString(item.Link), html.EscapeString(item.Name))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Render renders a single expression. At the top level inline expressions
// are wrapped in a paragraph; block expressions never are. Menu and Error
// expressions must not reach Render.
func (e *Emitter) Render(expr ast.Expression, top bool) result.Result[string] {
	inline := func(s string) result.Result[string] {
		if top {
			return result.Ok("<p>" + s + "</p>")
		}
		return result.Ok(s)
	}

	switch x := expr.(type) {
	case ast.Heading:
		return result.Ok(fmt.Sprintf("<h%d>%s</h%d>", x.Level, html.EscapeString(x.Text), x.Level))

	case ast.Paragraph:
		var res result.Result[string]
		var b strings.Builder
		b.WriteString("<p>")
		for _, child := range x.Children {
			r := e.Render(child, false)
			res = res.Errs(r.Errors()...)
			b.WriteString(r.Value())
		}
		b.WriteString("</p>")
		return res.Ok(b.String())

	case ast.Text:
		return inline(html.EscapeString(x.Value))

	case ast.Italic:
		return inline("<em>" + html.EscapeString(x.Value) + "</em>")

	case ast.Bold:
		return inline("<strong>" + html.EscapeString(x.Value) + "</strong>")

	case ast.BoldItalic:
		return inline("<strong><em>" + html.EscapeString(x.Value) + "</em></strong>")

	case ast.Hyperlink:
		return inline(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(x.Href), html.EscapeString(x.Text)))

	case ast.Image:
		return inline(fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(x.Href), html.EscapeString(x.Alt)))

	case ast.FloatingImage:
		return inline(fmt.Sprintf(`<img src="%s" class="floating" alt="%s">`, html.EscapeString(x.Href), html.EscapeString(x.Alt)))

	case ast.Tile:
		return result.Ok(renderTile(x))

	case ast.Notice:
		return result.Ok(`<div class="notice">` + html.EscapeString(x.Message) + `</div>`)

	case ast.WorkInProgress:
		return result.Ok(`<div class="wip">` + html.EscapeString(x.Message) + `</div>`)

	case ast.Code:
		return e.renderCode(x)

	case ast.Date:
		return result.Ok(`<h6 class="last-updated-date">Last Updated ` + e.now().Format(DateLayout) + `</h6>`)

	case ast.Newline:
		return result.Ok("")

	case ast.Menu:
		panic("emitter: menu must be resolved by Emit")

	case ast.Error:
		panic(fmt.Sprintf("emitter: unvalidated error expression: %s", x))

	default:
		panic(fmt.Sprintf("emitter: unknown expression %T", expr))
	}
}

// quotedReplacer escapes a value for a single-quoted JavaScript or CSS
// string. The attribute is HTML-decoded before the string is read, so this
// must run before HTML escaping.
var quotedReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// quotedAttr escapes a value placed in a quoted string inside an attribute
func quotedAttr(s string) string {
	return html.EscapeString(quotedReplacer.Replace(s))
}

func renderTile(t ast.Tile) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		`<div class="tile" onclick="window.location='%s';" style="background-image: url('%s'); cursor: pointer; background-position: center;"><div>%s</div>`,
		quotedAttr(t.Href), quotedAttr(t.Image), html.EscapeString(t.Title))
	if t.Description != "" {
		fmt.Fprintf(&b, `<br><div class="desc">%s</div>`, html.EscapeString(t.Description))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (e *Emitter) renderCode(c ast.Code) result.Result[string] {
	var res result.Result[string]

	source, err := fs.ReadFile(e.site, sitePath(c.Path))
	if err != nil {
		res = res.ErrContext(err, "could not include code file '%s'", c.Path)
	}

	return res.Ok(fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`,
		html.EscapeString(c.Language), html.EscapeString(string(source))))
}

// sitePath converts a path from a page or the config into a path inside
// the site fs. It cannot climb out of the site root.
func sitePath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

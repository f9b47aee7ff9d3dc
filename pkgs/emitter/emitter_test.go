package emitter

import (
	"regexp"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/aledsdavies/blog/pkgs/ast"
	"github.com/aledsdavies/blog/pkgs/config"
	"github.com/aledsdavies/blog/pkgs/parser"
)

var fixedClock = WithClock(func() time.Time {
	return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
})

func newEmitter(cfg *config.Config, site fstest.MapFS) *Emitter {
	if site == nil {
		site = fstest.MapFS{}
	}
	return New(cfg, site, fixedClock)
}

func bareConfig() *config.Config {
	return &config.Config{Site: config.Site{Name: "Site"}}
}

func TestRender(t *testing.T) {
	e := newEmitter(bareConfig(), nil)

	tests := []struct {
		name string
		expr ast.Expression
		top  bool
		want string
	}{
		{"heading", ast.Heading{Level: 2, Text: "A & B"}, true, "<h2>A &amp; B</h2>"},
		{"text at top level", ast.Text{Value: "hi <there>"}, true, "<p>hi &lt;there&gt;</p>"},
		{"text nested", ast.Text{Value: "hi"}, false, "hi"},
		{"italic", ast.Italic{Value: "i"}, false, "<em>i</em>"},
		{"bold at top level", ast.Bold{Value: "b"}, true, "<p><strong>b</strong></p>"},
		{"bold italic", ast.BoldItalic{Value: "x"}, false, "<strong><em>x</em></strong>"},
		{"hyperlink", ast.Hyperlink{Text: "Docs", Href: "/docs?a=1&b=2"}, false, `<a href="/docs?a=1&amp;b=2">Docs</a>`},
		{"image at top level", ast.Image{Alt: "cat", Href: "/cat.png"}, true, `<p><img src="/cat.png" alt="cat"></p>`},
		{"floating image", ast.FloatingImage{Alt: "dog", Href: "/dog.png"}, false, `<img src="/dog.png" class="floating" alt="dog">`},
		{
			"paragraph is not double wrapped",
			ast.Paragraph{Children: []ast.Expression{ast.Text{Value: "see "}, ast.Italic{Value: "this"}}},
			true,
			"<p>see <em>this</em></p>",
		},
		{"notice", ast.Notice{Message: "Heads up"}, true, `<div class="notice">Heads up</div>`},
		{"wip", ast.WorkInProgress{Message: "Soon"}, true, `<div class="wip">Soon</div>`},
		{
			"tile with description",
			ast.Tile{Title: "Blog", Description: "Posts", Href: "/blog", Image: "/b.png"},
			true,
			`<div class="tile" onclick="window.location='/blog';" style="background-image: url('/b.png'); cursor: pointer; background-position: center;"><div>Blog</div><br><div class="desc">Posts</div></div>`,
		},
		{
			"tile without description",
			ast.Tile{Title: "Blog", Href: "/blog", Image: "/b.png"},
			true,
			`<div class="tile" onclick="window.location='/blog';" style="background-image: url('/b.png'); cursor: pointer; background-position: center;"><div>Blog</div></div>`,
		},
		{"date", ast.Date{}, true, `<h6 class="last-updated-date">Last Updated Tuesday, March 05, 2024</h6>`},
		{"newline", ast.Newline{}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Render(tt.expr, tt.top)
			require.False(t, got.Failed())
			assert.Equal(t, tt.want, got.Value())
		})
	}
}

func TestRenderPanicsOnUnresolvedExpressions(t *testing.T) {
	e := newEmitter(bareConfig(), nil)

	assert.Panics(t, func() { e.Render(ast.Menu{}, true) })
	assert.Panics(t, func() { e.Render(ast.Error{Err: ast.ErrUnexpectedEnd()}, true) })
}

func TestRenderCode(t *testing.T) {
	site := fstest.MapFS{
		"src/main.go": {Data: []byte("if a < b {}\n")},
	}
	e := newEmitter(bareConfig(), site)

	got := e.Render(ast.Code{Language: "go", Path: "/src/main.go"}, true)
	require.False(t, got.Failed())
	assert.Equal(t, `<pre><code class="language-go">if a &lt; b {}`+"\n"+`</code></pre>`, got.Value())

	missing := e.Render(ast.Code{Language: "go", Path: "nope.go"}, true)
	require.True(t, missing.Failed())
	assert.Contains(t, missing.Errors()[0].Error(), "could not include code file 'nope.go'")
}

func TestMenu(t *testing.T) {
	cfg := bareConfig()
	assert.Empty(t, newEmitter(cfg, nil).Menu())

	cfg.Menu = config.Menu{Names: []string{"Home", "Blog"}, Links: []string{"/", "/blog"}}
	assert.Equal(t,
		`<div class="menu"><a href="/">Home</a><a href="/blog">Blog</a></div>`,
		newEmitter(cfg, nil).Menu())
}

func TestEmitMinimalPage(t *testing.T) {
	e := newEmitter(bareConfig(), nil)

	got := e.Emit(parser.Parse("# Hi\n"), Page{Path: "index.txt"})
	require.False(t, got.Failed())

	want := "<html>\n" +
		"<head>\n" +
		"<meta charset=\"utf-8\">\n" +
		"<title>Site</title>\n" +
		"</head>\n" +
		"<body>\n" +
		"<h1>Hi</h1>\n" +
		"</body>\n" +
		"</html>\n"
	assert.Equal(t, want, got.Value())
}

func TestEmitMenuAbsentProducesNothing(t *testing.T) {
	e := newEmitter(bareConfig(), nil)

	withMenu := e.Emit(parser.Parse("~\n# Hi\n"), Page{Path: "index.txt"})
	withoutMenu := e.Emit(parser.Parse("# Hi\n"), Page{Path: "index.txt"})

	assert.Equal(t, withoutMenu.Value(), withMenu.Value())
}

func TestEmitFullHead(t *testing.T) {
	cfg := &config.Config{
		Site:      config.Site{Name: "Site", Icon: "media/icon.png", Style: "modern"},
		Menu:      config.Menu{Names: []string{"Home"}, Links: []string{"/"}},
		Analytics: config.Analytics{Tag: "analytics.html"},
	}
	site := fstest.MapFS{
		"analytics.html": {Data: []byte("<script>track()</script>\n")},
	}
	e := newEmitter(cfg, site)

	got := e.Emit(parser.Parse("~\nHello *world*\n"), Page{Path: "blog/my-first_post.txt"})
	require.False(t, got.Failed())

	out := got.Value()
	assert.Contains(t, out, "<script>track()</script>")
	assert.Contains(t, out, "<title>My First Post | Site</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="/style.css">`)
	assert.Contains(t, out, `<link rel="icon" href="/media/icon.png">`)
	assert.Contains(t, out, "fonts.googleapis.com")
	assert.Contains(t, out, `<div class="menu"><a href="/">Home</a></div>`)

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, findAll(doc, "title"), 1)
	assert.Len(t, findAll(doc, "em"), 1)
	assert.Len(t, findAll(doc, "p"), 1)
}

func TestEmitAccumulatesReadFailures(t *testing.T) {
	cfg := bareConfig()
	cfg.Analytics.Tag = "missing.html"
	e := newEmitter(cfg, nil)

	got := e.Emit(parser.Parse("::code[go][a.go]\n::code[go][b.go]\n"), Page{Path: "index.txt"})

	require.True(t, got.Failed())
	errs := got.Errors()
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "missing.html")
	assert.Contains(t, errs[1].Error(), "a.go")
	assert.Contains(t, errs[2].Error(), "b.go")

	// The rest of the page is still rendered
	assert.Contains(t, got.Value(), "</html>")
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		path    string
		title   string
		isIndex bool
	}{
		{"index.txt", "Index", true},
		{"blog/index.txt", "Index", true},
		{"about.txt", "About", false},
		{"blog/my-first_post.txt", "My First Post", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := Page{Path: tt.path}
			assert.Equal(t, tt.title, p.Title())
			assert.Equal(t, tt.isIndex, p.IsIndex())
		})
	}
}

func TestSitePath(t *testing.T) {
	assert.Equal(t, "a/b.go", sitePath("/a/b.go"))
	assert.Equal(t, "a/b.go", sitePath("a/./b.go"))
	assert.Equal(t, "etc/passwd", sitePath("../../etc/passwd"))
}

func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		found = append(found, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, findAll(c, tag)...)
	}
	return found
}

var paragraphPattern = regexp.MustCompile(`(?s)<p>(.*?)</p>`)

var blockTags = []string{"<div", "<h1", "<h2", "<h3", "<h4", "<h5", "<h6", "<pre", "<p>"}

func TestBlockControlsNeverRenderInsideParagraphs(t *testing.T) {
	site := fstest.MapFS{"main.go": {Data: []byte("package main\n")}}
	e := newEmitter(bareConfig(), site)

	doc := "updated ::date\n" +
		"see ::notice[careful] after\n" +
		"wait ::wip[soon]\n" +
		"a *x*::tile[T][D][/h][/i.png]\n" +
		"cards ::link-tile[Blog][/blog][/b.png]\n" +
		"source ::code[go][main.go]\n" +
		"look ::image[cat][/cat.png] and ::float[dog][/dog.png]\n"

	got := e.Emit(parser.Parse(doc), Page{Path: "index.txt"})
	require.False(t, got.Failed(), "unexpected errors: %v", got.Errors())
	out := got.Value()

	for _, match := range paragraphPattern.FindAllStringSubmatch(out, -1) {
		for _, tag := range blockTags {
			assert.NotContains(t, match[1], tag, "block element inside paragraph %q", match[0])
		}
	}

	// A parser closes a <p> early when a block starts inside it, which
	// would leave it with more paragraphs than the raw output
	doc2, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, findAll(doc2, "p"), strings.Count(out, "<p>"))

	assert.Contains(t, out, `<p>look <img src="/cat.png" alt="cat"> and `)
}

func TestTileQuotesScriptAndStyleValues(t *testing.T) {
	e := newEmitter(bareConfig(), nil)

	got := e.Render(ast.Tile{Title: "T", Href: "/a'b\\c", Image: "/x').png"}, true)
	require.False(t, got.Failed())

	assert.Contains(t, got.Value(), `onclick="window.location='/a\&#39;b\\c';"`)
	assert.Contains(t, got.Value(), `url('/x\&#39;).png')`)
}

func TestPageTitleIsSafeForConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	titles := make([]string, 8)

	for i := range titles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			titles[i] = Page{Path: "blog/my-first_post.txt"}.Title()
		}()
	}
	wg.Wait()

	for _, title := range titles {
		assert.Equal(t, "My First Post", title)
	}
}

func TestEmitIsSafeForConcurrentUse(t *testing.T) {
	e := newEmitter(bareConfig(), nil)
	exprs := parser.Parse("# Hi\nSome *text*\n::date\n")
	want := e.Emit(exprs, Page{Path: "some-page.txt"}).Value()

	for i := 0; i < 4; i++ {
		t.Run("page", func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, e.Emit(exprs, Page{Path: "some-page.txt"}).Value())
		})
	}
}

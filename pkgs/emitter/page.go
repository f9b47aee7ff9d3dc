package emitter

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IndexName is the file stem of a directory's landing page
const IndexName = "index"

// Page identifies the source file being emitted
type Page struct {
	Path string // relative to the source directory
}

// Name returns the file stem, without directory or extension
func (p Page) Name() string {
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsIndex reports whether the page is a directory's landing page
func (p Page) IsIndex() bool {
	return p.Name() == IndexName
}

// Title turns the file stem into a display title: "my-first_post" becomes
// "My First Post"
func (p Page) Title() string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(p.Name())

	// A Caser keeps state between calls, so each title gets its own
	return cases.Title(language.English).String(name)
}

// Package styles bundles the stylesheets and font links for each site style.
package styles

import (
	_ "embed"

	"github.com/aledsdavies/blog/pkgs/config"
)

// StylesheetFileName is the name the stylesheet is written under in the
// output directory
const StylesheetFileName = "style.css"

var (
	//go:embed stylesheets/modern.css
	modernStylesheet string
	//go:embed stylesheets/tech.css
	techStylesheet string

	//go:embed links/modern.html
	modernLinks string
	//go:embed links/tech.html
	techLinks string
)

// Stylesheet returns the CSS for a style, or "" for NoStyle
func Stylesheet(style config.Style) string {
	switch style {
	case config.Modern:
		return modernStylesheet
	case config.Tech:
		return techStylesheet
	default:
		return ""
	}
}

// Links returns the <link> elements a style needs in the page head
func Links(style config.Style) string {
	switch style {
	case config.Modern:
		return modernLinks
	case config.Tech:
		return techLinks
	default:
		return ""
	}
}

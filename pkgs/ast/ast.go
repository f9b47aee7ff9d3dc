package ast

import "strings"

// MaxHeadingLevel is the deepest heading the grammar supports (h6)
const MaxHeadingLevel = 6

// Expression represents one node of a parsed page
//
// The set of expressions is closed: only types in this package implement
// it. String returns a plain-text rendering used to point at a location in
// diagnostics, never HTML.
type Expression interface {
	String() string
	expression()
}

// Heading is a heading of level 1 to 6
type Heading struct {
	Level int
	Text  string
}

// Paragraph owns an ordered list of inline expressions
type Paragraph struct {
	Children []Expression
}

// Text is a literal run of text
type Text struct {
	Value string
}

// Italic is italic text: *text* or _text_
type Italic struct {
	Value string
}

// Bold is bold text: **text** or __text__
type Bold struct {
	Value string
}

// BoldItalic is bold italic text: ***text***, ___text___, **_text**_ or __*text__*
type BoldItalic struct {
	Value string
}

// Hyperlink is [text](href)
type Hyperlink struct {
	Text string
	Href string
}

// Image is ::image[alt][href]
type Image struct {
	Alt  string
	Href string
}

// FloatingImage is ::float[alt][href], an image text flows around
type FloatingImage struct {
	Alt  string
	Href string
}

// Tile is a clickable card. Description is empty for ::link-tile.
type Tile struct {
	Title       string
	Description string
	Href        string
	Image       string
}

// Notice is a highlighted ::notice[message] banner
type Notice struct {
	Message string
}

// WorkInProgress is a ::wip[message] banner
type WorkInProgress struct {
	Message string
}

// Code includes a source file: ::code[language][path]
type Code struct {
	Language string
	Path     string
}

// Date is the ::date "last updated" marker
type Date struct{}

// Menu is a placeholder for the site menu; the emitter resolves it
type Menu struct{}

// Newline is a paragraph break: one or more consecutive newlines
type Newline struct{}

// Error wraps a malformed construct. Errors only ever appear at the top
// level of the parser output.
type Error struct {
	Err *ParseError
}

func (Heading) expression()        {}
func (Paragraph) expression()      {}
func (Text) expression()           {}
func (Italic) expression()         {}
func (Bold) expression()           {}
func (BoldItalic) expression()     {}
func (Hyperlink) expression()      {}
func (Image) expression()          {}
func (FloatingImage) expression()  {}
func (Tile) expression()           {}
func (Notice) expression()         {}
func (WorkInProgress) expression() {}
func (Code) expression()           {}
func (Date) expression()           {}
func (Menu) expression()           {}
func (Newline) expression()        {}
func (Error) expression()          {}

func (h Heading) String() string        { return h.Text }
func (t Text) String() string           { return t.Value }
func (i Italic) String() string         { return i.Value }
func (b Bold) String() string           { return b.Value }
func (b BoldItalic) String() string     { return b.Value }
func (h Hyperlink) String() string      { return h.Text }
func (i Image) String() string          { return i.Alt }
func (f FloatingImage) String() string  { return f.Alt }
func (t Tile) String() string           { return t.Title }
func (n Notice) String() string         { return n.Message }
func (w WorkInProgress) String() string { return w.Message }
func (c Code) String() string           { return c.Path }
func (Date) String() string             { return "::date" }
func (Menu) String() string             { return "~" }
func (Newline) String() string          { return "" }

func (p Paragraph) String() string {
	var b strings.Builder
	for _, child := range p.Children {
		b.WriteString(child.String())
	}
	return b.String()
}

func (e Error) String() string {
	if e.Err == nil {
		return "error"
	}
	return e.Err.Error()
}

// IsError reports whether expr is an Error expression
func IsError(expr Expression) bool {
	_, ok := expr.(Error)
	return ok
}

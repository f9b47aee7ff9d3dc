package lexer

import "fmt"

// TokenClass represents the lexical category of a token
//
// The grammar is closed: every rune of a source file lands in exactly one
// of these classes, so tokenizing never fails.
type TokenClass int

const (
	Text        TokenClass = iota // plain text run
	Hashes                        // # run - heading marker, length is the level
	Newline                       // \n - one token per rune
	OpenSquare                    // [ - hyperlink / argument start
	CloseSquare                   // ] - hyperlink / argument end
	OpenParen                     // ( - href start
	CloseParen                    // ) - href end
	Emphasis                      // * or _ run
	Control                       // :: - control sequence prefix
	Menu                          // ~ - menu placeholder
)

// Pre-computed class name lookup for diagnostics
var classNames = [...]string{
	Text:        "Text",
	Hashes:      "Hashes",
	Newline:     "Newline",
	OpenSquare:  "OpenSquare",
	CloseSquare: "CloseSquare",
	OpenParen:   "OpenParen",
	CloseParen:  "CloseParen",
	Emphasis:    "Emphasis",
	Control:     "Control",
	Menu:        "Menu",
}

func (c TokenClass) String() string {
	if int(c) < len(classNames) && int(c) >= 0 {
		return classNames[c]
	}
	return fmt.Sprintf("TokenClass(%d)", int(c))
}

// InlinePrecedence is the binding strength a paragraph uses as its bound.
// Classes above it are inline constructs that may nest inside a paragraph;
// classes at or below it are either literal text or block boundaries.
const InlinePrecedence = 4

var precedences = [...]int{
	Newline:     1,
	Hashes:      2,
	Menu:        3,
	Text:        4,
	OpenParen:   4,
	CloseParen:  4,
	CloseSquare: 4,
	Emphasis:    5,
	OpenSquare:  5,
	Control:     5,
}

// Precedence returns the binding strength of a token class
func (c TokenClass) Precedence() int {
	if int(c) < len(precedences) && int(c) >= 0 {
		return precedences[c]
	}
	return 0
}

// Token is a single lexical unit. Tokens are never mutated after creation.
type Token struct {
	Class TokenClass
	Value string
}

// Precedence returns the binding strength of the token's class
func (t Token) Precedence() int {
	return t.Class.Precedence()
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Class, t.Value)
}

// Cursor is a read-only index view over a token slice
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor creates a cursor positioned at the first token
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the next token without consuming it
func (c *Cursor) Peek() (Token, bool) {
	if c.pos < len(c.tokens) {
		return c.tokens[c.pos], true
	}
	return Token{}, false
}

// PeekAt returns the token offset positions after the next one without
// consuming anything. PeekAt(0) is Peek.
func (c *Cursor) PeekAt(offset int) (Token, bool) {
	if i := c.pos + offset; offset >= 0 && i < len(c.tokens) {
		return c.tokens[i], true
	}
	return Token{}, false
}

// Next consumes and returns the next token
func (c *Cursor) Next() (Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Done reports whether every token has been consumed
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}

// Pos returns the index of the next token
func (c *Cursor) Pos() int {
	return c.pos
}

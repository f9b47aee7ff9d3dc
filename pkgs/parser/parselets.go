package parser

import (
	"strings"

	"github.com/aledsdavies/blog/pkgs/ast"
	"github.com/aledsdavies/blog/pkgs/lexer"
)

// expect consumes the next token and checks its class
func expect(c *lexer.Cursor, class lexer.TokenClass) (lexer.Token, *ast.ParseError) {
	tok, ok := c.Next()
	if !ok {
		return tok, ast.ErrUnexpectedEnd()
	}
	if tok.Class != class {
		return tok, ast.ErrExpected(class)
	}
	return tok, nil
}

// enclosed reads `text close` once the opener has been consumed and returns
// the trimmed text
func enclosed(c *lexer.Cursor, close lexer.TokenClass) (string, *ast.ParseError) {
	tok, err := expect(c, lexer.Text)
	if err != nil {
		return "", err
	}
	if _, err := expect(c, close); err != nil {
		return "", err
	}
	return strings.TrimSpace(tok.Value), nil
}

// delimited reads `open text close` and returns the trimmed text
func delimited(c *lexer.Cursor, open, close lexer.TokenClass) (string, *ast.ParseError) {
	if _, err := expect(c, open); err != nil {
		return "", err
	}
	return enclosed(c, close)
}

// isLiteral reports whether a token class is plain text inside a line
func isLiteral(class lexer.TokenClass) bool {
	return class != lexer.Newline && class.Precedence() <= lexer.InlinePrecedence
}

// headingParselet parses `#... text`
type headingParselet struct{}

func (headingParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	body, err := expect(c, lexer.Text)
	if err != nil {
		return fail(err)
	}

	// The rest of the line belongs to the heading as long as it is literal
	var text strings.Builder
	text.WriteString(body.Value)
	for {
		next, ok := c.Peek()
		if !ok {
			break
		}
		if next.Class == lexer.Newline {
			c.Next()
			break
		}
		if !isLiteral(next.Class) {
			break
		}
		c.Next()
		text.WriteString(next.Value)
	}

	level := len(tok.Value)
	if level > ast.MaxHeadingLevel {
		return fail(&ast.ParseError{Kind: ast.TooManyHeadingMarks, Actual: level})
	}

	return ast.Heading{Level: level, Text: strings.TrimSpace(text.String())}
}

// paragraphParselet collects text and inline expressions up to a newline
type paragraphParselet struct{}

func (paragraphParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	children := []ast.Expression{ast.Text{Value: tok.Value}}

	for {
		next, ok := c.Peek()
		if !ok {
			// We never found the newline, but that's ok, we're at the end
			break
		}

		if next.Class == lexer.Newline {
			c.Next()
			break
		}

		// Block controls end the paragraph and are parsed at the top level
		if atBlockControl(c) {
			break
		}

		if isLiteral(next.Class) {
			c.Next()
			children = appendText(children, next.Value)
			continue
		}

		// One inline expression at a time, so a block control right after
		// it still ends the paragraph. All errors must occur at the top level.
		expr := p.ParseNext(c)
		if ast.IsError(expr) {
			return expr
		}
		children = append(children, expr)
	}

	return ast.Paragraph{Children: children}
}

// appendText merges adjacent text runs
func appendText(children []ast.Expression, value string) []ast.Expression {
	if n := len(children); n > 0 {
		if last, ok := children[n-1].(ast.Text); ok {
			children[n-1] = ast.Text{Value: last.Value + value}
			return children
		}
	}
	return append(children, ast.Text{Value: value})
}

// newlineParselet collapses a run of newlines into one paragraph break
type newlineParselet struct{}

func (newlineParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	for {
		next, ok := c.Peek()
		if !ok || next.Class != lexer.Newline {
			break
		}
		c.Next()
	}
	return ast.Newline{}
}

var emphasisKinds = map[string]func(string) ast.Expression{
	"*":   func(s string) ast.Expression { return ast.Italic{Value: s} },
	"_":   func(s string) ast.Expression { return ast.Italic{Value: s} },
	"**":  func(s string) ast.Expression { return ast.Bold{Value: s} },
	"__":  func(s string) ast.Expression { return ast.Bold{Value: s} },
	"***": func(s string) ast.Expression { return ast.BoldItalic{Value: s} },
	"___": func(s string) ast.Expression { return ast.BoldItalic{Value: s} },
	"**_": func(s string) ast.Expression { return ast.BoldItalic{Value: s} },
	"__*": func(s string) ast.Expression { return ast.BoldItalic{Value: s} },
}

// emphasisParselet parses `marker text marker` where both markers are
// the same literal string
type emphasisParselet struct{}

func (emphasisParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	build, ok := emphasisKinds[tok.Value]
	if !ok {
		return fail(&ast.ParseError{Kind: ast.UnrecognizedEmphasisSequence, Value: tok.Value})
	}

	body, err := expect(c, lexer.Text)
	if err != nil {
		return fail(err)
	}

	closing, err := expect(c, lexer.Emphasis)
	if err != nil {
		return fail(err)
	}
	if closing.Value != tok.Value {
		return fail(&ast.ParseError{
			Kind:  ast.MismatchedDelimiters,
			Value: tok.Value,
			Close: closing.Value,
		})
	}

	return build(body.Value)
}

// hyperlinkParselet parses `[text](href)`
type hyperlinkParselet struct{}

func (hyperlinkParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	text, err := enclosed(c, lexer.CloseSquare)
	if err != nil {
		return fail(err)
	}

	href, err := delimited(c, lexer.OpenParen, lexer.CloseParen)
	if err != nil {
		return fail(err)
	}

	return ast.Hyperlink{Text: text, Href: href}
}

// menuParselet emits a placeholder; the emitter expands it from the config
type menuParselet struct{}

func (menuParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	return ast.Menu{}
}

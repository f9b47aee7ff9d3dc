package parser

import (
	"fmt"

	"github.com/aledsdavies/blog/pkgs/ast"
	"github.com/aledsdavies/blog/pkgs/lexer"
)

// Parselet parses the construct introduced by one token class. It receives
// the already-consumed triggering token and returns exactly one expression.
type Parselet interface {
	Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression
}

// Parser is a precedence-climbing parser driven by a fixed parselet table
//
// The table is built once by New and never changes afterwards, so a Parser
// is safe to share between pages.
type Parser struct {
	parselets map[lexer.TokenClass]Parselet
}

var defaultParser = New()

// New creates a parser with the standard grammar
func New() *Parser {
	p := &Parser{
		parselets: make(map[lexer.TokenClass]Parselet),
	}

	// Declarative grammar begins here
	p.register(lexer.Hashes, headingParselet{})
	p.register(lexer.Text, paragraphParselet{})
	p.register(lexer.OpenParen, paragraphParselet{})
	p.register(lexer.CloseParen, paragraphParselet{})
	p.register(lexer.Newline, newlineParselet{})
	p.register(lexer.Emphasis, emphasisParselet{})
	p.register(lexer.OpenSquare, hyperlinkParselet{})
	p.register(lexer.Menu, menuParselet{})
	p.register(lexer.Control, controlParselet{})

	return p
}

// register binds a parselet to a token class. Binding a class twice is a
// programming error.
func (p *Parser) register(class lexer.TokenClass, parselet Parselet) {
	if _, exists := p.parselets[class]; exists {
		panic(fmt.Sprintf("parser: duplicate parselet for token class %s", class))
	}
	p.parselets[class] = parselet
}

// Parse tokenizes and parses source with the standard grammar
func Parse(source string) []ast.Expression {
	return defaultParser.Parse(source)
}

// Parse tokenizes and parses source into a list of top-level expressions.
// It never fails: malformed constructs become ast.Error expressions in
// place, so their position among siblings is preserved.
func (p *Parser) Parse(source string) []ast.Expression {
	c := lexer.NewCursor(lexer.Tokenize(source))

	var output []ast.Expression
	for !c.Done() {
		exprs := p.ParseTokens(c, 0)
		if len(exprs) == 0 {
			break
		}
		output = append(output, exprs...)
	}

	return output
}

// ParseTokens parses expressions while the next token binds tighter than
// minPrecedence. With InlinePrecedence as the bound it stops at the first
// literal or block boundary token.
func (p *Parser) ParseTokens(c *lexer.Cursor, minPrecedence int) []ast.Expression {
	var output []ast.Expression

	for {
		tok, ok := c.Peek()
		if !ok || tok.Precedence() <= minPrecedence {
			break
		}
		output = append(output, p.ParseNext(c))
	}

	return output
}

// ParseNext consumes one token and dispatches it to its parselet
func (p *Parser) ParseNext(c *lexer.Cursor) ast.Expression {
	tok, ok := c.Next()
	if !ok {
		return fail(ast.ErrUnexpectedEnd())
	}

	parselet, ok := p.parselets[tok.Class]
	if !ok {
		return fail(ast.ErrNoHandler(tok.Class))
	}

	return parselet.Parse(p, c, tok)
}

// fail wraps a parse error into an expression
func fail(err *ast.ParseError) ast.Expression {
	return ast.Error{Err: err}
}

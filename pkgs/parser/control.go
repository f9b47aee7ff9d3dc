package parser

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/blog/pkgs/ast"
	"github.com/aledsdavies/blog/pkgs/lexer"
)

// maxSuggestionDistance bounds how far a misspelt control name may be from
// a known one before we stop suggesting it
const maxSuggestionDistance = 2

// control describes one control sequence: how many bracketed arguments it
// takes, whether it renders as a block element, and how to build its
// expression from its arguments
type control struct {
	args  int
	block bool
	build func(args []string) ast.Expression
}

var controls = map[string]control{
	"image": {args: 2, build: func(a []string) ast.Expression {
		return ast.Image{Alt: a[0], Href: a[1]}
	}},
	"float": {args: 2, build: func(a []string) ast.Expression {
		return ast.FloatingImage{Alt: a[0], Href: a[1]}
	}},
	"notice": {args: 1, block: true, build: func(a []string) ast.Expression {
		return ast.Notice{Message: a[0]}
	}},
	"wip": {args: 1, block: true, build: func(a []string) ast.Expression {
		return ast.WorkInProgress{Message: a[0]}
	}},
	"tile": {args: 4, block: true, build: func(a []string) ast.Expression {
		return ast.Tile{Title: a[0], Description: a[1], Href: a[2], Image: a[3]}
	}},
	"link-tile": {args: 3, block: true, build: func(a []string) ast.Expression {
		return ast.Tile{Title: a[0], Href: a[1], Image: a[2]}
	}},
	"code": {args: 2, block: true, build: func(a []string) ast.Expression {
		return ast.Code{Language: a[0], Path: a[1]}
	}},
	"date": {args: 0, block: true, build: func([]string) ast.Expression {
		return ast.Date{}
	}},
}

// atBlockControl reports whether the cursor is at a control sequence that
// renders as a block and so cannot sit inside a paragraph
func atBlockControl(c *lexer.Cursor) bool {
	prefix, ok := c.Peek()
	if !ok || prefix.Class != lexer.Control {
		return false
	}
	name, ok := c.PeekAt(1)
	if !ok || name.Class != lexer.Text {
		return false
	}
	ctl, known := controls[strings.TrimSpace(name.Value)]
	return known && ctl.block
}

// ControlNames returns the known control sequence names in sorted order
func ControlNames() []string {
	names := make([]string, 0, len(controls))
	for name := range controls {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// controlParselet parses `::name[arg]...` and the legacy `::name[arg](arg)`
type controlParselet struct{}

func (controlParselet) Parse(p *Parser, c *lexer.Cursor, tok lexer.Token) ast.Expression {
	nameTok, err := expect(c, lexer.Text)
	if err != nil {
		return fail(err)
	}
	name := strings.TrimSpace(nameTok.Value)

	// wip takes exactly one bracket and never looks further
	if name == "wip" {
		message, err := delimited(c, lexer.OpenSquare, lexer.CloseSquare)
		if err != nil {
			return fail(err)
		}
		return ast.WorkInProgress{Message: message}
	}

	var args []string
	for {
		next, ok := c.Peek()
		if !ok || next.Class != lexer.OpenSquare {
			break
		}
		arg, err := delimited(c, lexer.OpenSquare, lexer.CloseSquare)
		if err != nil {
			return fail(err)
		}
		args = append(args, arg)
	}

	ctl, known := controls[name]
	if !known {
		return fail(&ast.ParseError{
			Kind:       ast.UnrecognizedControlSequence,
			Value:      name,
			Suggestion: suggest(name),
		})
	}

	// The last argument may be written in parentheses, as in a hyperlink
	if len(args) == ctl.args-1 {
		if next, ok := c.Peek(); ok && next.Class == lexer.OpenParen {
			arg, err := delimited(c, lexer.OpenParen, lexer.CloseParen)
			if err != nil {
				return fail(err)
			}
			args = append(args, arg)
		}
	}

	if len(args) != ctl.args {
		return fail(&ast.ParseError{
			Kind:     ast.WrongArgumentCount,
			Value:    name,
			Expected: ctl.args,
			Actual:   len(args),
		})
	}

	return ctl.build(args)
}

// suggest returns the closest known control name, or "" when nothing is close
func suggest(name string) string {
	best, bestDistance := "", maxSuggestionDistance+1
	for _, candidate := range ControlNames() {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

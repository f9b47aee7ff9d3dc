// Package validator turns the Error expressions a parse left behind into
// diagnostics a user can act on.
package validator

import (
	"fmt"

	"github.com/aledsdavies/blog/pkgs/ast"
)

// maxDisplayLength is how many runes of the preceding expression a
// location shows before it is cut short
const maxDisplayLength = 48

// Location says where in a file a diagnostic applies
type Location struct {
	AtBeginning bool
	After       string // display text of the nearest preceding expression
}

func (l Location) String() string {
	if l.AtBeginning {
		return "at beginning of file"
	}
	return fmt.Sprintf("after expression '%s'", l.After)
}

// Diagnostic is one user-facing parse problem
type Diagnostic struct {
	Source   string
	Message  string
	Location Location
}

// Error formats the diagnostic the way the CLI prints it
func (d Diagnostic) Error() string {
	return fmt.Sprintf("could not parse file '%s': %s (%s)", d.Source, d.Message, d.Location)
}

// Validate reports every Error expression in exprs. It looks at top-level
// expressions and at the direct children of paragraphs, never deeper. An
// empty result means the page is well formed.
func Validate(exprs []ast.Expression, label string) []Diagnostic {
	var diagnostics []Diagnostic

	for i, expr := range exprs {
		switch e := expr.(type) {
		case ast.Error:
			diagnostics = append(diagnostics, diagnose(e, label, locate(exprs, i)))

		case ast.Paragraph:
			for j, child := range e.Children {
				failure, ok := child.(ast.Error)
				if !ok {
					continue
				}
				location := locate(e.Children, j)
				if location.AtBeginning {
					location = locate(exprs, i)
				}
				diagnostics = append(diagnostics, diagnose(failure, label, location))
			}
		}
	}

	return diagnostics
}

// Errors converts diagnostics to plain errors
func Errors(diagnostics []Diagnostic) []error {
	errs := make([]error, len(diagnostics))
	for i, d := range diagnostics {
		errs[i] = d
	}
	return errs
}

func diagnose(e ast.Error, label string, location Location) Diagnostic {
	return Diagnostic{
		Source:   label,
		Message:  e.String(),
		Location: location,
	}
}

// locate finds the nearest sibling before index i that is neither an error
// nor a newline
func locate(siblings []ast.Expression, i int) Location {
	for j := i - 1; j >= 0; j-- {
		switch siblings[j].(type) {
		case ast.Error, ast.Newline:
			continue
		}
		return Location{After: display(siblings[j])}
	}
	return Location{AtBeginning: true}
}

func display(expr ast.Expression) string {
	runes := []rune(expr.String())
	if len(runes) <= maxDisplayLength {
		return string(runes)
	}
	return string(runes[:maxDisplayLength]) + "..."
}

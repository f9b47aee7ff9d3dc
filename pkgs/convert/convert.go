// Package convert runs one page through the whole pipeline: parse,
// validate and emit.
package convert

import (
	"github.com/aledsdavies/blog/pkgs/emitter"
	"github.com/aledsdavies/blog/pkgs/parser"
	"github.com/aledsdavies/blog/pkgs/result"
	"github.com/aledsdavies/blog/pkgs/validator"
)

// Page converts page source to HTML. A page that fails validation is not
// emitted; every diagnostic is returned instead.
func Page(source string, page emitter.Page, e *emitter.Emitter) result.Result[string] {
	exprs := parser.Parse(source)

	if diagnostics := validator.Validate(exprs, page.Path); len(diagnostics) > 0 {
		return result.Errs[string](validator.Errors(diagnostics)...)
	}

	return e.Emit(exprs, page)
}

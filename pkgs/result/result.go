// Package result provides an accumulator for operations that should report
// every failure they meet instead of stopping at the first one.
package result

import (
	stderrors "errors"
	"slices"

	"github.com/pkg/errors"
)

// Result carries a value together with the errors met while producing it
//
// Results are values: every method returns a new Result and never appends
// into a slice another Result can see.
type Result[T any] struct {
	value T
	errs  []error
}

// Ok creates a successful result
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates a failed result from a single error
func Err[T any](err error) Result[T] {
	return Result[T]{}.Err(err)
}

// Errs creates a result from a list of errors. Nil errors are skipped.
func Errs[T any](errs ...error) Result[T] {
	return Result[T]{}.Errs(errs...)
}

// Ok replaces the value and keeps every accumulated error
func (r Result[T]) Ok(value T) Result[T] {
	r.value = value
	return r
}

// Err adds an error. A nil error leaves the result unchanged.
func (r Result[T]) Err(err error) Result[T] {
	if err == nil {
		return r
	}
	r.errs = append(slices.Clip(r.errs), err)
	return r
}

// ErrContext adds an error annotated with a formatted context message
func (r Result[T]) ErrContext(err error, format string, args ...any) Result[T] {
	if err == nil {
		return r
	}
	return r.Err(errors.Wrapf(err, format, args...))
}

// Errs adds several errors at once
func (r Result[T]) Errs(errs ...error) Result[T] {
	for _, err := range errs {
		r = r.Err(err)
	}
	return r
}

// Failed reports whether any error was accumulated
func (r Result[T]) Failed() bool {
	return len(r.errs) > 0
}

// Errors returns the accumulated errors in the order they were added
func (r Result[T]) Errors() []error {
	return slices.Clone(r.errs)
}

// Value returns the value, which may be partial when the result failed
func (r Result[T]) Value() T {
	return r.value
}

// Unwrap returns the value and every accumulated error joined into one
func (r Result[T]) Unwrap() (T, error) {
	if !r.Failed() {
		return r.value, nil
	}
	return r.value, stderrors.Join(r.errs...)
}

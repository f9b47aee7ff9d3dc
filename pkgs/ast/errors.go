package ast

import (
	"fmt"

	"github.com/aledsdavies/blog/pkgs/lexer"
)

// ErrorKind enumerates the syntax problems a parselet can diagnose
type ErrorKind int

const (
	UnexpectedEndOfInput ErrorKind = iota
	ExpectedTokenOfClass
	UnrecognizedEmphasisSequence
	TooManyHeadingMarks
	MismatchedDelimiters
	UnrecognizedControlSequence
	WrongArgumentCount
	NoHandlerForTokenClass
)

var errorKindNames = [...]string{
	UnexpectedEndOfInput:         "UnexpectedEndOfInput",
	ExpectedTokenOfClass:         "ExpectedTokenOfClass",
	UnrecognizedEmphasisSequence: "UnrecognizedEmphasisSequence",
	TooManyHeadingMarks:          "TooManyHeadingMarks",
	MismatchedDelimiters:         "MismatchedDelimiters",
	UnrecognizedControlSequence:  "UnrecognizedControlSequence",
	WrongArgumentCount:           "WrongArgumentCount",
	NoHandlerForTokenClass:       "NoHandlerForTokenClass",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && int(k) >= 0 {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError describes one malformed construct. It carries everything
// needed to render a message without going back to the token stream.
type ParseError struct {
	Kind ErrorKind

	Class lexer.TokenClass // ExpectedTokenOfClass, NoHandlerForTokenClass
	Value string           // offending marker or control sequence name
	Close string           // closing marker for MismatchedDelimiters

	Expected int // WrongArgumentCount
	Actual   int // WrongArgumentCount, TooManyHeadingMarks

	Suggestion string // closest known control sequence name, if any
}

// Error formats the parse error as a string
func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case ExpectedTokenOfClass:
		return fmt.Sprintf("expected token of class '%s'", e.Class)
	case UnrecognizedEmphasisSequence:
		return fmt.Sprintf("unrecognized emphasis sequence '%s'", e.Value)
	case TooManyHeadingMarks:
		return fmt.Sprintf("too many heading marks: found %d, at most %d allowed", e.Actual, MaxHeadingLevel)
	case MismatchedDelimiters:
		return fmt.Sprintf("mismatched delimiters: opened with '%s', closed with '%s'", e.Value, e.Close)
	case UnrecognizedControlSequence:
		if e.Suggestion != "" {
			return fmt.Sprintf("unrecognized control sequence '%s' (did you mean '%s'?)", e.Value, e.Suggestion)
		}
		return fmt.Sprintf("unrecognized control sequence '%s'", e.Value)
	case WrongArgumentCount:
		return fmt.Sprintf("control sequence '%s' expects %d argument(s), found %d", e.Value, e.Expected, e.Actual)
	case NoHandlerForTokenClass:
		return fmt.Sprintf("no handler for token of class '%s'", e.Class)
	default:
		return e.Kind.String()
	}
}

// ErrUnexpectedEnd creates an UnexpectedEndOfInput error
func ErrUnexpectedEnd() *ParseError {
	return &ParseError{Kind: UnexpectedEndOfInput}
}

// ErrExpected creates an ExpectedTokenOfClass error
func ErrExpected(class lexer.TokenClass) *ParseError {
	return &ParseError{Kind: ExpectedTokenOfClass, Class: class}
}

// ErrNoHandler creates a NoHandlerForTokenClass error
func ErrNoHandler(class lexer.TokenClass) *ParseError {
	return &ParseError{Kind: NoHandlerForTokenClass, Class: class}
}

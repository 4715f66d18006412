package calc

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Error kinds. Every error returned by Evaluate matches exactly one of these
// with errors.Is.
var (
	// ErrSyntax means the expression could not be parsed, or a name was used
	// in a way the grammar does not allow (calling a constant, wrong arity).
	ErrSyntax = errors.New("syntax error")
	// ErrDomain means the expression is well formed but mathematically
	// undefined: division by zero, log of a non-positive number, and so on.
	ErrDomain = errors.New("domain error")
	// ErrInvalidExpression means the expression tried to reach a name outside
	// the namespace.
	ErrInvalidExpression = errors.New("invalid expression")
)

// Error is the concrete error returned by Evaluate.
type Error struct {
	Kind error          // one of ErrSyntax, ErrDomain, ErrInvalidExpression
	Msg  string         // user-facing message
	Pos  token.Position // zero when the error has no single location
	Span token.Span     // offending text; starts at Pos
	Err  error          // underlying cause (e.g. *expr.ParseError), may be nil
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func domainError(format string, args ...any) *Error {
	return &Error{Kind: ErrDomain, Msg: fmt.Sprintf(format, args...)}
}

func syntaxError(span token.Span, format string, args ...any) *Error {
	return &Error{Kind: ErrSyntax, Msg: fmt.Sprintf(format, args...), Pos: span.Start, Span: span}
}

func invalidError(span token.Span, format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidExpression, Msg: fmt.Sprintf(format, args...), Pos: span.Start, Span: span}
}

// KindName returns the taxonomy name for err ("SyntaxError", "DomainError",
// "InvalidExpressionError"), or "" if err is not an evaluation error.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrSyntax):
		return "SyntaxError"
	case errors.Is(err, ErrDomain):
		return "DomainError"
	case errors.Is(err, ErrInvalidExpression):
		return "InvalidExpressionError"
	default:
		return ""
	}
}

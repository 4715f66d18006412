package session

import (
	"errors"

	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/leapstack-labs/leapcalc/pkg/units"
)

// Kind names the class of a session error.
type Kind string

// Error kinds.
const (
	KindSyntax            Kind = "SyntaxError"
	KindInvalidExpression Kind = "InvalidExpressionError"
	KindDomain            Kind = "DomainError"
	KindUnknownCategory   Kind = "UnknownCategoryError"
	KindUnknownUnit       Kind = "UnknownUnitError"
	KindInvalidInput      Kind = "InvalidInputError"
	KindInternal          Kind = "Error"
)

// Error is the error type returned by every Session method.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError classifies err from the evaluator or converter.
func newError(err error) *Error {
	return &Error{Kind: classify(err), Message: err.Error(), Err: err}
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, calc.ErrSyntax):
		return KindSyntax
	case errors.Is(err, calc.ErrInvalidExpression):
		return KindInvalidExpression
	case errors.Is(err, calc.ErrDomain):
		return KindDomain
	case errors.Is(err, units.ErrUnknownCategory):
		return KindUnknownCategory
	case errors.Is(err, units.ErrUnknownUnit):
		return KindUnknownUnit
	case errors.Is(err, units.ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// KindOf returns the kind of err, or "" if err is nil. Errors that did not
// come from a Session are classified the same way a Session would.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return classify(err)
}

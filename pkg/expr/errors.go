package expr

import "fmt"

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Span    Span // the offending token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at column %d: %s", e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     Position
	Span    Span
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at column %d: %s", e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken   = "unexpected token %s, expected %s"
	ErrUnexpectedPrimary = "unexpected token %s"
	ErrInvalidNumber     = "invalid number literal %q"
	ErrIllegalCharacter  = "illegal character %q"
	ErrEmptyExpression   = "empty expression"
	ErrTooDeep           = "expression nested too deeply"
	ErrTooLong           = "expression too long"
	ErrTrailingInput     = "unexpected token %s after end of expression"
	ErrPositionalAfterKw = "positional argument follows keyword argument"
	ErrRepeatedKeyword   = "keyword argument repeated: %s"
)

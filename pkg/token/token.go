// Package token defines the token types for calculator expressions.
//
// The token set is closed: literals, the arithmetic operators, parentheses
// and the argument separator. There are no keywords; every name is an IDENT
// and is resolved (or rejected) by the evaluator's namespace.
package token

import (
	"fmt"
	"unicode/utf8"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // sin, pi, log10
	NUMBER // 123, 45.67, 1e10, .5

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	POW    // ** (and ^ after preprocessing)
	COMMA  // ,
	LPAREN // (
	RPAREN // )
	ASSIGN // = (keyword arguments only)
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	PLUS:   "+",
	MINUS:  "-",
	STAR:   "*",
	SLASH:  "/",
	POW:    "**",
	COMMA:  ",",
	LPAREN: "(",
	RPAREN: ")",
	ASSIGN: "=",
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Span returns the range of input the token covers. EOF has an empty span.
func (t Token) Span() Span {
	end := t.Pos
	end.Offset += len(t.Literal)
	end.Column += utf8.RuneCountInString(t.Literal)
	return Span{Start: t.Pos, End: end}
}

// String renders the token for error messages.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of expression"
	case IDENT, NUMBER, ILLEGAL:
		return fmt.Sprintf("%q", t.Literal)
	default:
		return fmt.Sprintf("%q", t.Type.String())
	}
}

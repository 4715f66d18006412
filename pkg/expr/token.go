package expr

import "github.com/leapstack-labs/leapcalc/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// Span is an alias for token.Span.
type Span = token.Span

//nolint:revive // TOKEN_* names mirror the token package constants
const (
	TOKEN_EOF     = token.EOF
	TOKEN_ILLEGAL = token.ILLEGAL

	TOKEN_IDENT  = token.IDENT
	TOKEN_NUMBER = token.NUMBER

	TOKEN_PLUS   = token.PLUS
	TOKEN_MINUS  = token.MINUS
	TOKEN_STAR   = token.STAR
	TOKEN_SLASH  = token.SLASH
	TOKEN_POW    = token.POW
	TOKEN_COMMA  = token.COMMA
	TOKEN_LPAREN = token.LPAREN
	TOKEN_RPAREN = token.RPAREN
	TOKEN_ASSIGN = token.ASSIGN
)

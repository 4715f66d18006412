// Package expr parses calculator expressions into an AST.
//
// # Usage
//
//	node, err := expr.Parse("2 * sin(pi / 4) ** 2")
//	if err != nil {
//	    // handle error
//	}
//
// # Grammar Overview
//
// The parser is a Pratt parser over a deliberately small grammar:
//
//	expr    → term (('+' | '-') term)*
//	term    → unary (('*' | '/') unary)*
//	unary   → ('+' | '-') unary | power
//	power   → primary ['**' unary]
//	primary → NUMBER | IDENT | IDENT '(' [arg (',' arg)*] ')' | '(' expr ')'
//	arg     → [IDENT '='] expr
//
// '**' is right-associative and binds tighter than a unary minus on its
// left, so -2**2 is -(2**2) and 2**-1 is 2**(-1). Keyword arguments must
// follow every positional argument of a call.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operator precedence levels.
const (
	PrecedenceNone     = 0
	PrecedenceAddition = 1 // + -
	PrecedenceMultiply = 2 // * /
	PrecedenceUnary    = 3 // prefix + -
	PrecedencePower    = 4 // **
)

// maxDepth bounds nesting and maxNodes bounds the size of the tree, so
// pathological input fails with a ParseError instead of exhausting the
// stack in the parser or in anything that walks the result.
const (
	maxDepth = 200
	maxNodes = 10000
)

// Parser parses an expression into an AST.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	errors []error
	depth  int
	nodes  int
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses input and returns the root expression.
func Parse(input string) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Pos: Position{Column: 1}, Message: ErrEmptyExpression}
	}

	p := NewParser(input)
	node := p.parseExpression()
	if len(p.errors) == 0 && !p.check(TOKEN_EOF) {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token))
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return node, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token. Illegal tokens are reported as
// lexer errors the moment they become current.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
	if p.token.Type == TOKEN_ILLEGAL {
		p.addLexError(p.token)
	}
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, fmt.Sprintf("%q", t.String())))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.addErrorAt(p.token, msg)
}

func (p *Parser) addErrorAt(tok Token, msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     tok.Pos,
		Span:    tok.Span(),
		Message: msg,
	})
}

func (p *Parser) addLexError(tok Token) {
	msg := fmt.Sprintf(ErrIllegalCharacter, tok.Literal)
	if first := []rune(tok.Literal); len(first) > 0 && (isDigit(first[0]) || first[0] == '.') && len(first) > 1 {
		msg = fmt.Sprintf(ErrInvalidNumber, tok.Literal)
	}
	p.errors = append(p.errors, &LexError{Pos: tok.Pos, Span: tok.Span(), Message: msg})
}

// grow counts one more node and reports whether the tree is still within
// maxNodes.
func (p *Parser) grow() bool {
	p.nodes++
	if p.nodes > maxNodes {
		if len(p.errors) == 0 {
			p.addError(ErrTooLong)
		}
		return false
	}
	return true
}

// ---------- Expressions ----------

// parseExpression parses a full expression.
func (p *Parser) parseExpression() Expr {
	return p.parseExpressionWithPrecedence(PrecedenceNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) Expr {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		p.addError(ErrTooDeep)
		return nil
	}

	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for len(p.errors) == 0 {
		prec := p.infixPrecedence(p.token.Type)
		if prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			return nil
		}
	}

	return left
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() Expr {
	switch p.token.Type {
	case TOKEN_MINUS, TOKEN_PLUS:
		if !p.grow() {
			return nil
		}
		op := p.token
		p.nextToken()
		x := p.parseExpressionWithPrecedence(PrecedenceUnary)
		if x == nil {
			return nil
		}
		return &UnaryExpr{Op: op.Type, X: x, OpPos: op.Pos}
	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of t as an infix operator, or
// PrecedenceNone if it is not one.
func (p *Parser) infixPrecedence(t TokenType) int {
	switch t {
	case TOKEN_PLUS, TOKEN_MINUS:
		return PrecedenceAddition
	case TOKEN_STAR, TOKEN_SLASH:
		return PrecedenceMultiply
	case TOKEN_POW:
		return PrecedencePower
	default:
		return PrecedenceNone
	}
}

// parseInfixExpr parses the operator at the current token and its right operand.
func (p *Parser) parseInfixExpr(left Expr, prec int) Expr {
	if !p.grow() {
		return nil
	}
	op := p.token
	p.nextToken()

	var right Expr
	if op.Type == TOKEN_POW {
		// Right-associative, and the exponent may carry its own sign.
		right = p.parseExpressionWithPrecedence(PrecedenceUnary)
	} else {
		right = p.parseExpressionWithPrecedence(prec + 1)
	}
	if right == nil {
		return nil
	}

	return &BinaryExpr{Left: left, Op: op.Type, Right: right, OpPos: op.Pos}
}

// parsePrimary parses literals, names, calls and parenthesized expressions.
func (p *Parser) parsePrimary() Expr {
	if p.token.Type != TOKEN_LPAREN && !p.grow() {
		return nil
	}
	switch p.token.Type {
	case TOKEN_NUMBER:
		return p.parseNumber()

	case TOKEN_IDENT:
		ident := &Ident{Name: p.token.Literal, Position: p.token.Pos}
		p.nextToken()
		if p.check(TOKEN_LPAREN) {
			return p.parseCall(ident)
		}
		return ident

	case TOKEN_LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return inner

	case TOKEN_ILLEGAL:
		// Already reported by nextToken.
		return nil

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedPrimary, p.token))
		return nil
	}
}

// parseNumber converts the current NUMBER token into a literal node.
func (p *Parser) parseNumber() Expr {
	tok := p.token
	p.nextToken()

	lit := &NumberLit{Literal: tok.Literal, Position: tok.Pos}
	if !strings.ContainsAny(tok.Literal, ".eE") {
		if i, err := strconv.ParseInt(tok.Literal, 10, 64); err == nil {
			lit.Int = i
			lit.Float = float64(i)
			lit.IsInt = true
			return lit
		}
	}

	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		// Out-of-range literals parse to ±Inf with ErrRange; keep them.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			p.errors = append(p.errors, &LexError{Pos: tok.Pos, Span: tok.Span(), Message: fmt.Sprintf(ErrInvalidNumber, tok.Literal)})
			return nil
		}
	}
	lit.Float = f
	return lit
}

// parseCall parses the argument list of a call whose name has been consumed.
func (p *Parser) parseCall(fn *Ident) Expr {
	call := &CallExpr{Func: fn}
	p.expect(TOKEN_LPAREN)

	if !p.check(TOKEN_RPAREN) {
		for {
			if p.check(TOKEN_IDENT) && p.peek.Type == TOKEN_ASSIGN {
				if !p.parseKeyword(call) {
					return nil
				}
			} else {
				start := p.token
				arg := p.parseExpression()
				if arg == nil {
					return nil
				}
				if len(call.Keywords) > 0 {
					p.addErrorAt(start, ErrPositionalAfterKw)
					return nil
				}
				call.Args = append(call.Args, arg)
			}
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
	}

	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return call
}

// parseKeyword parses name=value and appends it to call.
func (p *Parser) parseKeyword(call *CallExpr) bool {
	name := p.token
	for _, kw := range call.Keywords {
		if kw.Name == name.Literal {
			p.addErrorAt(name, fmt.Sprintf(ErrRepeatedKeyword, name.Literal))
			return false
		}
	}
	p.nextToken() // name
	p.nextToken() // =

	value := p.parseExpression()
	if value == nil {
		return false
	}
	call.Keywords = append(call.Keywords, &Keyword{Name: name.Literal, Value: value, Position: name.Pos})
	return true
}

package expr

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes calculator expressions.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current rune)
	ch      rune // current rune under examination
	col     int  // current column number (1-based, in runes)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next rune.
func (l *Lexer) readChar() {
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.readPos = len(l.input) + 1
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
		l.ch = r
		l.readPos += size
	}
	l.col++
}

// peekChar returns the next rune without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{Column: l.col, Offset: l.pos}
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEOF() {
		return Token{Type: TOKEN_EOF, Pos: pos}
	}

	var tok Token
	switch l.ch {
	case '+':
		tok = Token{Type: TOKEN_PLUS, Literal: "+", Pos: pos}
	case '-':
		tok = Token{Type: TOKEN_MINUS, Literal: "-", Pos: pos}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = Token{Type: TOKEN_POW, Literal: "**", Pos: pos}
		} else {
			tok = Token{Type: TOKEN_STAR, Literal: "*", Pos: pos}
		}
	case '/':
		tok = Token{Type: TOKEN_SLASH, Literal: "/", Pos: pos}
	case ',':
		tok = Token{Type: TOKEN_COMMA, Literal: ",", Pos: pos}
	case '(':
		tok = Token{Type: TOKEN_LPAREN, Literal: "(", Pos: pos}
	case ')':
		tok = Token{Type: TOKEN_RPAREN, Literal: ")", Pos: pos}
	case '=':
		tok = Token{Type: TOKEN_ASSIGN, Literal: "=", Pos: pos}
	default:
		switch {
		case isIdentStart(l.ch):
			return Token{Type: TOKEN_IDENT, Literal: l.readIdentifier(), Pos: pos}
		case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
			lit, ok := l.readNumber()
			if !ok {
				return Token{Type: TOKEN_ILLEGAL, Literal: lit, Pos: pos}
			}
			return Token{Type: TOKEN_NUMBER, Literal: lit, Pos: pos}
		default:
			tok = Token{Type: TOKEN_ILLEGAL, Literal: string(l.ch), Pos: pos}
		}
	}

	l.readChar()
	return tok
}

// skipWhitespace skips blanks between tokens.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads an ASCII identifier. Non-ASCII letters are left for
// NextToken to report as illegal.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
// The second result is false when the literal is malformed, e.g. "1e" or "1.2.3".
func (l *Lexer) readNumber() (string, bool) {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	// Fraction; "5." and ".5" are both accepted.
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent (1e10, 1E-5). The exponent needs at least one digit.
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			l.consumeIdentTail()
			return l.input[start:l.pos], false
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// A letter or second dot glued to a number ("2x", "1.2.3") is not a literal.
	if isIdentStart(l.ch) || l.ch == '.' {
		l.consumeIdentTail()
		return l.input[start:l.pos], false
	}

	return l.input[start:l.pos], true
}

// consumeIdentTail swallows the rest of a malformed literal so the error
// message shows the whole offending word.
func (l *Lexer) consumeIdentTail() {
	for isIdentStart(l.ch) || isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch < unicode.MaxASCII && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}

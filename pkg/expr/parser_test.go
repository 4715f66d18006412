package expr_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Precedence and associativity ----------

func TestParseStructure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"addition is left associative", "1 - 2 - 3", "((1 - 2) - 3)"},
		{"multiplication binds tighter", "1 + 2 * 3", "(1 + (2 * 3))"},
		{"division left associative", "8 / 4 / 2", "((8 / 4) / 2)"},
		{"power is right associative", "2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"unary minus below power", "-2 ** 2", "(-(2 ** 2))"},
		{"signed exponent", "2 ** -1", "(2 ** (-1))"},
		{"signed exponent then multiply", "2 ** -1 * 3", "((2 ** (-1)) * 3)"},
		{"unary minus on product", "-2 * 3", "((-2) * 3)"},
		{"double unary", "--4", "(-(-4))"},
		{"unary plus", "+4", "(+4)"},
		{"parentheses override", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"call with no args", "f()", "f()"},
		{"call with args", "log(100, 10)", "log(100, 10)"},
		{"nested call", "sqrt(abs(-16))", "sqrt(abs((-16)))"},
		{"call in expression", "2 * sin(pi / 2)", "(2 * sin((pi / 2)))"},
		{"space before call paren", "sin (90)", "sin(90)"},
		{"keyword argument", "log(8, base=2)", "log(8, base=2)"},
		{"keyword only", "round(number=2.5)", "round(number=2.5)"},
		{"keyword value is an expression", "round(x, ndigits = 1 + 1)", "round(x, ndigits=(1 + 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, node.String())
		})
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input string
		isInt bool
		value float64
	}{
		{"42", true, 42},
		{"1.5", false, 1.5},
		{".5", false, 0.5},
		{"5.", false, 5},
		{"1e3", false, 1000},
		{"2.5E-4", false, 0.00025},
		{"1e+2", false, 100},
		{"99999999999999999999", false, 1e20},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := expr.Parse(tt.input)
			require.NoError(t, err)
			lit, ok := node.(*expr.NumberLit)
			require.True(t, ok, "expected NumberLit, got %T", node)
			assert.Equal(t, tt.isInt, lit.IsInt)
			assert.InDelta(t, tt.value, lit.Float, 1e-12*tt.value+1e-15)
		})
	}
}

// ---------- Errors ----------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errSubstr string
		lexError  bool
	}{
		{"empty", "   ", "empty expression", false},
		{"dangling operator", "1 +", "unexpected token end of expression", false},
		{"unclosed paren", "(1 + 2", `expected ")"`, false},
		{"stray close paren", ")", `unexpected token ")"`, false},
		{"juxtaposed numbers", "2 3", "after end of expression", false},
		{"illegal character", "2 $ 3", `illegal character "$"`, true},
		{"unicode letter", "2 * λ", `illegal character "λ"`, true},
		{"bad exponent", "1e", `invalid number literal "1e"`, true},
		{"double dot", "1.2.3", `invalid number literal "1.2.3"`, true},
		{"number glued to name", "2pi", `invalid number literal "2pi"`, true},
		{"attribute access", "pi.real", `illegal character "."`, true},
		{"item access", "x[0]", `illegal character "["`, true},
		{"assignment", "x = 1", `unexpected token "=" after end of expression`, false},
		{"comparison", "1 == 1", `unexpected token "=" after end of expression`, false},
		{"positional after keyword", "log(base=2, 8)", "positional argument follows keyword argument", false},
		{"repeated keyword", "log(8, base=2, base=3)", "keyword argument repeated: base", false},
		{"keyword without value", "log(8, base=)", `unexpected token ")"`, false},
		{"keyword name is not an expression", "log(8, 2=base)", `unexpected token "="`, false},
		{"trailing comma", "log(1,)", `unexpected token ")"`, false},
		{"modulo not supported", "7 % 2", `illegal character "%"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.Parse(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)

			var lexErr *expr.LexError
			var parseErr *expr.ParseError
			if tt.lexError {
				assert.ErrorAs(t, err, &lexErr)
			} else {
				assert.ErrorAs(t, err, &parseErr)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := expr.Parse("1 + * 2")
	require.Error(t, err)

	var parseErr *expr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 5, parseErr.Pos.Column)
	assert.Contains(t, err.Error(), "column 5")
	assert.Equal(t, 5, parseErr.Span.Start.Column)
	assert.Equal(t, 6, parseErr.Span.End.Column)
}

func TestParseErrorSpan(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart int
		wantWidth int
	}{
		{"operator", "1 + ** 2", 5, 2},
		{"invalid number", "2 * 1.2.3", 5, 5},
		{"trailing name", "2 sqrt", 3, 4},
		{"positional after keyword", "log(base=2, 8 + 1)", 13, 1},
		{"end of input", "1 +", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.Parse(tt.input)
			require.Error(t, err)

			var span expr.Span
			var parseErr *expr.ParseError
			var lexErr *expr.LexError
			switch {
			case errors.As(err, &parseErr):
				span = parseErr.Span
			case errors.As(err, &lexErr):
				span = lexErr.Span
			default:
				t.Fatalf("unexpected error type %T", err)
			}
			assert.Equal(t, tt.wantStart, span.Start.Column)
			assert.Equal(t, tt.wantWidth, span.Width())
		})
	}
}

func TestParseTooDeep(t *testing.T) {
	input := ""
	for i := 0; i < 500; i++ {
		input += "("
	}
	input += "1"
	for i := 0; i < 500; i++ {
		input += ")"
	}

	_, err := expr.Parse(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested too deeply")
}

func TestParseTooLong(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"flat sum", strings.Repeat("1+", 3000000) + "1"},
		{"flat product", strings.Repeat("2*", 20000) + "2"},
		{"call arguments", "max(" + strings.Repeat("1,", 20000) + "1)"},
		{"unary chain in groups", strings.Repeat("(-1)+", 6000) + "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.Parse(tt.input)
			require.Error(t, err)

			var parseErr *expr.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "expression too long", parseErr.Message)
		})
	}
}

func TestParseLongButBounded(t *testing.T) {
	node, err := expr.Parse(strings.Repeat("1+", 1000) + "1")
	require.NoError(t, err)
	assert.Empty(t, expr.Identifiers(node))
}

// ---------- Helpers ----------

func TestIdentifiers(t *testing.T) {
	node, err := expr.Parse("sin(pi / 2) + log(e, 10)")
	require.NoError(t, err)
	assert.Equal(t, []string{"sin", "pi", "log", "e"}, expr.Identifiers(node))
}

func TestIdentifiersSkipKeywordNames(t *testing.T) {
	node, err := expr.Parse("log(x, base=e)")
	require.NoError(t, err)
	assert.Equal(t, []string{"log", "x", "e"}, expr.Identifiers(node))

	call, ok := node.(*expr.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Keywords, 1)
	assert.Equal(t, "base", call.Keywords[0].Name)
	assert.Equal(t, 8, call.Keywords[0].Position.Column)
}

func TestTokenize(t *testing.T) {
	toks := expr.Tokenize("2**x, (y)")
	types := make([]expr.TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	assert.Equal(t, []expr.TokenType{
		expr.TOKEN_NUMBER, expr.TOKEN_POW, expr.TOKEN_IDENT, expr.TOKEN_COMMA,
		expr.TOKEN_LPAREN, expr.TOKEN_IDENT, expr.TOKEN_RPAREN, expr.TOKEN_EOF,
	}, types)
	assert.Equal(t, expr.TOKEN_ASSIGN, expr.Tokenize("a=1")[1].Type)
	assert.Equal(t, 4, toks[2].Pos.Column)
}

// Package calc evaluates calculator expressions against a closed namespace
// of scientific functions.
//
// Evaluation runs in three steps. Preprocess rewrites the display spellings
// (π, ^) and rejects dunder names. The expression is parsed by package expr
// and every identifier is checked against the namespace before anything is
// computed. Finally the AST is walked with the session's Context deciding
// whether trigonometric functions work in degrees or radians.
package calc

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Preprocess applies the textual rewrites done before parsing: π becomes pi
// and ^ becomes **. Expressions containing "__" are rejected.
func Preprocess(expression string) (string, error) {
	s := strings.ReplaceAll(expression, "π", "pi")
	s = strings.ReplaceAll(s, "^", "**")
	if strings.Contains(s, "__") {
		return "", &Error{Kind: ErrInvalidExpression, Msg: "invalid expression: names containing \"__\" are not allowed"}
	}
	return s, nil
}

// Compile preprocesses and parses expression and verifies that every name it
// references is part of the namespace. The returned AST can be evaluated
// repeatedly with EvalNode.
func Compile(expression string) (expr.Expr, error) {
	s, err := Preprocess(expression)
	if err != nil {
		return nil, err
	}

	node, err := expr.Parse(s)
	if err != nil {
		return nil, wrapParseError(err)
	}

	var bad *expr.Ident
	expr.Walk(node, func(e expr.Expr) bool {
		if id, ok := e.(*expr.Ident); ok && bad == nil && !IsAllowed(id.Name) {
			bad = id
		}
		return bad == nil
	})
	if bad != nil {
		return nil, invalidError(bad.Span(), "invalid expression: name %q is not defined", bad.Name)
	}
	return node, nil
}

// Evaluate computes expression in ctx. A nil ctx evaluates in degree mode.
func Evaluate(expression string, ctx *Context) (Value, error) {
	node, err := Compile(expression)
	if err != nil {
		return Value{}, err
	}
	return EvalNode(node, ctx)
}

// EvalNode evaluates an already compiled AST.
func EvalNode(node expr.Expr, ctx *Context) (Value, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	e := &evaluator{ctx: ctx}
	return e.eval(node)
}

func wrapParseError(err error) error {
	var pe *expr.ParseError
	if errors.As(err, &pe) {
		return &Error{Kind: ErrSyntax, Msg: "syntax error: " + pe.Message, Pos: pe.Pos, Span: pe.Span, Err: err}
	}
	var le *expr.LexError
	if errors.As(err, &le) {
		return &Error{Kind: ErrSyntax, Msg: "syntax error: " + le.Message, Pos: le.Pos, Span: le.Span, Err: err}
	}
	return &Error{Kind: ErrSyntax, Msg: "syntax error: " + err.Error(), Err: err}
}

type evaluator struct {
	ctx *Context
}

func (e *evaluator) eval(node expr.Expr) (Value, error) {
	switch n := node.(type) {
	case *expr.NumberLit:
		if n.IsInt {
			return Int(n.Int), nil
		}
		return Float(n.Float), nil

	case *expr.Ident:
		if v, ok := constants[n.Name]; ok {
			return v, nil
		}
		if _, ok := functions[n.Name]; ok {
			return Value{}, syntaxError(n.Span(), "syntax error: function %s used as a value", n.Name)
		}
		return Value{}, invalidError(n.Span(), "invalid expression: name %q is not defined", n.Name)

	case *expr.UnaryExpr:
		x, err := e.eval(n.X)
		if err != nil {
			return Value{}, err
		}
		if n.Op == token.MINUS {
			return neg(x), nil
		}
		return x, nil

	case *expr.BinaryExpr:
		return e.evalBinary(n)

	case *expr.CallExpr:
		return e.evalCall(n)
	}
	return Value{}, syntaxError(token.Span{Start: node.Pos(), End: node.Pos()}, "syntax error: unsupported expression %s", node.String())
}

func (e *evaluator) evalBinary(n *expr.BinaryExpr) (Value, error) {
	left, err := e.eval(n.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := e.eval(n.Right)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case token.PLUS:
		return add(left, right), nil
	case token.MINUS:
		return sub(left, right), nil
	case token.STAR:
		return mul(left, right), nil
	case token.SLASH:
		return div(left, right)
	case token.POW:
		return power(left, right)
	}
	return Value{}, syntaxError(n.OpSpan(), "syntax error: unknown operator %s", n.Op)
}

func (e *evaluator) evalCall(n *expr.CallExpr) (Value, error) {
	name := n.Func.Name
	fn, ok := functions[name]
	if !ok {
		if _, isConst := constants[name]; isConst {
			return Value{}, syntaxError(n.Func.Span(), "syntax error: %s is not callable", name)
		}
		return Value{}, invalidError(n.Func.Span(), "invalid expression: name %q is not defined", name)
	}

	bound, err := bindArgs(fn, n)
	if err != nil {
		return Value{}, err
	}

	args := make([]Value, len(bound))
	for i, a := range bound {
		v, err := e.eval(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return fn.call(e.ctx, args)
}

// bindArgs returns the call's arguments in parameter order. Keyword
// arguments fill the parameters named in fn.params; the bound arguments
// must form a prefix at least minArgs long.
func bindArgs(fn builtin, n *expr.CallExpr) ([]expr.Expr, error) {
	name := n.Func.Name
	if len(n.Keywords) == 0 || len(n.Args) > fn.maxArgs {
		if got := len(n.Args) + len(n.Keywords); got < fn.minArgs || got > fn.maxArgs {
			return nil, syntaxError(n.Func.Span(), "syntax error: %s expects %s, got %d", fn.sig, arity(fn), got)
		}
		return n.Args, nil
	}
	if fn.params == nil {
		return nil, syntaxError(n.Keywords[0].Span(), "syntax error: %s takes no keyword arguments", name)
	}

	slots := make([]expr.Expr, len(fn.params))
	copy(slots, n.Args)
	for _, kw := range n.Keywords {
		i := slices.Index(fn.params, kw.Name)
		if i < 0 {
			return nil, syntaxError(kw.Span(), "syntax error: %s got an unexpected keyword argument %q", name, kw.Name)
		}
		if slots[i] != nil {
			return nil, syntaxError(kw.Span(), "syntax error: %s got multiple values for argument %q", name, kw.Name)
		}
		slots[i] = kw.Value
	}

	count := 0
	for count < len(slots) && slots[count] != nil {
		count++
	}
	if count < fn.minArgs || slices.ContainsFunc(slots[count:], func(a expr.Expr) bool { return a != nil }) {
		return nil, syntaxError(n.Func.Span(), "syntax error: %s missing argument %q", fn.sig, fn.params[count])
	}
	return slots[:count], nil
}

func arity(fn builtin) string {
	switch {
	case fn.minArgs == fn.maxArgs && fn.minArgs == 1:
		return "1 argument"
	case fn.minArgs == fn.maxArgs:
		return strconv.Itoa(fn.minArgs) + " arguments"
	default:
		return strconv.Itoa(fn.minArgs) + " to " + strconv.Itoa(fn.maxArgs) + " arguments"
	}
}

// Call invokes a namespace function directly with already computed
// arguments, applying the same arity and domain rules as Evaluate.
func Call(name string, ctx *Context, args ...Value) (Value, error) {
	fn, ok := functions[name]
	if !ok {
		if _, isConst := constants[name]; isConst {
			return Value{}, syntaxError(token.Span{}, "syntax error: %s is not callable", name)
		}
		return Value{}, invalidError(token.Span{}, "invalid expression: name %q is not defined", name)
	}
	if len(args) < fn.minArgs || len(args) > fn.maxArgs {
		return Value{}, syntaxError(token.Span{}, "syntax error: %s expects %s, got %d", fn.sig, arity(fn), len(args))
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return fn.call(ctx, args)
}

package expr

import (
	"strings"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
	String() string
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// NumberLit is a numeric literal. Integer literals that fit in an int64 keep
// IsInt set; everything else is carried as a float.
type NumberLit struct {
	Literal  string
	Float    float64
	Int      int64
	IsInt    bool
	Position Position
}

// Ident is a bare name such as pi or e.
type Ident struct {
	Name     string
	Position Position
}

// UnaryExpr is a prefix + or -.
type UnaryExpr struct {
	Op    TokenType
	X     Expr
	OpPos Position
}

// BinaryExpr is one of + - * / **.
type BinaryExpr struct {
	Left  Expr
	Op    TokenType
	Right Expr
	OpPos Position
}

// CallExpr is a function call. Func is always a plain identifier; the
// grammar has no attribute or item access.
type CallExpr struct {
	Func     *Ident
	Args     []Expr
	Keywords []*Keyword
}

// Keyword is a name=value argument. The name is not an Ident: it names a
// parameter, not a value in the namespace.
type Keyword struct {
	Name     string
	Value    Expr
	Position Position
}

func (*NumberLit) exprNode()  {}
func (*Ident) exprNode()      {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}

// Pos implementations.
func (n *NumberLit) Pos() Position  { return n.Position }
func (n *Ident) Pos() Position      { return n.Position }
func (n *UnaryExpr) Pos() Position  { return n.OpPos }
func (n *BinaryExpr) Pos() Position { return n.Left.Pos() }
func (n *CallExpr) Pos() Position   { return n.Func.Position }

// Span returns the range covered by the name.
func (n *Ident) Span() Span {
	return Token{Type: TOKEN_IDENT, Literal: n.Name, Pos: n.Position}.Span()
}

// Span returns the range covered by the keyword's name.
func (k *Keyword) Span() Span {
	return Token{Type: TOKEN_IDENT, Literal: k.Name, Pos: k.Position}.Span()
}

// OpSpan returns the range covered by the operator.
func (n *BinaryExpr) OpSpan() Span {
	return Token{Type: n.Op, Literal: n.Op.String(), Pos: n.OpPos}.Span()
}

func (n *NumberLit) String() string { return n.Literal }
func (n *Ident) String() string     { return n.Name }

func (n *UnaryExpr) String() string {
	return "(" + n.Op.String() + n.X.String() + ")"
}

func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *CallExpr) String() string {
	args := make([]string, 0, len(n.Args)+len(n.Keywords))
	for _, a := range n.Args {
		args = append(args, a.String())
	}
	for _, kw := range n.Keywords {
		args = append(args, kw.Name+"="+kw.Value.String())
	}
	return n.Func.Name + "(" + strings.Join(args, ", ") + ")"
}

// Walk calls fn for node and every descendant in depth-first order,
// stopping early if fn returns false.
func Walk(node Expr, fn func(Expr) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *UnaryExpr:
		Walk(n.X, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *CallExpr:
		Walk(n.Func, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
		for _, kw := range n.Keywords {
			Walk(kw.Value, fn)
		}
	}
}

// Identifiers returns every name referenced by the expression, in order of
// appearance, including called function names.
func Identifiers(node Expr) []string {
	var names []string
	Walk(node, func(e Expr) bool {
		if id, ok := e.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	return names
}

// Package ast defines the abstract syntax tree produced by pkg/parser and
// walked by pkg/interpreter.
package ast

import "fmt"

// Node is implemented by every AST node variant.
type Node interface {
	// Offset is the character offset in the source expression where this
	// node begins, used to anchor runtime error diagnostics.
	Offset() int
	String() string
}

// BaseNode carries the source offset shared by every node variant.
type BaseNode struct {
	Off int
}

func (b BaseNode) Offset() int { return b.Off }

// Identity is the current-node reference `@`.
type Identity struct {
	BaseNode
}

func (n *Identity) String() string { return "@" }

// Field is a `name` or quoted `"name"` field access.
type Field struct {
	BaseNode
	Name string
}

func (n *Field) String() string { return fmt.Sprintf("Field(%s)", n.Name) }

// Index is a `[n]` bracket index expression (n may be negative).
type Index struct {
	BaseNode
	Value int
}

func (n *Index) String() string { return fmt.Sprintf("Index(%d)", n.Value) }

// Literal is a backtick-delimited raw JSON value, already decoded.
type Literal struct {
	BaseNode
	Value any
}

func (n *Literal) String() string { return fmt.Sprintf("Literal(%v)", n.Value) }

// Subexpr is `Left.Right`, a non-projecting chain of two expressions.
type Subexpr struct {
	BaseNode
	Left  Node
	Right Node
}

func (n *Subexpr) String() string { return fmt.Sprintf("Subexpr(%s, %s)", n.Left, n.Right) }

// Pipe is `Left | Right`. Unlike Subexpr, a Pipe stops any in-flight
// projection: Right is evaluated once against Left's fully materialized
// result rather than once per projected element.
type Pipe struct {
	BaseNode
	Left  Node
	Right Node
}

func (n *Pipe) String() string { return fmt.Sprintf("Pipe(%s, %s)", n.Left, n.Right) }

// Or is `Left || Right`: Right evaluates only if Left is falsy.
type Or struct {
	BaseNode
	Left  Node
	Right Node
}

func (n *Or) String() string { return fmt.Sprintf("Or(%s, %s)", n.Left, n.Right) }

// And is `Left && Right`: Right evaluates only if Left is truthy.
type And struct {
	BaseNode
	Left  Node
	Right Node
}

func (n *And) String() string { return fmt.Sprintf("And(%s, %s)", n.Left, n.Right) }

// Not is `!Expr`.
type Not struct {
	BaseNode
	Expr Node
}

func (n *Not) String() string { return fmt.Sprintf("Not(%s)", n.Expr) }

// MultiList is a `[expr, expr, ...]` multi-select list.
type MultiList struct {
	BaseNode
	Items []Node
}

func (n *MultiList) String() string { return fmt.Sprintf("MultiList(%v)", n.Items) }

// MultiHashPair is one `key: expr` entry in a MultiHash.
type MultiHashPair struct {
	Key   string
	Value Node
}

// MultiHash is a `{key: expr, key: expr, ...}` multi-select hash.
type MultiHash struct {
	BaseNode
	Pairs []MultiHashPair
}

func (n *MultiHash) String() string { return fmt.Sprintf("MultiHash(%v)", n.Pairs) }

// Flatten is the `[]` flatten operator applied to Expr.
type Flatten struct {
	BaseNode
	Expr Node
}

func (n *Flatten) String() string { return fmt.Sprintf("Flatten(%s)", n.Expr) }

// Slice is a `[start:stop:step]` array slice; nil parts are omitted.
type Slice struct {
	BaseNode
	Start *int
	Stop  *int
	Step  *int
}

func (n *Slice) String() string {
	return fmt.Sprintf("Slice(%s, %s, %s)", intPtrString(n.Start), intPtrString(n.Stop), intPtrString(n.Step))
}

func intPtrString(p *int) string {
	if p == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", *p)
}

// Projection represents every array-producing projection construct
// (`Left[*]`, `Left.*`'s ObjectValues wrapper, `Left[]` flatten, and
// `Left[?cond]` filter, which wraps Right in a Condition node): Left
// produces a source array, each element flows through Right, and any
// element for which Right evaluates to Null is dropped from the result.
type Projection struct {
	BaseNode
	Left  Node
	Right Node
}

func (n *Projection) String() string {
	return fmt.Sprintf("Projection(%s, %s)", n.Left, n.Right)
}

// ObjectValues is the `*` applied directly to an object (as opposed to an
// array), the object-projection source expression.
type ObjectValues struct {
	BaseNode
	Expr Node
}

func (n *ObjectValues) String() string { return fmt.Sprintf("ObjectValues(%s)", n.Expr) }

// CompareOp enumerates the comparison operators.
type CompareOp int

const (
	CompareEQ CompareOp = iota
	CompareNE
	CompareLT
	CompareLTE
	CompareGT
	CompareGTE
)

func (op CompareOp) String() string {
	switch op {
	case CompareEQ:
		return "=="
	case CompareNE:
		return "!="
	case CompareLT:
		return "<"
	case CompareLTE:
		return "<="
	case CompareGT:
		return ">"
	case CompareGTE:
		return ">="
	default:
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
}

// Comparison is `Left op Right`.
type Comparison struct {
	BaseNode
	Op    CompareOp
	Left  Node
	Right Node
}

func (n *Comparison) String() string { return fmt.Sprintf("Comparison(%s %s %s)", n.Left, n.Op, n.Right) }

// Condition is `if(Cond) then Then` — the per-element body of a `[?cond]`
// filter. The parser always places it as the Right of a Projection: when
// Cond is falsy for an element the result is Null, so the Projection drops
// that element.
type Condition struct {
	BaseNode
	Cond Node
	Then Node
}

func (n *Condition) String() string { return fmt.Sprintf("Condition(%s, %s)", n.Cond, n.Then) }

// FunctionCall is `name(arg, arg, ...)`.
type FunctionCall struct {
	BaseNode
	Name string
	Args []Node
}

func (n *FunctionCall) String() string { return fmt.Sprintf("FunctionCall(%s, %v)", n.Name, n.Args) }

// ExpressionReference is `&expr`, an unevaluated expression passed as a
// value to a higher-order function such as sort_by or map.
type ExpressionReference struct {
	BaseNode
	Expr Node
}

func (n *ExpressionReference) String() string { return fmt.Sprintf("ExpressionReference(%s)", n.Expr) }

// Root wraps the AST's top-level node together with the source text the
// offsets in the tree are anchored to, so later diagnostics never need the
// text passed around separately.
type Root struct {
	Node       Node
	Expression string
}

package linguaflow

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Nodes are
// built bottom-up during parsing and never mutated afterwards; a parent
// exclusively owns its children.
type node struct {
	kind nodeKind

	// op is the operator for unary, binary, and list nodes.
	op Op
	// ival/fval carry the literal for number nodes; float selects which.
	ival  int64
	fval  float64
	float bool

	left  *node
	right *node
	// list holds the operands of a list fold, ordered, length >= 1.
	list []*node

	start, end Position
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // integer or float literal
	nodeUnary // op applied to left
	nodeBin   // left op right
	nodeList  // left fold of op over list
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeUnary:
		return "Unary"
	case nodeBin:
		return "Bin"
	case nodeList:
		return "List"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Expr is a parsed expression ready for evaluation.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// String creates a fully parenthesized representation of the expression,
// useful for checking how an input was grouped.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(n.literal())
	case nodeUnary:
		b.WriteByte('(')
		b.WriteString(n.op.String())
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeBin:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.op.String())
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeList:
		b.WriteString(n.op.String())
		b.WriteByte('[')
		for i, el := range n.list {
			if i > 0 {
				b.WriteString(", ")
			}
			el.fmt(b)
		}
		b.WriteByte(']')
	default:
		panic("linguaflow: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// literal formats a number node's literal value.
func (n *node) literal() string {
	if n.float {
		return strconv.FormatFloat(n.fval, 'g', -1, 64)
	}
	return strconv.FormatInt(n.ival, 10)
}

// Dump renders the syntax tree as an indented graph growing downward, one
// node per line. The REPL's verbose mode prints it.
func (e *Expr) Dump() string {
	var b strings.Builder
	e.n.dump(&b, "", "")
	return strings.TrimRight(b.String(), "\n")
}

func (n *node) dump(b *strings.Builder, prefix, childPrefix string) {
	b.WriteString(prefix)
	switch n.kind {
	case nodeNum:
		b.WriteString(n.literal())
	case nodeUnary:
		b.WriteString("Unary(" + n.op.String() + ")")
	case nodeBin:
		b.WriteString("BinOp(" + n.op.String() + ")")
	case nodeList:
		b.WriteString("ListOp(" + n.op.String() + ")")
	default:
		b.WriteString(n.kind.String())
	}
	b.WriteByte('\n')
	children := n.children()
	for i, c := range children {
		if i == len(children)-1 {
			c.dump(b, childPrefix+"└── ", childPrefix+"    ")
		} else {
			c.dump(b, childPrefix+"├── ", childPrefix+"│   ")
		}
	}
}

func (n *node) children() []*node {
	switch n.kind {
	case nodeUnary:
		return []*node{n.left}
	case nodeBin:
		return []*node{n.left, n.right}
	case nodeList:
		return n.list
	default:
		return nil
	}
}

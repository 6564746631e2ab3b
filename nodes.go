package catware

import (
	"strings"
)

// node is a node in the parse tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a number, the name of a variable or called
	// function, or the separator preceding an argument.
	name string
	// val is the value of a number.
	val float64
	// src is the source text of an argument.
	src string
	// paren is set on a subexpression written in brackets. Bracketed
	// subexpressions are never assignment targets.
	paren bool

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // val
	nodeName // lookup(name)

	nodeCall // name is the function to call, right is link to nodeArg unless niladic
	nodeArg  // eval left, right is link to next arg

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
	nodeNop // evaluate left
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, alt bool) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, alt)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, alt)
		}
		b.WriteByte('$')
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.fmtargs(b, alt)
	case nodeArg:
		// Args usually only appear inside calls, which are handled by fmtargs.
		b.WriteByte(':')
		n.left.fmt(b, alt)
		if n.right != nil {
			n.right.fmt(b, alt)
		}
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, alt)
	case nodeAdd:
		n.left.fmt(b, alt)
		b.WriteString(" + ")
		n.right.fmt(b, alt)
	case nodeSub:
		n.left.fmt(b, alt)
		b.WriteString(" - ")
		n.right.fmt(b, alt)
	case nodeMul:
		n.left.fmt(b, alt)
		if !alt {
			b.WriteString(" * ")
		} else {
			b.WriteString(" × ")
		}
		n.right.fmt(b, alt)
	case nodeDiv:
		n.left.fmt(b, alt)
		if !alt {
			b.WriteString(" / ")
		} else {
			b.WriteString(" ÷ ")
		}
		n.right.fmt(b, alt)
	case nodePow:
		n.left.fmt(b, alt)
		b.WriteString(" ^ ")
		n.right.fmt(b, alt)
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, alt)
	default:
		panic("catware: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder, alt bool) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	if n.right == nil {
		// Niladic call.
		return
	}
	n = n.right
	if n.kind != nodeArg {
		b.WriteString("***")
		n.fmt(b, alt)
		return
	}
	n.left.fmt(b, alt)
	for n.right != nil {
		n = n.right
		if n.kind != nodeArg {
			b.WriteString("***")
			n.fmt(b, alt)
			return
		}
		b.WriteString(", ")
		n.left.fmt(b, alt)
	}
}

// args returns the argument nodes of a call.
func (n *node) args() []*node {
	var v []*node
	for l := n.right; l != nil; l = l.right {
		v = append(v, l)
	}
	return v
}

// collect adds the variable names used in the subtree to names.
func (n *node) collect(names map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeName {
		names[n.name] = true
	}
	n.left.collect(names)
	n.right.collect(names)
}

package complexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind is the variant of a Node.
type NodeKind int8

const (
	// NodeNull is the absent-argument sentinel returned by Null.
	NodeNull NodeKind = iota
	// NodeConst holds a fixed value.
	NodeConst
	// NodeVar looks up a variable by name.
	NodeVar
	// NodeUnary applies a function to one child.
	NodeUnary
	// NodeBinary applies a function to two children.
	NodeBinary
	// NodeNAry applies a function to any number of children.
	NodeNAry
)

func (k NodeKind) String() string {
	switch k {
	case NodeNull:
		return "Null"
	case NodeConst:
		return "Const"
	case NodeVar:
		return "Var"
	case NodeUnary:
		return "Unary"
	case NodeBinary:
		return "Binary"
	case NodeNAry:
		return "NAry"
	default:
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a node in the tree of a parsed expression. Each node exclusively
// owns its children, except that any number of parents may hold Null.
type Node struct {
	kind NodeKind
	// name is the variable name, the function or operator name of a call, or
	// the name or source text of a constant.
	name string
	val  Value

	un   func(Value) (Value, error)
	bin  func(l, r Value) (Value, error)
	nary func([]Value) (Value, error)

	kids []*Node
	// cols is the number of columns of a matrix literal, which is an n-ary
	// node named "{}". Its children are the elements in row-major order.
	cols int
}

var null = &Node{kind: NodeNull}

// Null returns the sentinel node standing in for an optional argument that
// was not supplied. A function receives an absent Value for a Null child.
// Evaluating Null itself panics.
func Null() *Node {
	return null
}

// NewConst creates a node evaluating to v.
func NewConst(v Value) *Node {
	return &Node{kind: NodeConst, val: v}
}

// NewNamedConst creates a node evaluating to v which formats as name.
func NewNamedConst(name string, v Value) *Node {
	return &Node{kind: NodeConst, name: name, val: v}
}

// NewVar creates a node that looks up the variable name.
func NewVar(name string) *Node {
	return &Node{kind: NodeVar, name: name}
}

// NewUnary creates a node applying f to the value of x.
func NewUnary(name string, f func(Value) (Value, error), x *Node) *Node {
	checkkids(x)
	return &Node{kind: NodeUnary, name: name, un: f, kids: []*Node{x}}
}

// NewBinary creates a node applying f to the values of l and r.
func NewBinary(name string, f func(l, r Value) (Value, error), l, r *Node) *Node {
	checkkids(l, r)
	return &Node{kind: NodeBinary, name: name, bin: f, kids: []*Node{l, r}}
}

// NewNAry creates a node applying f to the values of args in order.
func NewNAry(name string, f func([]Value) (Value, error), args ...*Node) *Node {
	checkkids(args...)
	return &Node{kind: NodeNAry, name: name, nary: f, kids: append([]*Node(nil), args...)}
}

func checkkids(kids ...*Node) {
	for _, k := range kids {
		if k == nil {
			panic("complexpr: nil child node")
		}
	}
}

// Kind returns the variant of n.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Name returns the variable name of a variable node, the function or operator
// name of a unary, binary, or n-ary node, or the name of a named constant.
func (n *Node) Name() string {
	return n.name
}

// Value returns the value of a constant node.
func (n *Node) Value() Value {
	return n.val
}

// Children returns the children of n in evaluation order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.kids...)
}

// ReplaceChild replaces the first child of n that is old with new. It reports
// whether old was found. This is the only way to modify a tree once built.
func (n *Node) ReplaceChild(old, new *Node) bool {
	checkkids(new)
	for i, k := range n.kids {
		if k == old {
			n.kids[i] = new
			return true
		}
	}
	return false
}

// FindVariable returns the first variable node named name in a pre-order walk
// of the tree rooted at n, or nil if there is none.
func (n *Node) FindVariable(name string) *Node {
	if n.kind == NodeVar && n.name == name {
		return n
	}
	for _, k := range n.kids {
		if v := k.FindVariable(name); v != nil {
			return v
		}
	}
	return nil
}

// FindAllVariables returns every variable node in the tree rooted at n, in
// pre-order.
func (n *Node) FindAllVariables() []*Node {
	var r []*Node
	n.walk(func(k *Node) {
		if k.kind == NodeVar {
			r = append(r, k)
		}
	})
	return r
}

func (n *Node) walk(f func(*Node)) {
	f(n)
	for _, k := range n.kids {
		k.walk(f)
	}
}

// Eval evaluates the tree rooted at n. Children are evaluated in order before
// the node's own function is applied; Null children are passed as absent
// values instead. Panics if n is Null.
func (n *Node) Eval(vars Vars) (Value, error) {
	switch n.kind {
	case NodeNull:
		panic(fmt.Errorf("complexpr: evaluated Null node: %w", ErrAbsentArgument))
	case NodeConst:
		return n.val, nil
	case NodeVar:
		v, ok := vars[n.name]
		if !ok || !v.Present() {
			return Value{}, &NameError{Name: n.name}
		}
		return v, nil
	case NodeUnary:
		x, err := n.kids[0].arg(vars)
		if err != nil {
			return Value{}, err
		}
		r, err := n.un(x)
		return r, annotate(n.name, err)
	case NodeBinary:
		l, err := n.kids[0].arg(vars)
		if err != nil {
			return Value{}, err
		}
		r, err := n.kids[1].arg(vars)
		if err != nil {
			return Value{}, err
		}
		v, err := n.bin(l, r)
		return v, annotate(n.name, err)
	case NodeNAry:
		args := make([]Value, len(n.kids))
		for i, k := range n.kids {
			v, err := k.arg(vars)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		r, err := n.nary(args)
		return r, annotate(n.name, err)
	default:
		panic("complexpr: invalid node kind " + n.kind.String())
	}
}

// arg evaluates n as an argument to its parent.
func (n *Node) arg(vars Vars) (Value, error) {
	if n.kind == NodeNull {
		return Value{}, nil
	}
	return n.Eval(vars)
}

// String formats the tree rooted at n with alternating round and square
// brackets grouping each term.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case NodeNull:
		b.WriteByte('_')
	case NodeConst:
		if n.name != "" {
			b.WriteString(n.name)
		} else {
			b.WriteString(n.val.String())
		}
	case NodeVar:
		b.WriteString(n.name)
	case NodeUnary:
		if isOperator(n.name) {
			b.WriteString(n.name)
			n.kids[0].fmt(b, !square)
			return
		}
		n.fmtcall(b, square)
	case NodeBinary:
		if isOperator(n.name) {
			n.kids[0].fmt(b, !square)
			b.WriteString(" " + n.name + " ")
			n.kids[1].fmt(b, !square)
			return
		}
		n.fmtcall(b, square)
	case NodeNAry:
		if n.name == literalName {
			n.fmtliteral(b, square)
			return
		}
		n.fmtcall(b, square)
	default:
		panic("complexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtcall writes a call as name[args]. Null arguments are omitted.
func (n *Node) fmtcall(b *strings.Builder, square bool) {
	var l, r byte = '[', ']'
	if square {
		l, r = '(', ')'
	}
	b.WriteString(n.name)
	b.WriteByte(l)
	first := true
	for _, k := range n.kids {
		if k.kind == NodeNull {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		k.fmt(b, square)
	}
	b.WriteByte(r)
}

func (n *Node) fmtliteral(b *strings.Builder, square bool) {
	b.WriteByte('{')
	for i, k := range n.kids {
		if i > 0 {
			if i%n.cols == 0 {
				b.WriteString("; ")
			} else {
				b.WriteString(", ")
			}
		}
		k.fmt(b, !square)
	}
	b.WriteByte('}')
}

func isOperator(name string) bool {
	return len(name) == 1 && strings.Contains(Operators, name)
}

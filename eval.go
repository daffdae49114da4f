package complexpr

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Vars binds variable names to values for evaluation.
type Vars map[string]Value

// Expr is a parsed expression.
type Expr struct {
	// root is the root node of the expression.
	root *Node
}

// Eval evaluates the expression with the given variable bindings. It is safe
// to evaluate the same Expr concurrently.
func (e *Expr) Eval(vars Vars) (Value, error) {
	return e.root.Eval(vars)
}

// Root returns the root node of the expression tree.
func (e *Expr) Root() *Node {
	return e.root
}

// Vars returns the names of the variables in the expression, sorted and
// without duplicates. Edits to the tree through Root are reflected.
func (e *Expr) Vars() []string {
	var r []string
	for _, n := range e.root.FindAllVariables() {
		r = append(r, n.Name())
	}
	slices.Sort(r)
	return slices.Compact(r)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	return e.root.String()
}

// Eval is a shortcut to parse an expression and evaluate it.
func Eval(src io.RuneScanner, vars Vars, opts ...BuildOption) (Value, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return Value{}, err
	}
	return a.Eval(vars)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, vars Vars, opts ...BuildOption) (Value, error) {
	return Eval(strings.NewReader(src), vars, opts...)
}

// EvalVars evaluates a set of variable definitions given as expression text.
// Definitions are evaluated in name order, and each may refer to the
// variables defined before it.
func EvalVars(defs map[string]string, opts ...BuildOption) (Vars, error) {
	names := make([]string, 0, len(defs))
	for k := range defs {
		names = append(names, k)
	}
	slices.Sort(names)
	vars := make(Vars, len(defs))
	for _, k := range names {
		v, err := EvalString(defs[k], vars, opts...)
		if err != nil {
			return nil, fmt.Errorf("defining %s: %w", k, err)
		}
		vars[k] = v
	}
	return vars, nil
}

// NameError is an error from a lookup for a variable that has no binding.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

package complexpr

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// ArgKind is the kind of value a function argument expects.
type ArgKind int8

const (
	argNone ArgKind = iota
	// ArgReal is a real scalar.
	ArgReal
	// ArgComplex is a complex scalar.
	ArgComplex
	// ArgRealMatrix is a matrix or vector with real elements.
	ArgRealMatrix
	// ArgComplexMatrix is a matrix or vector with complex elements.
	ArgComplexMatrix
	// ArgInteger is a real scalar with an integral value.
	ArgInteger
	// ArgRealVector is a list of reals given as a row or column.
	ArgRealVector
)

func (k ArgKind) String() string {
	switch k {
	case ArgReal:
		return "real"
	case ArgComplex:
		return "complex"
	case ArgRealMatrix:
		return "real matrix"
	case ArgComplexMatrix:
		return "complex matrix"
	case ArgInteger:
		return "integer"
	case ArgRealVector:
		return "real vector"
	default:
		return "ArgKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Arg describes one argument of a signature.
type Arg struct {
	Kind ArgKind `yaml:"kind"`
	Name string  `yaml:"name"`
}

// Signature is an ordered list of the arguments of one overload of a
// function. Constants have one signature with no arguments.
type Signature struct {
	Args []Arg `yaml:"args"`
}

// Arity returns the number of arguments in the signature.
func (s Signature) Arity() int {
	return len(s.Args)
}

// String formats the signature as e.g. "(x complex matrix, k integer)".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range s.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
		b.WriteByte(' ')
		b.WriteString(a.Kind.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Example is a worked example: an expression and the formatted form of its
// value.
type Example struct {
	Expr   string `yaml:"expr"`
	Result string `yaml:"result"`
}

// Descriptor describes a registered function or constant.
type Descriptor struct {
	// Name is the identifier used in expressions.
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Category    string `yaml:"category"`
	Section     string `yaml:"section,omitempty"`
	Description string `yaml:"description"`
	// Signatures lists the accepted argument lists. At least one is required.
	Signatures []Signature `yaml:"signatures"`
	// Examples must number at least as many as Signatures.
	Examples []Example `yaml:"examples"`
}

// Arities returns the distinct arities of d's signatures in ascending order.
func (d *Descriptor) Arities() []int {
	r := make([]int, 0, len(d.Signatures))
	for _, s := range d.Signatures {
		r = append(r, s.Arity())
	}
	slices.Sort(r)
	return slices.Compact(r)
}

func (d *Descriptor) clone() Descriptor {
	r := *d
	r.Signatures = make([]Signature, len(d.Signatures))
	for i, s := range d.Signatures {
		r.Signatures[i] = Signature{Args: slices.Clone(s.Args)}
	}
	r.Examples = slices.Clone(d.Examples)
	return r
}

func (d *Descriptor) validate() error {
	switch {
	case !isIdent(d.Name):
		return fmt.Errorf("%w: name %q is not an identifier", ErrBadDescriptor, d.Name)
	case d.DisplayName == "":
		return fmt.Errorf("%w: %s has no display name", ErrBadDescriptor, d.Name)
	case d.Category == "":
		return fmt.Errorf("%w: %s has no category", ErrBadDescriptor, d.Name)
	case d.Description == "":
		return fmt.Errorf("%w: %s has no description", ErrBadDescriptor, d.Name)
	case len(d.Signatures) == 0:
		return fmt.Errorf("%w: %s has no signatures", ErrBadDescriptor, d.Name)
	case len(d.Examples) < len(d.Signatures):
		return fmt.Errorf("%w: %s has %d examples for %d signatures", ErrBadDescriptor, d.Name, len(d.Examples), len(d.Signatures))
	}
	for _, s := range d.Signatures {
		for _, a := range s.Args {
			if a.Kind <= argNone || a.Kind > ArgRealVector {
				return fmt.Errorf("%w: %s has argument %q of invalid kind %v", ErrBadDescriptor, d.Name, a.Name, a.Kind)
			}
		}
	}
	for _, e := range d.Examples {
		if e.Expr == "" || e.Result == "" {
			return fmt.Errorf("%w: %s has an incomplete example", ErrBadDescriptor, d.Name)
		}
	}
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return !isInf(s)
}

// Factory builds the node for a call. It receives exactly as many arguments
// as one of the signatures its descriptor declares.
type Factory func(args []*Node) *Node

var (
	// ErrBadDescriptor indicates a descriptor missing required metadata.
	ErrBadDescriptor = errors.New("invalid descriptor")
	// ErrDuplicate indicates a registration of a name and arity that are
	// already registered.
	ErrDuplicate = errors.New("duplicate registration")
	// ErrFrozen indicates a registration on a registry that no longer accepts
	// them, such as the one returned by Builtins.
	ErrFrozen = errors.New("registry is read-only")
)

// Registry maps function and constant names to the factories that build their
// nodes, along with descriptive metadata. A Registry is safe for concurrent
// use once no more registrations will be made.
type Registry struct {
	// funcs maps names to arities to factories.
	funcs map[string]map[int]Factory
	// descs holds descriptors in registration order.
	descs  []Descriptor
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]map[int]Factory)}
}

// Register adds a function or constant. Each arity of the descriptor's
// signatures maps to f, so f must build a node for every one of them.
func (r *Registry) Register(d Descriptor, f Factory) error {
	if r.frozen {
		return ErrFrozen
	}
	if f == nil {
		return fmt.Errorf("%w: %s has no factory", ErrBadDescriptor, d.Name)
	}
	if err := d.validate(); err != nil {
		return err
	}
	ar := d.Arities()
	m := r.funcs[d.Name]
	for _, k := range ar {
		if m[k] != nil {
			return fmt.Errorf("%w: %s with %d arguments", ErrDuplicate, d.Name, k)
		}
	}
	if m == nil {
		m = make(map[int]Factory, len(ar))
		r.funcs[d.Name] = m
	}
	for _, k := range ar {
		m[k] = f
	}
	r.descs = append(r.descs, d.clone())
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(d Descriptor, f Factory) {
	if err := r.Register(d, f); err != nil {
		panic("complexpr: " + err.Error())
	}
}

// Resolve returns the factory for a call to name with argc arguments.
func (r *Registry) Resolve(name string, argc int) (Factory, error) {
	m := r.funcs[name]
	if m == nil {
		return nil, &UnknownIdentifierError{Name: name}
	}
	f := m[argc]
	if f == nil {
		return nil, &ArityError{Name: name, Len: argc, Arities: sortedKeys(m)}
	}
	return f, nil
}

// Lookup returns the arities registered for name in ascending order and
// whether name is registered at all.
func (r *Registry) Lookup(name string) ([]int, bool) {
	m := r.funcs[name]
	if m == nil {
		return nil, false
	}
	return sortedKeys(m), true
}

// Metadata returns copies of all descriptors, sorted by category and then by
// name.
func (r *Registry) Metadata() []Descriptor {
	ds := make([]Descriptor, len(r.descs))
	for i := range r.descs {
		ds[i] = r.descs[i].clone()
	}
	slices.SortStableFunc(ds, func(a, b Descriptor) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return ds
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.descs)
}

// Clone returns a registry with the same registrations as r that accepts new
// ones.
func (r *Registry) Clone() *Registry {
	n := &Registry{
		funcs: make(map[string]map[int]Factory, len(r.funcs)),
		descs: make([]Descriptor, len(r.descs)),
	}
	for k, m := range r.funcs {
		c := make(map[int]Factory, len(m))
		for a, f := range m {
			c[a] = f
		}
		n.funcs[k] = c
	}
	for i := range r.descs {
		n.descs[i] = r.descs[i].clone()
	}
	return n
}

func sortedKeys(m map[int]Factory) []int {
	r := make([]int, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}

// UnknownIdentifierError is an error indicating a call to an unregistered
// name. It unwraps to ErrUnknownIdentifier.
type UnknownIdentifierError struct {
	Name string
}

func (err *UnknownIdentifierError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

func (err *UnknownIdentifierError) Unwrap() error {
	return ErrUnknownIdentifier
}

// ArityError is an error indicating a call to a registered name with an
// unsupported number of arguments. It unwraps to ErrArityMismatch.
type ArityError struct {
	// Name is the function name.
	Name string
	// Len is the number of arguments in the call.
	Len int
	// Arities lists the supported argument counts in ascending order.
	Arities []int
}

func (err *ArityError) Error() string {
	s := make([]string, len(err.Arities))
	for i, k := range err.Arities {
		s[i] = strconv.Itoa(k)
	}
	return err.Name + " takes " + strings.Join(s, " or ") + " arguments, not " + strconv.Itoa(err.Len)
}

func (err *ArityError) Unwrap() error {
	return ErrArityMismatch
}

var (
	builtinsOnce sync.Once
	builtins     *Registry
)

// Builtins returns the registry of built-in functions and constants. It is
// built on first use and is read-only; use Clone to extend it.
func Builtins() *Registry {
	builtinsOnce.Do(func() {
		r := NewRegistry()
		registerConstants(r)
		registerElementary(r)
		registerStatistics(r)
		registerLinearAlgebra(r)
		r.frozen = true
		builtins = r
	})
	return builtins
}

// Constant returns a factory for a zero-argument constant named name.
func Constant(name string, v Value) Factory {
	return func([]*Node) *Node {
		return NewNamedConst(name, v)
	}
}

// Monadic returns a factory for a function of one argument.
func Monadic(name string, f func(Value) (Value, error)) Factory {
	return func(args []*Node) *Node {
		return NewUnary(name, f, args[0])
	}
}

// Dyadic returns a factory for a function of two arguments. If the call has
// only one argument, the second is Null.
func Dyadic(name string, f func(l, r Value) (Value, error)) Factory {
	return func(args []*Node) *Node {
		if len(args) == 1 {
			return NewBinary(name, f, args[0], Null())
		}
		return NewBinary(name, f, args[0], args[1])
	}
}

// Variadic returns a factory for a function of any number of arguments.
func Variadic(name string, f func([]Value) (Value, error)) Factory {
	return func(args []*Node) *Node {
		return NewNAry(name, f, args...)
	}
}

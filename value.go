package complexpr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/zephyrtronium/complexpr/cmat"
)

// Kind is the kind of a Value.
type Kind int8

const (
	// KindAbsent is the kind of the zero Value. It marks an optional
	// argument that was not supplied.
	KindAbsent Kind = iota
	// KindScalar is a complex scalar.
	KindScalar
	// KindMatrix is a complex matrix.
	KindMatrix
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindMatrix:
		return "matrix"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an expression: a complex scalar or a
// complex matrix. A 1x1 matrix and a scalar are interchangeable wherever a
// function asks for one or the other.
//
// A Value's matrix is shared, not copied. Callers must not modify it.
type Value struct {
	kind Kind
	z    complex128
	m    *cmat.Matrix
}

// NewScalar creates a scalar value.
func NewScalar(z complex128) Value {
	return Value{kind: KindScalar, z: z}
}

// NewReal creates a scalar value with zero imaginary part.
func NewReal(x float64) Value {
	return Value{kind: KindScalar, z: complex(x, 0)}
}

// NewMatrix creates a matrix value. Panics if m is nil.
func NewMatrix(m *cmat.Matrix) Value {
	if m == nil {
		panic("complexpr: nil matrix")
	}
	return Value{kind: KindMatrix, m: m}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Present reports whether v holds a scalar or a matrix.
func (v Value) Present() bool {
	return v.kind != KindAbsent
}

// IsScalar reports whether v is a scalar or a 1x1 matrix.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindScalar:
		return true
	case KindMatrix:
		return v.m.Rows() == 1 && v.m.Cols() == 1
	}
	return false
}

// Scalar returns v as a scalar. Scalars and 1x1 matrices are accepted.
func (v Value) Scalar() (complex128, error) {
	switch v.kind {
	case KindScalar:
		return v.z, nil
	case KindMatrix:
		if v.m.Rows() == 1 && v.m.Cols() == 1 {
			return v.m.At(0, 0), nil
		}
		return 0, v.mismatch("scalar")
	}
	return 0, absent()
}

// Matrix returns v as a matrix. A scalar becomes a 1x1 matrix.
func (v Value) Matrix() (*cmat.Matrix, error) {
	switch v.kind {
	case KindScalar:
		return cmat.Column([]complex128{v.z}), nil
	case KindMatrix:
		return v.m, nil
	}
	return nil, absent()
}

// Vector returns the elements of v in row-major order. A scalar is a vector
// of one element.
func (v Value) Vector() ([]complex128, error) {
	switch v.kind {
	case KindScalar:
		return []complex128{v.z}, nil
	case KindMatrix:
		return v.m.Values(), nil
	}
	return nil, absent()
}

// Real returns v as a real number. v must be scalar-like with a zero
// imaginary part.
func (v Value) Real() (float64, error) {
	z, err := v.Scalar()
	if err != nil {
		if v.kind == KindMatrix {
			return 0, v.mismatch("real scalar")
		}
		return 0, err
	}
	if imag(z) != 0 {
		return 0, v.mismatch("real scalar")
	}
	return real(z), nil
}

// RealVector returns the elements of v as reals in row-major order. Every
// element must have a zero imaginary part.
func (v Value) RealVector() ([]float64, error) {
	zs, err := v.Vector()
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(zs))
	for i, z := range zs {
		if imag(z) != 0 {
			return nil, v.mismatch("real vector")
		}
		r[i] = real(z)
	}
	return r, nil
}

// Int returns v as an integer. v must be a real scalar with an integral
// value that fits in an int.
func (v Value) Int() (int, error) {
	x, err := v.Real()
	if err != nil {
		if v.kind != KindAbsent {
			return 0, v.mismatch("integer")
		}
		return 0, err
	}
	if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
		return 0, v.mismatch("integer")
	}
	return int(x), nil
}

// String formats v. Scalars format as e.g. "1 - 2i", matrices as e.g.
// "{1, 2; 3, 4}".
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return cmat.FormatScalar(v.z)
	case KindMatrix:
		return v.m.String()
	}
	return "<absent>"
}

// describe names the kind and shape of v for error messages.
func (v Value) describe() string {
	switch v.kind {
	case KindScalar:
		if imag(v.z) == 0 {
			return "real scalar " + cmat.FormatReal(real(v.z))
		}
		return "complex scalar " + cmat.FormatScalar(v.z)
	case KindMatrix:
		r, c := v.m.Dims()
		return strconv.Itoa(r) + "x" + strconv.Itoa(c) + " matrix"
	}
	return "absent argument"
}

func (v Value) mismatch(want string) error {
	return &TypeError{Want: want, Got: v.describe()}
}

func absent() error {
	return fmt.Errorf("complexpr: %w", ErrAbsentArgument)
}

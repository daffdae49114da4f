package complexpr

import (
	"math"
	"math/cmplx"

	"github.com/zephyrtronium/complexpr/cmat"
)

// The arithmetic operators of the expression language. Each is the behavior
// of a unary or binary node named by the operator.

func opAdd(l, r Value) (Value, error) {
	return elementwise(l, r, func(a, b complex128) complex128 { return a + b }, cmat.Add)
}

func opSub(l, r Value) (Value, error) {
	return elementwise(l, r, func(a, b complex128) complex128 { return a - b }, cmat.Sub)
}

// elementwise applies a scalar operation to two scalars or a matrix
// operation to anything else.
func elementwise(l, r Value, s func(a, b complex128) complex128, m func(a, b *cmat.Matrix) (*cmat.Matrix, error)) (Value, error) {
	if l.kind == KindScalar && r.kind == KindScalar {
		return NewScalar(s(l.z, r.z)), nil
	}
	a, err := l.Matrix()
	if err != nil {
		return Value{}, err
	}
	b, err := r.Matrix()
	if err != nil {
		return Value{}, err
	}
	c, err := m(a, b)
	if err != nil {
		return Value{}, kernelError(err)
	}
	return NewMatrix(c), nil
}

// opMul multiplies. If either side is scalar-like, the other is scaled;
// otherwise the result is the matrix product.
func opMul(l, r Value) (Value, error) {
	if l.kind == KindScalar && r.kind == KindScalar {
		return NewScalar(l.z * r.z), nil
	}
	if !l.Present() || !r.Present() {
		return Value{}, absent()
	}
	if l.IsScalar() {
		z, _ := l.Scalar()
		m, _ := r.Matrix()
		return NewMatrix(cmat.Scale(z, m)), nil
	}
	if r.IsScalar() {
		z, _ := r.Scalar()
		m, _ := l.Matrix()
		return NewMatrix(cmat.Map(m, func(v complex128) complex128 { return v * z })), nil
	}
	c, err := cmat.Mul(l.m, r.m)
	if err != nil {
		return Value{}, kernelError(err)
	}
	return NewMatrix(c), nil
}

// opDiv divides by a scalar. Division by zero is outside the domain.
func opDiv(l, r Value) (Value, error) {
	d, err := r.Scalar()
	if err != nil {
		return Value{}, argn(2, err)
	}
	if d == 0 {
		return Value{}, &DomainError{}
	}
	if l.kind == KindScalar {
		return NewScalar(l.z / d), nil
	}
	m, err := l.Matrix()
	if err != nil {
		return Value{}, err
	}
	return NewMatrix(cmat.Map(m, func(v complex128) complex128 { return v / d })), nil
}

// opPow raises a scalar to a scalar power or a square matrix to a
// non-negative integer power.
func opPow(l, r Value) (Value, error) {
	if !l.Present() || !r.Present() {
		return Value{}, absent()
	}
	if !r.IsScalar() {
		return Value{}, argn(2, r.mismatch("scalar"))
	}
	y, _ := r.Scalar()
	if l.IsScalar() {
		x, _ := l.Scalar()
		z, err := powScalar(x, y)
		if err != nil {
			return Value{}, err
		}
		return NewScalar(z), nil
	}
	k, err := r.Int()
	if err != nil || k < 0 {
		return Value{}, argn(2, r.mismatch("non-negative integer"))
	}
	if !l.m.IsSquare() {
		return Value{}, argn(1, l.mismatch("square matrix"))
	}
	p, err := cmat.Pow(l.m, k)
	if err != nil {
		return Value{}, kernelError(err)
	}
	return NewMatrix(p), nil
}

func powScalar(x, y complex128) (complex128, error) {
	if x == 0 && y != 0 && real(y) <= 0 {
		return 0, &DomainError{}
	}
	if imag(y) == 0 {
		b := real(y)
		if imag(x) == 0 && (real(x) >= 0 || b == math.Trunc(b)) {
			return complex(realPow(real(x), b), 0), nil
		}
		if b == math.Trunc(b) && math.Abs(b) <= maxIntPow {
			// Small integral powers by repeated squaring keep i^2 exactly -1.
			k := int(b)
			if k < 0 {
				return 1 / powInt(x, -k), nil
			}
			return powInt(x, k), nil
		}
	}
	return cmplx.Pow(x, y), nil
}

// maxIntPow is the largest integral exponent computed by repeated squaring.
const maxIntPow = 64

func powInt(z complex128, k int) complex128 {
	r := complex(1, 0)
	for p := z; k > 0; k >>= 1 {
		if k&1 != 0 {
			r *= p
		}
		p *= p
	}
	return r
}

func opNeg(v Value) (Value, error) {
	switch v.kind {
	case KindScalar:
		return NewScalar(negate(v.z)), nil
	case KindMatrix:
		return NewMatrix(cmat.Map(v.m, negate)), nil
	}
	return Value{}, absent()
}

// negate returns -z, except that zero parts stay positive zero. Thus -1 lies
// on the upper side of the branch cut of sqrt and ln, as it does when written
// as 0 - 1.
func negate(z complex128) complex128 {
	return complex(0-real(z), 0-imag(z))
}

func opPlus(v Value) (Value, error) {
	if !v.Present() {
		return Value{}, absent()
	}
	return v, nil
}

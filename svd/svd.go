// Package svd computes the singular value decomposition of complex matrices
// and the quantities derived from it: the 2-norm, the condition number, the
// numerical rank, and the Moore-Penrose pseudoinverse.
//
// Rank and pseudoinverse share one scale-aware tolerance,
//
//	tol = max(m, n) · s[0] · ε,
//
// where s[0] is the largest singular value and ε is the machine epsilon of
// float64. Singular values at or below tol are treated as zero.
package svd

import (
	"math"
	"math/cmplx"

	"github.com/zephyrtronium/complexpr/cmat"
)

// Epsilon is the machine epsilon used in the rank tolerance, 2^-52.
const Epsilon = 0x1p-52

// SVD is the decomposition A = U·diag(s)·Vᴴ of an m×n complex matrix. It is
// immutable once computed.
type SVD struct {
	m, n int
	// s holds min(m, n) singular values, non-negative, in descending order.
	s []float64
	// u is m×m and vh is n×n. Both are nil if only singular values were
	// requested.
	u, vh *cmat.Matrix
}

// Decompose computes the singular value decomposition of a. If valuesOnly is
// true, the unitary factors are not accumulated, and the methods that need
// them panic.
func Decompose(a *cmat.Matrix, valuesOnly bool) *SVD {
	m, n := a.Dims()
	// The rotations work with squared column norms, so bring the largest
	// element near 1 first. Scaling by a power of two is exact and leaves
	// U and Vᴴ unchanged.
	a, e := normalize(a)
	var r *SVD
	if m >= n {
		w := jacobi(a, !valuesOnly)
		r = &SVD{m: m, n: n, s: w.s, u: w.u, vh: w.vh}
	} else {
		// Work on Aᴴ = U'·S·V'ᴴ so that the iteration runs over the shorter
		// dimension; then A = V'·S·U'ᴴ.
		w := jacobi(cmat.Adjoint(a), !valuesOnly)
		r = &SVD{m: m, n: n, s: w.s}
		if !valuesOnly {
			r.u = cmat.Adjoint(w.vh)
			r.vh = cmat.Adjoint(w.u)
		}
	}
	if e != 0 {
		for i, v := range r.s {
			r.s[i] = math.Ldexp(v, e)
		}
	}
	return r
}

// normalize returns a·2^-e, where e is the binary exponent of the element of
// a with the largest modulus. A matrix that is zero or holds a non-finite
// element is returned as is with e = 0.
func normalize(a *cmat.Matrix) (*cmat.Matrix, int) {
	m, n := a.Dims()
	var big float64
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			big = max(big, cmplx.Abs(a.At(i, j)))
		}
	}
	if big == 0 || math.IsInf(big, 0) || math.IsNaN(big) {
		return a, 0
	}
	_, e := math.Frexp(big)
	if e == 0 {
		return a, 0
	}
	return cmat.Map(a, func(z complex128) complex128 {
		return complex(math.Ldexp(real(z), -e), math.Ldexp(imag(z), -e))
	}), e
}

// Dims returns the shape of the decomposed matrix.
func (d *SVD) Dims() (m, n int) { return d.m, d.n }

// Values returns a copy of the singular values in descending order.
func (d *SVD) Values() []float64 {
	return append([]float64(nil), d.s...)
}

// HasFactors reports whether U and Vᴴ were computed.
func (d *SVD) HasFactors() bool { return d.u != nil }

// U returns a copy of the m×m unitary matrix of left singular vectors.
func (d *SVD) U() *cmat.Matrix {
	d.needFactors()
	return d.u.Clone()
}

// VH returns a copy of the n×n conjugate transpose of the unitary matrix of
// right singular vectors.
func (d *SVD) VH() *cmat.Matrix {
	d.needFactors()
	return d.vh.Clone()
}

// S returns the m×n matrix with the singular values on its main diagonal.
func (d *SVD) S() *cmat.Matrix {
	r := cmat.New(d.m, d.n)
	for i, v := range d.s {
		r.Set(i, i, complex(v, 0))
	}
	return r
}

// Combined returns U, S, and Vᴴ side by side in a single matrix with
// max(m, n) rows and m+2n columns. Rows past the height of a block are zero.
func (d *SVD) Combined() *cmat.Matrix {
	d.needFactors()
	m, n := d.m, d.n
	h := max(m, n)
	r, err := cmat.HConcat(cmat.Pad(d.u, h, m), cmat.Pad(d.S(), h, n), cmat.Pad(d.vh, h, n))
	if err != nil {
		panic(err)
	}
	return r
}

// Norm2 returns the 2-norm, the largest singular value. It is 0 for an empty
// matrix.
func (d *SVD) Norm2() float64 {
	if len(d.s) == 0 {
		return 0
	}
	return d.s[0]
}

// Condition returns the 2-norm condition number, the ratio of the largest to
// the smallest singular value. It is +Inf when the smallest singular value is
// exactly zero and 0 for an empty matrix.
func (d *SVD) Condition() float64 {
	if len(d.s) == 0 {
		return 0
	}
	last := d.s[len(d.s)-1]
	if last == 0 {
		return math.Inf(1)
	}
	return d.s[0] / last
}

// Tolerance returns max(m, n)·s[0]·ε, the threshold at or below which a
// singular value counts as zero.
func (d *SVD) Tolerance() float64 {
	return float64(max(d.m, d.n)) * d.Norm2() * Epsilon
}

// Rank returns the number of singular values strictly greater than
// Tolerance.
func (d *SVD) Rank() int {
	tol := d.Tolerance()
	r := 0
	for _, v := range d.s {
		if v > tol {
			r++
		}
	}
	return r
}

// PseudoInverse returns the n×m Moore-Penrose inverse V·S⁺·Uᴴ, where S⁺ holds
// the reciprocals of the singular values above Tolerance and zero elsewhere.
func (d *SVD) PseudoInverse() *cmat.Matrix {
	d.needFactors()
	tol := d.Tolerance()
	sp := cmat.New(d.n, d.m)
	for i, v := range d.s {
		if v > tol {
			sp.Set(i, i, complex(1/v, 0))
		}
	}
	return cmat.MustMul(cmat.MustMul(cmat.Adjoint(d.vh), sp), cmat.Adjoint(d.u))
}

func (d *SVD) needFactors() {
	if d.u == nil {
		panic("svd: decomposition computed singular values only")
	}
}

package svd

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/zephyrtronium/complexpr/cmat"
)

// maxSweeps caps the number of Jacobi sweeps. Convergence is quadratic, so
// well-scaled inputs settle in well under a dozen.
const maxSweeps = 64

// factors is the result of a one-sided Jacobi run on a matrix with at least
// as many rows as columns.
type factors struct {
	s     []float64
	u, vh *cmat.Matrix
}

// jacobi computes the SVD of an m×n matrix with m >= n using one-sided
// (Hestenes) Jacobi rotations: the columns of W = A·V are rotated pairwise
// until they are mutually orthogonal, at which point their norms are the
// singular values and their directions the left singular vectors.
func jacobi(a *cmat.Matrix, vectors bool) factors {
	m, n := a.Dims()
	// Work on columns as contiguous slices.
	w := make([][]complex128, n)
	for j := range w {
		w[j] = make([]complex128, m)
		for i := range w[j] {
			w[j][i] = a.At(i, j)
		}
	}
	var v [][]complex128
	if vectors {
		v = make([][]complex128, n)
		for j := range v {
			v[j] = make([]complex128, n)
			v[j][j] = 1
		}
	}

	tol := float64(m) * Epsilon
	for sweep := 0; sweep < maxSweeps; sweep++ {
		rotated := false
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				alpha := sqnorm(w[p])
				beta := sqnorm(w[q])
				gamma := dot(w[p], w[q])
				g := cmplx.Abs(gamma)
				if g == 0 || g <= tol*math.Sqrt(alpha)*math.Sqrt(beta) {
					continue
				}
				rotated = true
				// Rotate w[q] by the phase of gamma so that the pair has a
				// real inner product, then apply a real Jacobi rotation.
				phase := complex(real(gamma)/g, -imag(gamma)/g)
				zeta := (beta - alpha) / (2 * g)
				t := math.Copysign(1/(math.Abs(zeta)+math.Hypot(1, zeta)), zeta)
				c := 1 / math.Sqrt(1+t*t)
				s := c * t
				rotate(w[p], w[q], c, s, phase)
				if vectors {
					rotate(v[p], v[q], c, s, phase)
				}
			}
		}
		if !rotated {
			break
		}
	}

	sigma := make([]float64, n)
	for j := range w {
		sigma[j] = math.Sqrt(sqnorm(w[j]))
	}
	order := make([]int, n)
	for j := range order {
		order[j] = j
	}
	slices.SortStableFunc(order, func(i, j int) int {
		switch {
		case sigma[i] > sigma[j]:
			return -1
		case sigma[i] < sigma[j]:
			return 1
		}
		return 0
	})
	r := factors{s: make([]float64, n)}
	for k, j := range order {
		r.s[k] = sigma[j]
	}
	if !vectors {
		return r
	}

	// Left singular vectors: normalized columns of W for nonzero singular
	// values, completed to an orthonormal basis of C^m.
	basis := make([][]complex128, 0, m)
	for _, j := range order {
		if sigma[j] == 0 {
			break
		}
		u := make([]complex128, m)
		inv := complex(1/sigma[j], 0)
		for i, x := range w[j] {
			u[i] = x * inv
		}
		if orthonormalize(u, basis) {
			basis = append(basis, u)
		} else {
			break
		}
	}
	basis = complete(basis, m)
	r.u = cmat.New(m, m)
	for j, u := range basis {
		for i, x := range u {
			r.u.Set(i, j, x)
		}
	}

	vh := cmat.New(n, n)
	for k, j := range order {
		for i, x := range v[j] {
			// Vᴴ[k, i] = conj(V[i, k])
			vh.Set(k, i, cmplx.Conj(x))
		}
	}
	r.vh = vh
	return r
}

// rotate applies the unitary plane rotation
//
//	x' = c·x - s·(phase·y)
//	y' = s·x + c·(phase·y)
//
// to the column pair x, y in place.
func rotate(x, y []complex128, c, s float64, phase complex128) {
	cc, ss := complex(c, 0), complex(s, 0)
	for k := range x {
		xk, yk := x[k], y[k]*phase
		x[k] = cc*xk - ss*yk
		y[k] = ss*xk + cc*yk
	}
}

// dot returns xᴴ·y.
func dot(x, y []complex128) complex128 {
	var r complex128
	for k, a := range x {
		r += cmplx.Conj(a) * y[k]
	}
	return r
}

func sqnorm(x []complex128) float64 {
	var r float64
	for _, a := range x {
		r += real(a)*real(a) + imag(a)*imag(a)
	}
	return r
}

// orthonormalize makes u orthogonal to every vector in basis with two passes
// of modified Gram-Schmidt and normalizes it. It reports false if u is
// numerically dependent on basis.
func orthonormalize(u []complex128, basis [][]complex128) bool {
	before := math.Sqrt(sqnorm(u))
	if before == 0 {
		return false
	}
	for pass := 0; pass < 2; pass++ {
		for _, b := range basis {
			p := dot(b, u)
			for i := range u {
				u[i] -= p * b[i]
			}
		}
	}
	after := math.Sqrt(sqnorm(u))
	if after <= 0.5*before {
		return false
	}
	inv := complex(1/after, 0)
	for i := range u {
		u[i] *= inv
	}
	return true
}

// complete extends an orthonormal set of vectors in C^m to a basis, each time
// choosing the standard basis vector with the largest component outside the
// current span.
func complete(basis [][]complex128, m int) [][]complex128 {
	for len(basis) < m {
		var best []complex128
		bestNorm := -1.0
		for k := 0; k < m; k++ {
			e := make([]complex128, m)
			e[k] = 1
			for _, b := range basis {
				p := dot(b, e)
				for i := range e {
					e[i] -= p * b[i]
				}
			}
			if nrm := sqnorm(e); nrm > bestNorm {
				best, bestNorm = e, nrm
			}
		}
		if !orthonormalize(best, basis) {
			// best was already orthogonal to basis before the extra passes;
			// only the normalization is missing.
			inv := complex(1/math.Sqrt(sqnorm(best)), 0)
			for i := range best {
				best[i] *= inv
			}
		}
		basis = append(basis, best)
	}
	return basis
}

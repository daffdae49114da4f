package complexpr

import (
	"github.com/zephyrtronium/complexpr/cmat"
	"github.com/zephyrtronium/complexpr/svd"
)

// decomposed lifts a query on a singular value decomposition.
func decomposed(valuesOnly bool, f func(d *svd.SVD) Value) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		m, err := matrixOf(1, v)
		if err != nil {
			return Value{}, err
		}
		return f(svd.Decompose(m, valuesOnly)), nil
	}
}

func trace(v Value) (Value, error) {
	m, err := squareOf(1, v)
	if err != nil {
		return Value{}, err
	}
	z, err := cmat.Trace(m)
	if err != nil {
		return Value{}, kernelError(err)
	}
	return NewScalar(z), nil
}

func identity(v Value) (Value, error) {
	n, err := v.Int()
	if err != nil {
		return Value{}, argn(1, err)
	}
	if n < 0 {
		return Value{}, &DomainError{}
	}
	return NewMatrix(cmat.Identity(n)), nil
}

func matrixMap(f func(*cmat.Matrix) *cmat.Matrix) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		m, err := matrixOf(1, v)
		if err != nil {
			return Value{}, err
		}
		return NewMatrix(f(m)), nil
	}
}

func registerLinearAlgebra(r *Registry) {
	m := []Signature{sig(matrixArg("m"))}
	funcs := []struct {
		name, display, section, desc string
		sigs                         []Signature
		f                            func(Value) (Value, error)
		examples                     []Example
	}{
		{
			"svd", "Singular values", sectionDecompose,
			"Returns the singular values of a complex matrix as a column in descending order.",
			m,
			decomposed(true, func(d *svd.SVD) Value { return NewMatrix(cmat.RealColumn(d.Values())) }),
			[]Example{
				{"svd({3, 0; 0, 4})", "{4; 3}"},
				{"svd({1, 2; 2, 4})", "{5; 0}"},
			},
		},
		{
			"svdfull", "Singular value decomposition", sectionDecompose,
			"Returns the factors U, S and VH of the singular value decomposition of a complex matrix, side by side in one matrix.",
			m,
			decomposed(false, func(d *svd.SVD) Value { return NewMatrix(d.Combined()) }),
			[]Example{
				{"svdfull({2, 0; 0, 3})", "{0, 1, 3, 0, 0, 1; 1, 0, 0, 2, 1, 0}"},
			},
		},
		{
			"norm2", "2-norm", sectionMatrixFuncs,
			"Calculates the spectral norm of a complex matrix, its largest singular value.",
			m,
			decomposed(true, func(d *svd.SVD) Value { return NewReal(d.Norm2()) }),
			[]Example{
				{"norm2({3, 0; 0, 4})", "4"},
				{"norm2({1, 2; 2, 4})", "5"},
			},
		},
		{
			"cond", "Condition number", sectionMatrixFuncs,
			"Calculates the 2-norm condition number of a complex matrix. A singular matrix has infinite condition.",
			m,
			decomposed(true, func(d *svd.SVD) Value { return NewReal(d.Condition()) }),
			[]Example{
				{"cond({3, 0; 0, 4})", "1.33333333333333"},
				{"cond({1, 2; 2, 4})", "Infinity"},
			},
		},
		{
			"rank", "Rank", sectionMatrixFuncs,
			"Calculates the numerical rank of a complex matrix.",
			m,
			decomposed(true, func(d *svd.SVD) Value { return NewReal(float64(d.Rank())) }),
			[]Example{
				{"rank({1, 2; 2, 4})", "1"},
				{"rank({3, 0; 0, 4})", "2"},
			},
		},
		{
			"pinv", "Pseudoinverse", sectionMatrixFuncs,
			"Calculates the Moore-Penrose pseudoinverse of a complex matrix.",
			m,
			decomposed(false, func(d *svd.SVD) Value { return NewMatrix(d.PseudoInverse()) }),
			[]Example{
				{"pinv({2, 0; 0, 4})", "{0.5, 0; 0, 0.25}"},
			},
		},
		{
			"transpose", "Transpose", sectionMatrixFuncs,
			"Returns the transpose of a complex matrix.",
			m, matrixMap(cmat.Transpose),
			[]Example{{"transpose({1, 2; 3, 4})", "{1, 3; 2, 4}"}},
		},
		{
			"adjoint", "Conjugate transpose", sectionMatrixFuncs,
			"Returns the conjugate transpose of a complex matrix.",
			m, matrixMap(cmat.Adjoint),
			[]Example{{"adjoint({1, 2i; 3, 4})", "{1, 3; -2i, 4}"}},
		},
		{
			"trace", "Trace", sectionMatrixFuncs,
			"Calculates the sum of the diagonal elements of a square complex matrix.",
			m, trace,
			[]Example{{"trace({1, 2; 3, 4})", "5"}},
		},
		{
			"identity", "Identity matrix", sectionMatrixFuncs,
			"Returns the identity matrix of a given size.",
			[]Signature{sig(integerArg("n"))}, identity,
			[]Example{{"identity(2)", "{1, 0; 0, 1}"}},
		},
	}
	for _, f := range funcs {
		r.MustRegister(Descriptor{
			Name:        f.name,
			DisplayName: f.display,
			Category:    categoryLinAlg,
			Section:     f.section,
			Description: f.desc,
			Signatures:  f.sigs,
			Examples:    f.examples,
		}, Monadic(f.name, f.f))
	}
}

package complexpr

import "github.com/zephyrtronium/complexpr/cmat"

// Categories and sections of the built-in functions.
const (
	categoryConstants  = "Constants"
	categoryElementary = "Elementary"
	categoryStatistics = "Statistics"
	categoryLinAlg     = "Linear algebra"

	sectionAverages    = "Averages"
	sectionMoments     = "Moments"
	sectionCovariance  = "Covariance and correlation"
	sectionSumProduct  = "Sum and product"
	sectionHistogram   = "Histogram"
	sectionDecompose   = "Decompositions"
	sectionMatrixFuncs = "Matrix functions"
)

// sig creates a signature.
func sig(args ...Arg) Signature {
	return Signature{Args: args}
}

func complexArg(name string) Arg    { return Arg{Kind: ArgComplex, Name: name} }
func integerArg(name string) Arg    { return Arg{Kind: ArgInteger, Name: name} }
func matrixArg(name string) Arg     { return Arg{Kind: ArgComplexMatrix, Name: name} }
func realMatrixArg(name string) Arg { return Arg{Kind: ArgRealMatrix, Name: name} }
func realVectorArg(name string) Arg { return Arg{Kind: ArgRealVector, Name: name} }

// matrixOf returns the matrix view of an argument.
func matrixOf(k int, v Value) (*cmat.Matrix, error) {
	m, err := v.Matrix()
	return m, argn(k, err)
}

// squareOf returns the matrix view of an argument which must be square.
func squareOf(k int, v Value) (*cmat.Matrix, error) {
	m, err := matrixOf(k, v)
	if err != nil {
		return nil, err
	}
	if !m.IsSquare() {
		return nil, argn(k, v.mismatch("square matrix"))
	}
	return m, nil
}

// elementwise1 lifts a scalar function to apply to every element of a matrix.
func elementwise1(f func(complex128) (complex128, error)) func(Value) (Value, error) {
	return func(v Value) (Value, error) {
		if v.kind == KindScalar {
			z, err := f(v.z)
			if err != nil {
				return Value{}, err
			}
			return NewScalar(z), nil
		}
		m, err := matrixOf(1, v)
		if err != nil {
			return Value{}, err
		}
		r := cmat.New(m.Dims())
		for i := 0; i < m.Rows(); i++ {
			for j := 0; j < m.Cols(); j++ {
				z, err := f(m.At(i, j))
				if err != nil {
					return Value{}, err
				}
				r.Set(i, j, z)
			}
		}
		return NewMatrix(r), nil
	}
}

// total lifts a scalar function that is defined everywhere.
func total(f func(complex128) complex128) func(Value) (Value, error) {
	return elementwise1(func(z complex128) (complex128, error) { return f(z), nil })
}

package complexpr

import (
	"math/cmplx"
)

// Elementary functions apply to scalars, and to matrices element by element.

func ln(z complex128) (complex128, error) {
	if z == 0 {
		return 0, &DomainError{}
	}
	if imag(z) == 0 && real(z) > 0 {
		return complex(realLog(real(z)), imag(z)), nil
	}
	return cmplx.Log(z), nil
}

func exp(z complex128) complex128 {
	if imag(z) == 0 {
		return complex(realExp(real(z)), imag(z))
	}
	return cmplx.Exp(z)
}

func registerElementary(r *Registry) {
	z := []Signature{sig(complexArg("z"))}
	elem := []struct {
		name, display, desc string
		f                   func(Value) (Value, error)
		examples            []Example
	}{
		{
			"abs", "Absolute value", "Calculates the modulus of a complex number.",
			total(func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) }),
			[]Example{{"abs(3 - 4i)", "5"}, {"abs({-1, 2i})", "{1, 2}"}},
		},
		{
			"re", "Real part", "Returns the real part of a complex number.",
			total(func(z complex128) complex128 { return complex(real(z), 0) }),
			[]Example{{"re(3 - 4i)", "3"}, {"re({1 + 2i, -3i})", "{1, 0}"}},
		},
		{
			"im", "Imaginary part", "Returns the imaginary part of a complex number.",
			total(func(z complex128) complex128 { return complex(imag(z), 0) }),
			[]Example{{"im(3 - 4i)", "-4"}, {"im({1 + 2i, 5})", "{2, 0}"}},
		},
		{
			"conj", "Complex conjugate", "Returns the complex conjugate of a complex number.",
			total(cmplx.Conj),
			[]Example{{"conj(3 - 4i)", "3 + 4i"}, {"conj({i, 2})", "{-i, 2}"}},
		},
		{
			"arg", "Argument", "Calculates the phase angle of a complex number, in (-π, π].",
			total(func(z complex128) complex128 { return complex(cmplx.Phase(z), 0) }),
			[]Example{{"arg(-1)", "3.14159265358979"}, {"arg(1 + i)", "0.785398163397448"}},
		},
		{
			"sqrt", "Square root", "Calculates the principal square root of a complex number.",
			total(cmplx.Sqrt),
			[]Example{{"sqrt(-4)", "2i"}, {"sqrt(2i)", "1 + i"}},
		},
		{
			"exp", "Exponential", "Raises e to a complex power.",
			total(exp),
			[]Example{{"exp(2)", "7.38905609893065"}, {"exp(0)", "1"}},
		},
		{
			"ln", "Natural logarithm", "Calculates the principal natural logarithm of a nonzero complex number.",
			elementwise1(ln),
			[]Example{{"ln(-1)", "3.14159265358979i"}, {"ln({1, -1})", "{0, 3.14159265358979i}"}},
		},
	}
	for _, f := range elem {
		r.MustRegister(Descriptor{
			Name:        f.name,
			DisplayName: f.display,
			Category:    categoryElementary,
			Description: f.desc,
			Signatures:  z,
			Examples:    f.examples,
		}, Monadic(f.name, f.f))
	}
}

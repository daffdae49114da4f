package complexpr

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigconst computes a constant with f and rounds it to the nearest float64.
func bigconst(f func(out *big.Float) *big.Float) float64 {
	var z big.Float
	z.SetPrec(bigPrec)
	x, _ := f(&z).Float64()
	return x
}

func euler(out *big.Float) *big.Float {
	var one big.Float
	one.SetPrec(out.Prec()).SetInt64(1)
	return bigfloat.Exp(out, &one)
}

func registerConstants(r *Registry) {
	pi := NewReal(bigconst(bigfloat.Pi))
	e := NewReal(bigconst(euler))
	r.MustRegister(Descriptor{
		Name:        "pi",
		DisplayName: "π",
		Category:    categoryConstants,
		Description: "The ratio of a circle's circumference to its diameter.",
		Signatures:  []Signature{{}},
		Examples: []Example{
			{"pi", "3.14159265358979"},
			{"2pi", "6.28318530717959"},
		},
	}, Constant("pi", pi))
	r.MustRegister(Descriptor{
		Name:        "e",
		DisplayName: "Euler's number",
		Category:    categoryConstants,
		Description: "The base of the natural logarithm.",
		Signatures:  []Signature{{}},
		Examples: []Example{
			{"e", "2.71828182845905"},
			{"e^2", "7.38905609893065"},
		},
	}, Constant("e", e))
	r.MustRegister(Descriptor{
		Name:        "i",
		DisplayName: "Imaginary unit",
		Category:    categoryConstants,
		Description: "The square root of -1.",
		Signatures:  []Signature{{}},
		Examples: []Example{
			{"i", "i"},
			{"i^2", "-1"},
		},
	}, Constant("i", NewScalar(1i)))
}

package complexpr

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigPrec is the precision in bits of the intermediate results behind the
// correctly rounded real functions and constants.
const bigPrec = 256

// Outside (minExpArg, maxExpArg), exp rounds to zero or overflows.
const (
	minExpArg = -745.2
	maxExpArg = 709.7
)

func bigReal(x float64) *big.Float {
	return new(big.Float).SetPrec(bigPrec).SetFloat64(x)
}

func rounded(z *big.Float) float64 {
	x, _ := z.Float64()
	return x
}

// realExp returns e^x correctly rounded.
func realExp(x float64) float64 {
	if math.IsNaN(x) || x <= minExpArg || x >= maxExpArg {
		return math.Exp(x)
	}
	return rounded(bigfloat.Exp(new(big.Float).SetPrec(bigPrec), bigReal(x)))
}

// realLog returns ln x correctly rounded for positive finite x.
func realLog(x float64) float64 {
	if !(x > 0) || math.IsInf(x, 1) {
		return math.Log(x)
	}
	return rounded(bigfloat.Log(new(big.Float).SetPrec(bigPrec), bigReal(x)))
}

// realPow returns x^y, correctly rounded when x is positive and the result
// is a finite nonzero number.
func realPow(x, y float64) float64 {
	r := math.Pow(x, y)
	if !(x > 0) || math.IsInf(x, 1) || math.IsInf(y, 0) || math.IsNaN(y) {
		return r
	}
	if r == 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return r
	}
	return rounded(bigfloat.Pow(new(big.Float).SetPrec(bigPrec), bigReal(x), bigReal(y)))
}

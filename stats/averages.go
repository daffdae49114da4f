// Package stats implements descriptive statistics over samples of complex or
// real observations.
//
// Samples are plain slices. Sums are accumulated in index order, so results
// are deterministic for a given input. Statistics that are undefined for a
// sample return an error wrapping one of the package sentinels rather than
// NaN or an infinity.
package stats

import (
	"math"
	"slices"
)

// Sum returns the sum of x. The sum of an empty sample is 0.
func Sum(x []complex128) complex128 {
	var r complex128
	for _, v := range x {
		r += v
	}
	return r
}

// SumSquares returns the sum of the squares of x. The squares are complex
// squares, not squared moduli.
func SumSquares(x []complex128) complex128 {
	var r complex128
	for _, v := range x {
		r += v * v
	}
	return r
}

// Product returns the product of x. The product of an empty sample is 1.
func Product(x []complex128) complex128 {
	r := complex(1, 0)
	for _, v := range x {
		r *= v
	}
	return r
}

// Mean returns the arithmetic mean of x.
func Mean(x []complex128) (complex128, error) {
	if len(x) == 0 {
		return 0, statErrorf(opMean, ErrEmpty)
	}
	return div(Sum(x), len(x)), nil
}

// Median returns the middle observation of x in sorted order, or the mean of
// the two middle observations if len(x) is even.
func Median(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, statErrorf(opMedian, ErrEmpty)
	}
	s := slices.Clone(x)
	slices.Sort(s)
	k := len(s) / 2
	if len(s)%2 == 1 {
		return s[k], nil
	}
	return (s[k-1] + s[k]) / 2, nil
}

// GeometricMean returns exp(mean(ln x)). Observations must be non-negative;
// any zero observation makes the result zero.
func GeometricMean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, statErrorf(opGMean, ErrEmpty)
	}
	var s float64
	for _, v := range x {
		if v < 0 || math.IsNaN(v) {
			return 0, statErrorf(opGMean, ErrDomain)
		}
		s += math.Log(v)
	}
	return math.Exp(s / float64(len(x))), nil
}

// HarmonicMean returns n / Σ(1/x). Zero observations are outside its domain.
func HarmonicMean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, statErrorf(opHMean, ErrEmpty)
	}
	var s float64
	for _, v := range x {
		if v == 0 {
			return 0, statErrorf(opHMean, ErrDomain)
		}
		s += 1 / v
	}
	if s == 0 {
		return 0, statErrorf(opHMean, ErrDomain)
	}
	return float64(len(x)) / s, nil
}

// Mode returns the most frequent observation of x. When several observations
// are equally frequent, the one that occurs first in x wins.
func Mode(x []complex128) (complex128, error) {
	if len(x) == 0 {
		return 0, statErrorf(opMode, ErrEmpty)
	}
	counts := make(map[complex128]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	best, n := x[0], 0
	for _, v := range x {
		if c := counts[v]; c > n {
			best, n = v, c
		}
	}
	return best, nil
}

// div divides z by a count. Both parts are divided separately, so real
// inputs stay exactly real.
func div(z complex128, n int) complex128 {
	d := float64(n)
	return complex(real(z)/d, imag(z)/d)
}

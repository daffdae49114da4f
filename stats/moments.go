package stats

import (
	"math"
	"math/cmplx"
)

// deviations returns x - mean(x).
func deviations(x []complex128) []complex128 {
	mu := div(Sum(x), len(x))
	d := make([]complex128, len(x))
	for i, v := range x {
		d[i] = v - mu
	}
	return d
}

// sqabs is |z|².
func sqabs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// powi raises z to a non-negative integer power by repeated squaring.
func powi(z complex128, k int) complex128 {
	r := complex(1, 0)
	for p := z; k > 0; k >>= 1 {
		if k&1 != 0 {
			r *= p
		}
		p *= p
	}
	return r
}

// sumsqdev returns Σ|x - mean(x)|².
func sumsqdev(x []complex128) float64 {
	var s float64
	for _, d := range deviations(x) {
		s += sqabs(d)
	}
	return s
}

// PopVariance returns the population variance Σ|x-μ|²/n.
func PopVariance(x []complex128) (float64, error) {
	if len(x) == 0 {
		return 0, statErrorf(opVariance, ErrEmpty)
	}
	return sumsqdev(x) / float64(len(x)), nil
}

// SampleVariance returns the sample variance Σ|x-μ|²/(n-1). A sample of one
// observation has variance 0.
func SampleVariance(x []complex128) (float64, error) {
	switch len(x) {
	case 0:
		return 0, statErrorf(opVariance, ErrEmpty)
	case 1:
		return 0, nil
	}
	return sumsqdev(x) / float64(len(x)-1), nil
}

// PopStdDev returns the square root of PopVariance.
func PopStdDev(x []complex128) (float64, error) {
	v, err := PopVariance(x)
	return math.Sqrt(v), err
}

// SampleStdDev returns the square root of SampleVariance.
func SampleStdDev(x []complex128) (float64, error) {
	v, err := SampleVariance(x)
	return math.Sqrt(v), err
}

// central returns the complex central moments Σd^k/n for k = 2 and the given
// higher order.
func central(x []complex128, k int) (m2, mk complex128) {
	var s2, sk complex128
	for _, d := range deviations(x) {
		s2 += d * d
		sk += powi(d, k)
	}
	return div(s2, len(x)), div(sk, len(x))
}

// PopSkewness returns m3 / m2^(3/2), where mk are the complex central moments
// of x.
func PopSkewness(x []complex128) (complex128, error) {
	if len(x) == 0 {
		return 0, statErrorf(opSkewness, ErrEmpty)
	}
	m2, m3 := central(x, 3)
	if m2 == 0 {
		return 0, statErrorf(opSkewness, ErrDomain)
	}
	return m3 / (m2 * cmplx.Sqrt(m2)), nil
}

// SampleSkewness returns the adjusted Fisher-Pearson skewness
// n/((n-1)(n-2)) Σ(d/s)³, where s² = Σd²/(n-1). It needs at least three
// observations.
func SampleSkewness(x []complex128) (complex128, error) {
	n := len(x)
	if n < 3 {
		return 0, statErrorf(opSkewness, ErrTooFew)
	}
	d := deviations(x)
	var s2 complex128
	for _, v := range d {
		s2 += v * v
	}
	if s2 == 0 {
		return 0, statErrorf(opSkewness, ErrDomain)
	}
	s := cmplx.Sqrt(div(s2, n-1))
	var r complex128
	for _, v := range d {
		r += powi(v/s, 3)
	}
	f := float64(n) / (float64(n-1) * float64(n-2))
	return complex(f, 0) * r, nil
}

// PopKurtosis returns the excess kurtosis m4/m2² - 3.
func PopKurtosis(x []complex128) (complex128, error) {
	if len(x) == 0 {
		return 0, statErrorf(opKurtosis, ErrEmpty)
	}
	m2, m4 := central(x, 4)
	if m2 == 0 {
		return 0, statErrorf(opKurtosis, ErrDomain)
	}
	return m4/(m2*m2) - 3, nil
}

// SampleKurtosis returns the sample excess kurtosis
//
//	n(n+1)/((n-1)(n-2)(n-3)) Σd⁴/s⁴ - 3(n-1)²/((n-2)(n-3))
//
// where s² = Σd²/(n-1). It needs at least four observations.
func SampleKurtosis(x []complex128) (complex128, error) {
	n := len(x)
	if n < 4 {
		return 0, statErrorf(opKurtosis, ErrTooFew)
	}
	var s2, s4 complex128
	for _, d := range deviations(x) {
		d2 := d * d
		s2 += d2
		s4 += d2 * d2
	}
	if s2 == 0 {
		return 0, statErrorf(opKurtosis, ErrDomain)
	}
	v := div(s2, n-1)
	fn := float64(n)
	a := fn * (fn + 1) / ((fn - 1) * (fn - 2) * (fn - 3))
	b := 3 * (fn - 1) * (fn - 1) / ((fn - 2) * (fn - 3))
	return complex(a, 0)*s4/(v*v) - complex(b, 0), nil
}

// Moment returns the raw moment mean(x^k). Negative orders use reciprocals,
// so a zero observation is then outside the domain.
func Moment(x []complex128, k int) (complex128, error) {
	if len(x) == 0 {
		return 0, statErrorf(opMoment, ErrEmpty)
	}
	return moment(x, k)
}

// CentralMoment returns mean((x-μ)^k).
func CentralMoment(x []complex128, k int) (complex128, error) {
	if len(x) == 0 {
		return 0, statErrorf(opMoment, ErrEmpty)
	}
	return moment(deviations(x), k)
}

func moment(x []complex128, k int) (complex128, error) {
	var s complex128
	for _, v := range x {
		if k < 0 {
			if v == 0 {
				return 0, statErrorf(opMoment, ErrDomain)
			}
			s += powi(1/v, -k)
			continue
		}
		s += powi(v, k)
	}
	return div(s, len(x)), nil
}

// comoment returns Σ(x-μx)·conj(y-μy).
func comoment(x, y []complex128) complex128 {
	dx, dy := deviations(x), deviations(y)
	var s complex128
	for i, a := range dx {
		s += a * cmplx.Conj(dy[i])
	}
	return s
}

// PopCovariance returns Σ(x-μx)·conj(y-μy)/n.
func PopCovariance(x, y []complex128) (complex128, error) {
	if err := paired(opCov, x, y); err != nil {
		return 0, err
	}
	return div(comoment(x, y), len(x)), nil
}

// SampleCovariance returns Σ(x-μx)·conj(y-μy)/(n-1). Samples of one
// observation have covariance 0.
func SampleCovariance(x, y []complex128) (complex128, error) {
	if err := paired(opCov, x, y); err != nil {
		return 0, err
	}
	if len(x) == 1 {
		return 0, nil
	}
	return div(comoment(x, y), len(x)-1), nil
}

// Correlation returns the Pearson correlation coefficient
// cov(x, y)/√(var(x)·var(y)) using population statistics. Samples with zero
// variance have no correlation.
func Correlation(x, y []complex128) (complex128, error) {
	if err := paired(opCorr, x, y); err != nil {
		return 0, err
	}
	n := float64(len(x))
	v := (sumsqdev(x) / n) * (sumsqdev(y) / n)
	if v == 0 {
		return 0, statErrorf(opCorr, ErrDomain)
	}
	return div(comoment(x, y), len(x)) / complex(math.Sqrt(v), 0), nil
}

func paired(tag string, x, y []complex128) error {
	if len(x) != len(y) {
		return statErrorf(tag, ErrLengthMismatch)
	}
	if len(x) == 0 {
		return statErrorf(tag, ErrEmpty)
	}
	return nil
}

package cmat

import (
	"math"
	"strconv"
	"strings"
)

// Digits is the number of significant digits used when formatting numbers.
const Digits = 15

// FormatReal formats x with Digits significant digits in the shortest form,
// always with '.' as the decimal point. Negative zero formats as "0".
func FormatReal(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	return strconv.FormatFloat(x, 'G', Digits, 64)
}

// FormatScalar formats z as "a", "bi", "a + bi", or "a - bi" depending on
// which parts are nonzero.
func FormatScalar(z complex128) string {
	re, im := real(z), imag(z)
	if im == 0 {
		return FormatReal(re)
	}
	if re == 0 {
		return imagString(im)
	}
	if im < 0 {
		return FormatReal(re) + " - " + imagString(-im)
	}
	return FormatReal(re) + " + " + imagString(im)
}

func imagString(im float64) string {
	switch im {
	case 1:
		return "i"
	case -1:
		return "-i"
	}
	return FormatReal(im) + "i"
}

// String formats m as a matrix literal, e.g. "{1, 2; 3, 4}".
func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatScalar(m.data[i*m.cols+j]))
		}
	}
	b.WriteByte('}')
	return b.String()
}

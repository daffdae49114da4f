package cmat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/complexpr/cmat"
)

func mustRows(t *testing.T, rows ...[]complex128) *cmat.Matrix {
	t.Helper()
	m, err := cmat.FromRows(rows)
	require.NoError(t, err)
	return m
}

func TestNewZero(t *testing.T) {
	m := cmat.New(2, 3)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 6, m.Len())
	for _, v := range m.Values() {
		require.Zero(t, v)
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := cmat.FromRows([][]complex128{{1, 2}, {3}})
	require.ErrorIs(t, err, cmat.ErrBadShape)
}

func TestAtOutOfRangePanics(t *testing.T) {
	m := cmat.New(2, 2)
	require.Panics(t, func() { m.At(2, 0) })
	require.Panics(t, func() { m.Set(0, -1, 1) })
	require.Panics(t, func() { cmat.New(-1, 2) })
}

func TestAddSub(t *testing.T) {
	a := mustRows(t, []complex128{1, 2}, []complex128{3, 4i})
	b := mustRows(t, []complex128{4, 3}, []complex128{2, 1})
	s, err := cmat.Add(a, b)
	require.NoError(t, err)
	require.True(t, s.Equal(mustRows(t, []complex128{5, 5}, []complex128{5, 1 + 4i})))
	d, err := cmat.Sub(a, b)
	require.NoError(t, err)
	require.True(t, d.Equal(mustRows(t, []complex128{-3, -1}, []complex128{1, -1 + 4i})))
}

func TestDimensionMismatch(t *testing.T) {
	a := cmat.Identity(2)
	b := cmat.Identity(3)
	_, err := cmat.Add(a, b)
	require.ErrorIs(t, err, cmat.ErrDimensionMismatch)
	_, err = cmat.Sub(a, b)
	require.ErrorIs(t, err, cmat.ErrDimensionMismatch)
	_, err = cmat.Mul(cmat.New(2, 3), cmat.New(2, 3))
	require.ErrorIs(t, err, cmat.ErrDimensionMismatch)
	_, err = cmat.HConcat(a, b)
	require.ErrorIs(t, err, cmat.ErrDimensionMismatch)
}

func TestMul(t *testing.T) {
	a := mustRows(t, []complex128{1, 2, 3}, []complex128{4, 5, 6})
	b := mustRows(t, []complex128{1i}, []complex128{0}, []complex128{-1})
	p, err := cmat.Mul(a, b)
	require.NoError(t, err)
	require.True(t, p.Equal(mustRows(t, []complex128{-3 + 1i}, []complex128{-6 + 4i})))
}

func TestPad(t *testing.T) {
	p := cmat.Pad(cmat.Identity(2), 3, 2)
	require.Equal(t, "{1, 0; 0, 1; 0, 0}", p.String())
	require.Panics(t, func() { cmat.Pad(cmat.Identity(2), 1, 2) })
}

func TestMulZeroTimesInf(t *testing.T) {
	a := mustRows(t, []complex128{0, 1})
	b := mustRows(t, []complex128{complex(math.Inf(1), 0)}, []complex128{1})
	p, err := cmat.Mul(a, b)
	require.NoError(t, err)
	require.True(t, math.IsNaN(real(p.At(0, 0))), "got %v", p.At(0, 0))
}

func TestPow(t *testing.T) {
	a := mustRows(t, []complex128{1, 1}, []complex128{1, 0})
	p, err := cmat.Pow(a, 10)
	require.NoError(t, err)
	// Fibonacci numbers.
	require.True(t, p.Equal(mustRows(t, []complex128{89, 55}, []complex128{55, 34})))
	p, err = cmat.Pow(a, 0)
	require.NoError(t, err)
	require.True(t, p.Equal(cmat.Identity(2)))
	_, err = cmat.Pow(cmat.New(1, 2), 2)
	require.ErrorIs(t, err, cmat.ErrNonSquare)
}

func TestAdjointTranspose(t *testing.T) {
	a := mustRows(t, []complex128{1 + 1i, 2}, []complex128{3, 4 - 2i}, []complex128{5i, 6})
	at := cmat.Transpose(a)
	ah := cmat.Adjoint(a)
	require.Equal(t, 2, at.Rows())
	require.Equal(t, 3, at.Cols())
	require.Equal(t, complex128(5i), at.At(0, 2))
	require.Equal(t, complex128(-5i), ah.At(0, 2))
	require.Equal(t, complex128(4+2i), ah.At(1, 1))
	require.True(t, cmat.Adjoint(ah).Equal(a))
}

func TestTrace(t *testing.T) {
	tr, err := cmat.Trace(mustRows(t, []complex128{1, 9}, []complex128{9, 2i}))
	require.NoError(t, err)
	require.Equal(t, complex128(1+2i), tr)
	_, err = cmat.Trace(cmat.New(2, 1))
	require.ErrorIs(t, err, cmat.ErrNonSquare)
}

func TestHConcat(t *testing.T) {
	c, err := cmat.HConcat(cmat.Identity(2), cmat.Column([]complex128{7, 8}))
	require.NoError(t, err)
	require.Equal(t, "{1, 0, 7; 0, 1, 8}", c.String())
}

func TestFormatScalar(t *testing.T) {
	cases := []struct {
		z    complex128
		want string
	}{
		{0, "0"},
		{complex(math.Copysign(0, -1), 0), "0"},
		{2, "2"},
		{-11.6, "-11.6"},
		{2i, "2i"},
		{-2i, "-2i"},
		{1i, "i"},
		{-1i, "-i"},
		{-1.84 + 0.4i, "-1.84 + 0.4i"},
		{3 - 6i, "3 - 6i"},
		{1 / 3.0, "0.333333333333333"},
		{2.0 / 3.0, "0.666666666666667"},
		{1e-5, "1E-05"},
		{1e20, "1E+20"},
		{complex(math.Inf(1), 0), "Infinity"},
		{complex(math.NaN(), 0), "NaN"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, cmat.FormatScalar(c.z), "formatting %v", c.z)
	}
}

func TestMatrixString(t *testing.T) {
	require.Equal(t, "{0.2; 0.4; 0.4}", cmat.RealColumn([]float64{0.2, 0.4, 0.4}).String())
	require.Equal(t, "{1, 2; 3, 4i}", mustRows(t, []complex128{1, 2}, []complex128{3, 4i}).String())
	require.Equal(t, "{}", cmat.New(0, 0).String())
}

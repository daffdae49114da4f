// Package cmat implements dense complex matrices, the matrix half of the
// calculator's value model.
//
// Matrices are stored row-major. The backing slice of an m×n matrix always
// holds exactly m*n elements. Indexing outside the matrix is a programming
// error and panics; shape mismatches between operands are reported as errors
// wrapping ErrDimensionMismatch.
package cmat

import "strconv"

// Matrix is a dense rectangular matrix of complex128 elements.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// New creates a zero matrix with the given shape. Panics if either dimension
// is negative.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic("cmat: negative dimension " + strconv.Itoa(rows) + "x" + strconv.Itoa(cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// FromRows creates a matrix from a list of rows. Every row must have the same
// length.
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	c := len(rows[0])
	m := New(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opFromRows, ErrBadShape)
		}
		copy(m.data[i*c:], row)
	}
	return m, nil
}

// Column creates an n×1 matrix holding v.
func Column(v []complex128) *Matrix {
	m := New(len(v), 1)
	copy(m.data, v)
	return m
}

// RealColumn creates an n×1 matrix holding the real values v.
func RealColumn(v []float64) *Matrix {
	m := New(len(v), 1)
	for i, x := range v {
		m.data[i] = complex(x, 0)
	}
	return m
}

// Identity creates the n×n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// Len returns the number of elements.
func (m *Matrix) Len() int { return len(m.data) }

// IsSquare reports whether the matrix has as many rows as columns.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// IsVector reports whether the matrix has a single row or a single column.
func (m *Matrix) IsVector() bool { return m.rows == 1 || m.cols == 1 }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) complex128 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v complex128) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("cmat: index [" + strconv.Itoa(i) + "," + strconv.Itoa(j) + "] out of range for " + m.shape())
	}
}

func (m *Matrix) shape() string {
	return strconv.Itoa(m.rows) + "x" + strconv.Itoa(m.cols)
}

// Values returns a copy of the elements in row-major order.
func (m *Matrix) Values() []complex128 {
	return append([]complex128(nil), m.data...)
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: m.Values()}
}

// Equal reports whether m and o have the same shape and identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for k, v := range m.data {
		if v != o.data[k] {
			return false
		}
	}
	return true
}

// Pad returns a rows×cols matrix with m in its top left corner and zeros
// elsewhere. m must fit.
func Pad(m *Matrix, rows, cols int) *Matrix {
	if rows < m.rows || cols < m.cols {
		panic("cmat: cannot pad " + m.shape() + " to " + strconv.Itoa(rows) + "x" + strconv.Itoa(cols))
	}
	r := New(rows, cols)
	for i := 0; i < m.rows; i++ {
		copy(r.data[i*cols:i*cols+m.cols], m.data[i*m.cols:(i+1)*m.cols])
	}
	return r
}

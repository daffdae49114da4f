package cmat

// Add returns a + b. The operands must have identical shapes.
func Add(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, matrixErrorf(opAdd, ErrDimensionMismatch, a, b)
	}
	r := New(a.rows, a.cols)
	for k := range r.data {
		r.data[k] = a.data[k] + b.data[k]
	}
	return r, nil
}

// Sub returns a - b. The operands must have identical shapes.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, matrixErrorf(opSub, ErrDimensionMismatch, a, b)
	}
	r := New(a.rows, a.cols)
	for k := range r.data {
		r.data[k] = a.data[k] - b.data[k]
	}
	return r, nil
}

// Mul returns the matrix product a·b. a.Cols must equal b.Rows.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch, a, b)
	}
	r := New(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		arow := a.data[i*a.cols : (i+1)*a.cols]
		rrow := r.data[i*r.cols : (i+1)*r.cols]
		for k, aik := range arow {
			brow := b.data[k*b.cols : (k+1)*b.cols]
			for j, bkj := range brow {
				rrow[j] += aik * bkj
			}
		}
	}
	return r, nil
}

// MustMul is like Mul but panics on mismatched shapes. It is meant for
// products whose shapes are correct by construction.
func MustMul(a, b *Matrix) *Matrix {
	r, err := Mul(a, b)
	if err != nil {
		panic(err)
	}
	return r
}

// Scale returns z·m.
func Scale(z complex128, m *Matrix) *Matrix {
	r := New(m.rows, m.cols)
	for k, v := range m.data {
		r.data[k] = z * v
	}
	return r
}

// Map returns a matrix with f applied to every element of m.
func Map(m *Matrix, f func(complex128) complex128) *Matrix {
	r := New(m.rows, m.cols)
	for k, v := range m.data {
		r.data[k] = f(v)
	}
	return r
}

// Transpose returns mᵀ.
func Transpose(m *Matrix) *Matrix {
	r := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			r.data[j*r.cols+i] = m.data[i*m.cols+j]
		}
	}
	return r
}

// Adjoint returns the conjugate transpose mᴴ.
func Adjoint(m *Matrix) *Matrix {
	r := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			v := m.data[i*m.cols+j]
			r.data[j*r.cols+i] = complex(real(v), -imag(v))
		}
	}
	return r
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(m *Matrix) (complex128, error) {
	if !m.IsSquare() {
		return 0, matrixErrorf(opTrace, ErrNonSquare, m)
	}
	var s complex128
	for i := 0; i < m.rows; i++ {
		s += m.data[i*m.cols+i]
	}
	return s, nil
}

// Pow raises a square matrix to a non-negative integer power by repeated
// squaring. m^0 is the identity.
func Pow(m *Matrix, k int) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, matrixErrorf(opPow, ErrNonSquare, m)
	}
	if k < 0 {
		panic("cmat: negative matrix power")
	}
	r := Identity(m.rows)
	b := m
	for k > 0 {
		if k&1 != 0 {
			r = MustMul(r, b)
		}
		k >>= 1
		if k > 0 {
			b = MustMul(b, b)
		}
	}
	return r, nil
}

// HConcat places matrices side by side. All operands must have the same
// number of rows.
func HConcat(ms ...*Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return New(0, 0), nil
	}
	rows, cols := ms[0].rows, 0
	for _, m := range ms {
		if m.rows != rows {
			return nil, matrixErrorf(opHConcat, ErrDimensionMismatch, ms[0], m)
		}
		cols += m.cols
	}
	r := New(rows, cols)
	off := 0
	for _, m := range ms {
		for i := 0; i < rows; i++ {
			copy(r.data[i*cols+off:i*cols+off+m.cols], m.data[i*m.cols:(i+1)*m.cols])
		}
		off += m.cols
	}
	return r, nil
}

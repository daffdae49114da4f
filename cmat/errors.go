package cmat

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates operands with incompatible shapes, e.g.
	// Add of differently shaped matrices or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("cmat: dimension mismatch")

	// ErrNonSquare indicates that a square matrix was required.
	ErrNonSquare = errors.New("cmat: matrix is not square")

	// ErrBadShape indicates rows of unequal length given to a constructor.
	ErrBadShape = errors.New("cmat: ragged rows")
)

// Operation tags for error wrapping.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opMul      = "Mul"
	opPow      = "Pow"
	opHConcat  = "HConcat"
	opFromRows = "FromRows"
	opTrace    = "Trace"
)

// matrixErrorf wraps err with an operation tag and both operand shapes.
func matrixErrorf(tag string, err error, shapes ...*Matrix) error {
	switch len(shapes) {
	case 1:
		return fmt.Errorf("%s %s: %w", tag, shapes[0].shape(), err)
	case 2:
		return fmt.Errorf("%s %s by %s: %w", tag, shapes[0].shape(), shapes[1].shape(), err)
	default:
		return fmt.Errorf("%s: %w", tag, err)
	}
}

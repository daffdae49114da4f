package complexpr

import (
	"errors"
	"strconv"

	"github.com/zephyrtronium/complexpr/cmat"
	"github.com/zephyrtronium/complexpr/stats"
)

var (
	// ErrSyntax matches every error caused by malformed expression text.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownIdentifier indicates a call to a name that is not registered.
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrArityMismatch indicates a call to a registered name with a number of
	// arguments that no signature of the name accepts.
	ErrArityMismatch = errors.New("wrong number of arguments")
	// ErrTypeMismatch indicates an argument of a kind the receiving function
	// does not accept.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrDimensionMismatch indicates matrix operands with incompatible shapes.
	ErrDimensionMismatch = cmat.ErrDimensionMismatch
	// ErrDomain indicates an argument outside the domain of a function,
	// including division by zero.
	ErrDomain = errors.New("argument outside domain")
	// ErrAbsentArgument indicates use of an optional argument that was not
	// supplied. Seeing it always means a function or builder is defective.
	ErrAbsentArgument = errors.New("use of absent argument")
)

// TypeError is an error indicating an argument of the wrong kind. It unwraps
// to ErrTypeMismatch.
type TypeError struct {
	// Func is the name of the function or operator that rejected the value.
	Func string
	// Arg is the 1-based index of the argument, or 0 if unknown.
	Arg int
	// Want describes the accepted kinds.
	Want string
	// Got describes the actual value, e.g. "2x3 matrix".
	Got string
}

func (err *TypeError) Error() string {
	r := "want " + err.Want + ", got " + err.Got
	if err.Arg > 0 {
		r = "argument " + strconv.Itoa(err.Arg) + ": " + r
	}
	if err.Func != "" {
		r = err.Func + ": " + r
	}
	return r
}

func (err *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// DimensionError is an error indicating operands with incompatible shapes. It
// matches ErrDimensionMismatch.
type DimensionError struct {
	// Func is the name of the function or operator.
	Func string
	// Err is the underlying error, which describes the shapes.
	Err error
}

func (err *DimensionError) Error() string {
	if err.Func == "" {
		return err.Err.Error()
	}
	return err.Func + ": " + err.Err.Error()
}

func (err *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

func (err *DimensionError) Unwrap() error {
	return err.Err
}

// DomainError is an error indicating an argument outside a function's domain.
// It matches ErrDomain.
type DomainError struct {
	// Func is the name of the function or operator.
	Func string
	// Err is the underlying error, if any.
	Err error
}

func (err *DomainError) Error() string {
	r := "argument outside domain"
	if err.Err != nil {
		r = err.Err.Error()
	}
	if err.Func != "" {
		r = err.Func + ": " + r
	}
	return r
}

func (err *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// annotate fills in the function name on evaluation errors that lack one.
func annotate(name string, err error) error {
	if err == nil {
		return nil
	}
	var (
		te *TypeError
		de *DimensionError
		dm *DomainError
	)
	switch {
	case errors.As(err, &te):
		if te.Func == "" {
			te.Func = name
		}
	case errors.As(err, &de):
		if de.Func == "" {
			de.Func = name
		}
	case errors.As(err, &dm):
		if dm.Func == "" {
			dm.Func = name
		}
	}
	return err
}

// argn records the 1-based argument index on a type error.
func argn(k int, err error) error {
	var te *TypeError
	if errors.As(err, &te) && te.Arg == 0 {
		te.Arg = k
	}
	return err
}

// kernelError translates an error from cmat or stats into this package's
// error kinds.
func kernelError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cmat.ErrDimensionMismatch), errors.Is(err, stats.ErrLengthMismatch):
		return &DimensionError{Err: err}
	case errors.Is(err, stats.ErrEmpty), errors.Is(err, stats.ErrTooFew),
		errors.Is(err, stats.ErrDomain), errors.Is(err, stats.ErrBuckets):
		return &DomainError{Err: err}
	}
	return err
}

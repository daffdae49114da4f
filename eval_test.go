package complexpr_test

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/complexpr"
	"github.com/zephyrtronium/complexpr/cmat"
)

func TestEval(t *testing.T) {
	type vc struct {
		vars complexpr.Vars
		r    string
	}
	num := func(x float64) complexpr.Value { return complexpr.NewReal(x) }
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{nil, "1"}}},
		{"ident", "x", []vc{
			{complexpr.Vars{"x": num(4)}, "4"},
			{complexpr.Vars{"x": num(5)}, "5"},
			{complexpr.Vars{"x": complexpr.NewScalar(1 - 2i)}, "1 - 2i"},
		}},
		{"plus", "+x", []vc{
			{complexpr.Vars{"x": num(4)}, "4"},
			{complexpr.Vars{"x": num(-5)}, "-5"},
		}},
		{"neg", "-x", []vc{
			{complexpr.Vars{"x": num(4)}, "-4"},
			{complexpr.Vars{"x": complexpr.NewScalar(3i)}, "-3i"},
		}},
		{"add", "4+5+6", []vc{{nil, "15"}}},
		{"sub", "4-5-6", []vc{{nil, "-7"}}},
		{"mul", "4*5*6", []vc{{nil, "120"}}},
		{"div", "4/5/6", []vc{{nil, "0.133333333333333"}}},
		{"pow", "4^3^2", []vc{{nil, "262144"}}},
		{"powneg", "2^-1", []vc{{nil, "0.5"}}},
		{"imag", "2i", []vc{{nil, "2i"}}},
		{"isquared", "i^2", []vc{{nil, "-1"}}},
		{"complexmul", "(1+2i)(3-i)", []vc{{nil, "5 + 5i"}}},
		{"complexdiv", "(5 + 5i)/(1 + 2i)", []vc{{nil, "3 - i"}}},
		{"terms", "2(3+4)", []vc{{nil, "14"}}},
		{"termvars", "x y", []vc{{complexpr.Vars{"x": num(2), "y": num(3)}, "6"}}},
		{"pi", "pi", []vc{{nil, "3.14159265358979"}}},
		{"e", "e", []vc{{nil, "2.71828182845905"}}},
		{"exp", "exp(1)", []vc{{nil, "2.71828182845905"}}},
		{"sqrtneg", "sqrt(-4)", []vc{{nil, "2i"}}},
		{"exponent", "1.5E-3", []vc{{nil, "0.0015"}}},
		{"inf1", "inf", []vc{{nil, "Infinity"}}},
		{"inf2", "-Inf", []vc{{nil, "-Infinity"}}},
		{"inf3", "∞", []vc{{nil, "Infinity"}}},
		{"overflow", "1e400", []vc{{nil, "Infinity"}}},

		{"matrix", "{1, 2; 3, 4}", []vc{{nil, "{1, 2; 3, 4}"}}},
		{"matrix-empty", "{}", []vc{{nil, "{}"}}},
		{"matrix-vars", "{x, 2x}", []vc{
			{complexpr.Vars{"x": num(1)}, "{1, 2}"},
			{complexpr.Vars{"x": complexpr.NewScalar(1i)}, "{i, 2i}"},
		}},
		{"matrix-add", "{1, 2} + {3, 4}", []vc{{nil, "{4, 6}"}}},
		{"matrix-sub", "{1, 2} - {3, 5}", []vc{{nil, "{-2, -3}"}}},
		{"matrix-neg", "-{1, -2}", []vc{{nil, "{-1, 2}"}}},
		{"matrix-scale", "2{1, 2}", []vc{{nil, "{2, 4}"}}},
		{"matrix-scale-right", "{1, 2i} * 2", []vc{{nil, "{2, 4i}"}}},
		{"matrix-div", "{1, 2}/2", []vc{{nil, "{0.5, 1}"}}},
		{"matrix-mul", "{1, 2; 3, 4} * {1; 1}", []vc{{nil, "{3; 7}"}}},
		{"matrix-terms", "{1, 2; 3, 4}{1; 1}", []vc{{nil, "{3; 7}"}}},
		{"matrix-pow", "{1, 2; 3, 4}^2", []vc{{nil, "{7, 10; 15, 22}"}}},
		{"matrix-pow0", "{1, 2; 3, 4}^0", []vc{{nil, "{1, 0; 0, 1}"}}},
		{"onebyone", "{3} + 1", []vc{{nil, "{4}"}}},
		{"onebyone-scalar", "{3}^2", []vc{{nil, "9"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := complexpr.BuildTree(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				r, err := a.Eval(v.vars)
				if err != nil {
					t.Errorf("evaluation error with %v: %v", v.vars, err)
					continue
				}
				if got := r.String(); got != v.r {
					t.Errorf("wrong result with %v: want %s, got %s", v.vars, v.r, got)
				}
			}
		})
	}
}

func TestEvalMatrixLiteral(t *testing.T) {
	v, err := complexpr.EvalString("{1,2;3,4}", nil)
	require.NoError(t, err)
	require.Equal(t, complexpr.KindMatrix, v.Kind())
	m, err := v.Matrix()
	require.NoError(t, err)
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	assert.Equal(t, complex128(2), m.At(0, 1))
	assert.Equal(t, complex128(3), m.At(1, 0))
}

func TestEvalImplicit(t *testing.T) {
	v, err := complexpr.EvalString("2(3+4)", nil)
	require.NoError(t, err)
	z, err := v.Scalar()
	require.NoError(t, err)
	assert.Equal(t, complex128(14), z)

	v, err = complexpr.EvalString("2i", nil)
	require.NoError(t, err)
	require.Equal(t, complexpr.KindScalar, v.Kind())
	z, _ = v.Scalar()
	assert.Equal(t, complex(0, 2), z)
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars complexpr.Vars
		miss string
	}{
		{"none", "x", nil, "x"},
		{"other", "x", complexpr.Vars{"y": complexpr.NewReal(1)}, "x"},
		{"second", "x + y", complexpr.Vars{"x": complexpr.NewReal(1)}, "y"},
		{"absent", "x", complexpr.Vars{"x": {}}, "x"},
		{"arg", "abs(z)", nil, "z"},
		{"literal", "{1, w}", nil, "w"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := complexpr.EvalString(c.src, c.vars)
			var ne *complexpr.NameError
			if !errors.As(err, &ne) {
				t.Fatalf("want *NameError, got %#v", err)
			}
			if ne.Name != c.miss {
				t.Errorf("wrong missing name: want %q, got %q", c.miss, ne.Name)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		fn   string
	}{
		{"dims-add", "{1, 2; 3, 4} + {1, 2, 3; 4, 5, 6; 7, 8, 9}", complexpr.ErrDimensionMismatch, "+"},
		{"dims-sub", "{1, 2} - {1; 2}", complexpr.ErrDimensionMismatch, "-"},
		{"dims-mul", "{1, 2} * {1, 2}", complexpr.ErrDimensionMismatch, "*"},
		{"dims-pcov", "pcov({1; 2}, {1; 2; 3})", complexpr.ErrDimensionMismatch, "pcov"},
		{"divzero", "1/0", complexpr.ErrDomain, "/"},
		{"powzero", "0^-1", complexpr.ErrDomain, "^"},
		{"lnzero", "ln(0)", complexpr.ErrDomain, "ln"},
		{"lnzero-matrix", "ln({1, 0})", complexpr.ErrDomain, "ln"},
		{"empty-mean", "mean({})", complexpr.ErrDomain, "mean"},
		{"gmean-negative", "gmean({1; -1})", complexpr.ErrDomain, "gmean"},
		{"hist-buckets", "hist({1; 2}, 0)", complexpr.ErrDomain, "hist"},
		{"hist-edges", "hist({1; 2}, {3; 1})", complexpr.ErrDomain, "hist"},
		{"identity-negative", "identity(-1)", complexpr.ErrDomain, "identity"},
		{"pow-nonsquare", "{1, 2}^2", complexpr.ErrTypeMismatch, "^"},
		{"pow-fraction", "{1, 2; 3, 4}^0.5", complexpr.ErrTypeMismatch, "^"},
		{"pow-matrixexp", "2^{1, 2}", complexpr.ErrTypeMismatch, "^"},
		{"div-matrix", "{1, 2}/{1, 2}", complexpr.ErrTypeMismatch, "/"},
		{"nested-literal", "{{1, 2}}", complexpr.ErrTypeMismatch, "{}"},
		{"median-complex", "median({1, 2i})", complexpr.ErrTypeMismatch, "median"},
		{"moment-order", "moment({1; 2}, 1.5)", complexpr.ErrTypeMismatch, "moment"},
		{"identity-fraction", "identity(1.5)", complexpr.ErrTypeMismatch, "identity"},
		{"trace-nonsquare", "trace({1, 2})", complexpr.ErrTypeMismatch, "trace"},
		{"hist-edges-matrix", "hist({1; 2}, {1, 2; 3, 4})", complexpr.ErrTypeMismatch, "hist"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := complexpr.BuildTree(c.src)
			require.NoError(t, err)
			_, err = a.Eval(nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, c.err)
			assert.True(t, strings.HasPrefix(err.Error(), c.fn+": "), "error %q does not name %s", err, c.fn)
		})
	}
}

func TestTypeErrorArg(t *testing.T) {
	_, err := complexpr.EvalString("hist({1; 2}, {1; 2i})", nil)
	var te *complexpr.TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "hist", te.Func)
	assert.Equal(t, 2, te.Arg)
	assert.Equal(t, "real vector", te.Want)
}

func TestBuildErrors(t *testing.T) {
	_, err := complexpr.BuildTree("abs(1, 2)")
	assert.ErrorIs(t, err, complexpr.ErrArityMismatch)
	_, err = complexpr.BuildTree("nosuch(1)")
	assert.ErrorIs(t, err, complexpr.ErrUnknownIdentifier)
	_, err = complexpr.BuildTree("1 +")
	assert.ErrorIs(t, err, complexpr.ErrSyntax)
	var ie complexpr.InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 4, ie.Pos())
}

func TestNullPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("want error panic, got %#v", r)
		}
		if !errors.Is(err, complexpr.ErrAbsentArgument) {
			t.Errorf("panic %v is not ErrAbsentArgument", err)
		}
	}()
	complexpr.Null().Eval(nil)
}

func TestNullArgument(t *testing.T) {
	var got []bool
	f := func(l, r complexpr.Value) (complexpr.Value, error) {
		got = append(got, l.Present(), r.Present())
		return l, nil
	}
	n := complexpr.NewBinary("f", f, complexpr.NewConst(complexpr.NewReal(1)), complexpr.Null())
	v, err := n.Eval(nil)
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())
	assert.Equal(t, []bool{true, false}, got)
	assert.Equal(t, "(f[(1)])", n.String())
}

func TestFindVariable(t *testing.T) {
	a, err := complexpr.BuildTree("x + y*x + abs(z)")
	require.NoError(t, err)
	root := a.Root()
	x := root.FindVariable("x")
	require.NotNil(t, x)
	// Pre-order finds the leftmost x first.
	assert.Same(t, x, root.Children()[0].Children()[0])
	assert.Nil(t, root.FindVariable("w"))

	var names []string
	for _, n := range root.FindAllVariables() {
		assert.Equal(t, complexpr.NodeVar, n.Kind())
		names = append(names, n.Name())
	}
	if diff := cmp.Diff([]string{"x", "y", "x", "z"}, names); diff != "" {
		t.Errorf("wrong variables (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y", "z"}, a.Vars()); diff != "" {
		t.Errorf("wrong expression variables (-want +got):\n%s", diff)
	}
}

func TestReplaceChild(t *testing.T) {
	a, err := complexpr.BuildTree("x + y")
	require.NoError(t, err)
	root := a.Root()
	x := root.FindVariable("x")
	require.True(t, root.ReplaceChild(x, complexpr.NewConst(complexpr.NewReal(10))))
	assert.False(t, root.ReplaceChild(x, complexpr.NewVar("w")))
	v, err := a.Eval(complexpr.Vars{"y": complexpr.NewReal(1)})
	require.NoError(t, err)
	assert.Equal(t, "11", v.String())
	assert.Nil(t, root.FindVariable("x"))
	assert.Equal(t, []string{"y"}, a.Vars())

	require.True(t, root.ReplaceChild(root.FindVariable("y"), complexpr.NewVar("w")))
	assert.Equal(t, []string{"w"}, a.Vars())
}

func TestEvalVars(t *testing.T) {
	vars, err := complexpr.EvalVars(map[string]string{
		"a": "2",
		"b": "a^2",
		"c": "{b, a}",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", vars["a"].String())
	assert.Equal(t, "4", vars["b"].String())
	assert.Equal(t, "{4, 2}", vars["c"].String())

	_, err = complexpr.EvalVars(map[string]string{"a": "b", "b": "1"})
	var ne *complexpr.NameError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "b", ne.Name)
	assert.Contains(t, err.Error(), "defining a")
}

func TestLinearAlgebraMagnitudes(t *testing.T) {
	cases := []struct{ src, want string }{
		{"rank({1e-170})", "1"},
		{"norm2({1e-170})", "1E-170"},
		{"norm2({1e160})", "1E+160"},
		{"rank({1e160, 0; 0, 1e160})", "2"},
		{"svd({1e200, 0; 0, 3e200})", "{3E+200; 1E+200}"},
	}
	for _, c := range cases {
		v, err := complexpr.EvalString(c.src, nil)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.want, v.String(), c.src)
	}
}

// closeTo reports whether a and b have the same shape and elements that
// agree to within tol relative to their size.
func closeTo(a, b *cmat.Matrix, tol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	bv := b.Values()
	for k, x := range a.Values() {
		if cmplx.Abs(x-bv[k]) > tol*max(1, cmplx.Abs(x), cmplx.Abs(bv[k])) {
			return false
		}
	}
	return true
}

func TestEvalConcurrent(t *testing.T) {
	a, err := complexpr.BuildTree("svd({x, 1; 1, x}) + mean({x; 2x}) {1; 1}")
	require.NoError(t, err)
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i + 2)
			v, err := a.Eval(complexpr.Vars{"x": complexpr.NewReal(x)})
			if err != nil {
				errs[i] = err
				return
			}
			// The singular values of {x, 1; 1, x} are x+1 and x-1.
			want := cmat.RealColumn([]float64{x + 1 + 1.5*x, x - 1 + 1.5*x})
			m, _ := v.Matrix()
			if !closeTo(m, want, 1e-12) {
				errs[i] = fmt.Errorf("x=%g: want %v, got %v", x, want, m)
			}
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func BenchmarkEval(b *testing.B) {
	vars := complexpr.Vars{
		"x": complexpr.NewReal(2),
		"y": complexpr.NewScalar(3i),
		"z": complexpr.NewReal(4),
	}
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := complexpr.BuildTree("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		a, err := complexpr.BuildTree("x+y+z")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(vars)
		}
	})
	b.Run("matrix", func(b *testing.B) {
		b.ReportAllocs()
		a, err := complexpr.BuildTree("{x, y; z, 1}^3")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(vars)
		}
	})
}

func Example() {
	var (
		fx   = "x^3/2 - x"
		dfx  = "3 x^2/2 - 1"
		ddfx = "3 x"
	)
	a, _ := complexpr.BuildTree(fx)
	b, _ := complexpr.BuildTree(dfx)
	c, _ := complexpr.BuildTree(ddfx)

	for _, x := range []complex128{0, 1, 2, 1i} {
		vars := complexpr.Vars{"x": complexpr.NewScalar(x)}
		y, _ := a.Eval(vars)
		yp, _ := b.Eval(vars)
		ypp, _ := c.Eval(vars)
		fmt.Printf("x = %-3v y = %-7v y' = %-5v y'' = %v\n", vars["x"], y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0       y' = -1    y'' = 0
	// x = 1   y = -0.5    y' = 0.5   y'' = 3
	// x = 2   y = 2       y' = 5     y'' = 6
	// x = i   y = -1.5i   y' = -2.5  y'' = 3i
}

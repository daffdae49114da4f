package batch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zephyrtronium/complexpr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunOrder(t *testing.T) {
	exprs := make([]string, 100)
	want := make([]string, len(exprs))
	for i := range exprs {
		exprs[i] = fmt.Sprintf("%d x", i)
		want[i] = fmt.Sprintf("%di", i)
	}
	want[0], want[1] = "0", "i"
	e := New(nil, complexpr.Vars{"x": complexpr.NewScalar(1i)}, 8, zap.NewNop())
	results, err := e.Run(context.Background(), exprs)
	require.NoError(t, err)
	require.Len(t, results, len(exprs))
	for i, r := range results {
		require.NoError(t, r.Err, "expression %d", i)
		assert.Equal(t, exprs[i], r.Src)
		assert.Equal(t, want[i], r.Value.String(), "expression %d", i)
	}
}

func TestRunErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := New(nil, nil, 2, zap.New(core))
	results, err := e.Run(context.Background(), []string{"1 +", "2 / 0", "y", "mean({1; 2})"})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, complexpr.ErrSyntax)
	assert.Nil(t, results[0].Expr)
	assert.ErrorIs(t, results[1].Err, complexpr.ErrDomain)
	assert.NotNil(t, results[1].Expr)
	var ne *complexpr.NameError
	assert.ErrorAs(t, results[2].Err, &ne)
	require.NoError(t, results[3].Err)
	assert.Equal(t, "1.5", results[3].Value.String())
	assert.Equal(t, 3, logs.FilterMessage("evaluation failed").Len())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New(nil, nil, 1, nil)
	results, err := e.Run(ctx, []string{"1", "2"})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Nil(t, r.Expr)
		assert.False(t, r.Value.Present())
	}
}

func TestRunRegistry(t *testing.T) {
	reg := complexpr.NewRegistry()
	e := New(reg, complexpr.Vars{"pi": complexpr.NewReal(3)}, 1, nil)
	results, err := e.Run(context.Background(), []string{"pi"})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "3", results[0].Value.String())
}

func TestLines(t *testing.T) {
	src := "1 + 2\n\n  # comment\n  x^2  \r\n{1, 2}"
	got, err := Lines(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 2", "x^2", "{1, 2}"}, got)
}

// Package batch evaluates many expressions concurrently.
package batch

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/complexpr"
)

// Result is the outcome of evaluating one expression.
type Result struct {
	// Src is the expression text.
	Src string
	// Expr is the parsed expression, or nil if it did not parse.
	Expr *complexpr.Expr
	// Value is the result of evaluation when Err is nil.
	Value complexpr.Value
	// Err is the parse or evaluation error, if any.
	Err error
}

// Evaluator evaluates batches of expressions against shared variables.
type Evaluator struct {
	reg  *complexpr.Registry
	vars complexpr.Vars
	jobs int
	log  *zap.Logger
}

// New creates an evaluator. A nil registry means complexpr.Builtins. The
// evaluator reads vars concurrently, so the caller must not modify it while a
// batch runs. jobs below 1 is treated as 1.
func New(reg *complexpr.Registry, vars complexpr.Vars, jobs int, log *zap.Logger) *Evaluator {
	if reg == nil {
		reg = complexpr.Builtins()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{
		reg:  reg,
		vars: vars,
		jobs: max(jobs, 1),
		log:  log,
	}
}

// Run evaluates each expression. Results are in the same order as exprs.
// Errors in individual expressions are reported in their results; the error
// returned is non-nil only if ctx ends before every expression is
// evaluated, in which case the remaining results are zero.
func (e *Evaluator) Run(ctx context.Context, exprs []string) ([]Result, error) {
	results := make([]Result, len(exprs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for i, src := range exprs {
		if gctx.Err() != nil {
			break
		}
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.eval(src)
			if err := results[i].Err; err != nil {
				e.log.Debug("evaluation failed", zap.Int("index", i), zap.String("expr", src), zap.Error(err))
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return results, err
}

func (e *Evaluator) eval(src string) Result {
	r := Result{Src: src}
	r.Expr, r.Err = complexpr.BuildTree(src, complexpr.WithRegistry(e.reg))
	if r.Err != nil {
		return r
	}
	r.Value, r.Err = r.Expr.Eval(e.vars)
	return r
}

// Lines reads one expression per line. Blank lines and lines starting with
// '#' are skipped.
func Lines(r io.Reader) ([]string, error) {
	var exprs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		exprs = append(exprs, s)
	}
	return exprs, sc.Err()
}

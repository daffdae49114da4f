package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/complexpr"
	"github.com/zephyrtronium/complexpr/internal/batch"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		inname string
		given  []string
		echo   bool
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate expressions",
		Long: `Evaluates each argument as an expression. With no arguments, or with
--in, expressions are read one per line from a file or stdin. Blank lines and
lines starting with # are skipped. Results are printed in input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := make(map[string]string, len(a.cfg.Variables)+len(given))
			maps.Copy(defs, a.cfg.Variables)
			for _, g := range given {
				name, val, ok := strings.Cut(g, "=")
				if !ok {
					return fmt.Errorf(`variable definitions must be "name=value", not %q`, g)
				}
				defs[strings.TrimSpace(name)] = strings.TrimSpace(val)
			}
			vars, err := complexpr.EvalVars(defs)
			if err != nil {
				return err
			}

			exprs := args
			if inname != "" || len(args) == 0 {
				lines, err := readInput(cmd.InOrStdin(), inname)
				if err != nil {
					return err
				}
				exprs = append(lines, exprs...)
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = a.cfg.Jobs
			}
			if !cmd.Flags().Changed("echo") {
				echo = a.cfg.Echo
			}
			a.logger.Debug("evaluating", zap.Int("expressions", len(exprs)), zap.Int("jobs", jobs), zap.Int("variables", len(vars)))

			results, err := batch.New(nil, vars, jobs, a.logger).Run(cmd.Context(), exprs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if echo {
					if r.Expr != nil {
						fmt.Fprintf(out, "%v : ", r.Expr)
					} else {
						fmt.Fprintf(out, "%s : ", r.Src)
					}
				}
				if r.Err != nil {
					failed++
					fmt.Fprintln(out, "error:", r.Err)
					continue
				}
				fmt.Fprintln(out, r.Value)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inname, "in", "", `input file, or "-" for stdin (default stdin if no args given)`)
	cmd.Flags().StringArrayVar(&given, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().BoolVar(&echo, "echo", false, "print parse trees")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of expressions to evaluate concurrently (default from config)")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]string, error) {
	if name == "" || name == "-" {
		return batch.Lines(stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return batch.Lines(f)
}

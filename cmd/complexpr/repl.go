package main

import (
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/complexpr"
	"github.com/zephyrtronium/complexpr/internal/repl"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := complexpr.EvalVars(a.cfg.Variables)
			if err != nil {
				return err
			}
			return repl.Run(cmd.Context(), nil, vars)
		},
	}
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/complexpr"
)

func newFuncsCmd(a *app) *cobra.Command {
	var category, format string
	cmd := &cobra.Command{
		Use:   "funcs",
		Short: "List built-in functions and constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := complexpr.Builtins().Metadata()
			if category != "" {
				var keep []complexpr.Descriptor
				for _, d := range ds {
					if strings.EqualFold(d.Category, category) {
						keep = append(keep, d)
					}
				}
				if len(keep) == 0 {
					return fmt.Errorf("no category %q", category)
				}
				ds = keep
			}
			switch format {
			case "text":
				writeText(cmd.OutOrStdout(), ds)
				return nil
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(ds); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	cmd.Flags().StringVar(&format, "format", "text", "output format, text or yaml")
	return cmd
}

func writeText(w io.Writer, ds []complexpr.Descriptor) {
	cat := ""
	for _, d := range ds {
		if d.Category != cat {
			if cat != "" {
				fmt.Fprintln(w)
			}
			cat = d.Category
			fmt.Fprintf(w, "# %s\n", cat)
		}
		fmt.Fprintf(w, "\n%s: %s\n", d.Name, d.DisplayName)
		fmt.Fprintf(w, "  %s\n", d.Description)
		for _, s := range d.Signatures {
			fmt.Fprintf(w, "  %s%s\n", d.Name, s)
		}
		for _, ex := range d.Examples {
			fmt.Fprintf(w, "    %s = %s\n", ex.Expr, ex.Result)
		}
	}
}

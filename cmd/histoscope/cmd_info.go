package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"histoscope/cmd/histoscope/ui"
	"histoscope/internal/loader"
	"histoscope/internal/logging"
)

// newInfoCmd builds the summary command, which prints a histogram's shape
// without entering the TUI.
func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [url|file]",
		Short: "Summarize a histogram document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.New(nil, a.logs.Get(logging.CategoryLoader))
			spec, err := l.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", args[0])
			fmt.Fprintf(out, "axes: %d, cells: %d, total count: %s\n\n",
				len(spec.Axes), len(spec.Counts), ui.FormatValue(spec.Total()))

			fmt.Fprintf(out, "%-4s %-16s %6s %12s %12s\n", "#", "axis", "bins", "low", "high")
			for i, ax := range spec.Axes {
				fmt.Fprintf(out, "%-4d %-16s %6d %12s %12s\n",
					i+1, ax.Name, ax.Bins(),
					ui.FormatEdge(ax.Edges[0]), ui.FormatEdge(ax.Edges[len(ax.Edges)-1]))
			}
			return nil
		},
	}
}

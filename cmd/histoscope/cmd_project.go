package main

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"histoscope/cmd/histoscope/ui"
	"histoscope/internal/histogram"
	"histoscope/internal/loader"
	"histoscope/internal/logging"
)

// newProjectCmd builds the non-interactive projection command. It is the
// scripting counterpart of the viewer: same reducer, plain output.
func (a *app) newProjectCmd() *cobra.Command {
	var (
		axes    []string
		filters []string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "project [url|file]",
		Short: "Project a histogram onto 1 or 2 axes and print it",
		Long: `Sums the histogram over every axis not named by --axes. Hidden axes
can be restricted to a half-open bin range with --filter axis=lo:hi.

Examples:
  histoscope project hits.json --axes eta
  histoscope project hits.json --axes eta,p --filter theta=0:4 --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProject(cmd, args[0], axes, filters, format)
		},
	}

	cmd.Flags().StringSliceVar(&axes, "axes", nil, "display axes (1 or 2 names, required)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "bin-range filter, axis=lo:hi (repeatable)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or csv")
	_ = cmd.MarkFlagRequired("axes")
	return cmd
}

func (a *app) runProject(cmd *cobra.Command, target string, axes, filters []string, format string) error {
	l := loader.New(nil, a.logs.Get(logging.CategoryLoader))
	spec, err := l.Load(cmd.Context(), target)
	if err != nil {
		return err
	}

	sel := histogram.Selection{
		Display: axes,
		Filters: make(map[string]*histogram.BinRange),
	}
	for _, ax := range spec.Axes {
		if !inList(axes, ax.Name) {
			sel.Filters[ax.Name] = nil
		}
	}
	for _, f := range filters {
		name, r, err := parseFilter(f)
		if err != nil {
			return err
		}
		sel.Filters[name] = r
	}

	proj, err := histogram.Reduce(spec, sel)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		return printTable(cmd, proj)
	case "csv":
		return printCSV(cmd, proj)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// parseFilter parses "axis=lo:hi" into a bin range.
func parseFilter(s string) (string, *histogram.BinRange, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("filter %q: want axis=lo:hi", s)
	}
	loStr, hiStr, ok := strings.Cut(rng, ":")
	if !ok {
		return "", nil, fmt.Errorf("filter %q: want axis=lo:hi", s)
	}
	lo, err := strconv.Atoi(loStr)
	if err != nil {
		return "", nil, fmt.Errorf("filter %q: bad lo: %w", s, err)
	}
	hi, err := strconv.Atoi(hiStr)
	if err != nil {
		return "", nil, fmt.Errorf("filter %q: bad hi: %w", s, err)
	}
	return name, &histogram.BinRange{Lo: lo, Hi: hi}, nil
}

func printTable(cmd *cobra.Command, proj *histogram.Projection) error {
	out := cmd.OutOrStdout()

	if len(proj.Axes) == 1 {
		ax := proj.Axes[0]
		fmt.Fprintf(out, "%-20s %12s\n", ax.Name, "count")
		for i := 0; i < ax.Bins(); i++ {
			fmt.Fprintf(out, "%-20s %12s\n", ui.BinLabel(ax, i), ui.FormatValue(proj.Values[i]))
		}
		return nil
	}

	xAxis, yAxis := proj.Axes[0], proj.Axes[1]
	fmt.Fprintf(out, "%-20s", xAxis.Name+`\`+yAxis.Name)
	for iy := 0; iy < yAxis.Bins(); iy++ {
		fmt.Fprintf(out, " %12s", ui.BinLabel(yAxis, iy))
	}
	fmt.Fprintln(out)
	for ix := 0; ix < xAxis.Bins(); ix++ {
		fmt.Fprintf(out, "%-20s", ui.BinLabel(xAxis, ix))
		for iy := 0; iy < yAxis.Bins(); iy++ {
			fmt.Fprintf(out, " %12s", ui.FormatValue(proj.Value(ix, iy)))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printCSV(cmd *cobra.Command, proj *histogram.Projection) error {
	w := csv.NewWriter(cmd.OutOrStdout())

	if len(proj.Axes) == 1 {
		ax := proj.Axes[0]
		if err := w.Write([]string{ax.Name + "_lo", ax.Name + "_hi", "count"}); err != nil {
			return err
		}
		for i := 0; i < ax.Bins(); i++ {
			rec := []string{
				ui.FormatEdge(ax.Edges[i]),
				ui.FormatEdge(ax.Edges[i+1]),
				ui.FormatValue(proj.Values[i]),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	} else {
		xAxis, yAxis := proj.Axes[0], proj.Axes[1]
		header := []string{
			xAxis.Name + "_lo", xAxis.Name + "_hi",
			yAxis.Name + "_lo", yAxis.Name + "_hi",
			"count",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for ix := 0; ix < xAxis.Bins(); ix++ {
			for iy := 0; iy < yAxis.Bins(); iy++ {
				rec := []string{
					ui.FormatEdge(xAxis.Edges[ix]), ui.FormatEdge(xAxis.Edges[ix+1]),
					ui.FormatEdge(yAxis.Edges[iy]), ui.FormatEdge(yAxis.Edges[iy+1]),
					ui.FormatValue(proj.Value(ix, iy)),
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}

func inList(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"histoscope/internal/catalog"
	"histoscope/internal/loader"
	"histoscope/internal/logging"
)

// newCatalogCmd builds the command that lists the collaboration's
// published histograms or shows one entry's documentation.
func (a *app) newCatalogCmd() *cobra.Command {
	var (
		path     string
		prefetch bool
	)

	cmd := &cobra.Command{
		Use:   "catalog [name]",
		Short: "List published histograms or show one entry",
		Long: `Without arguments, lists every entry in the catalog file. With a
name, renders that entry's markdown documentation and shows the command
to view it. --check validates every entry's data URL.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCatalog(cmd, args, path, prefetch)
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "catalog file (default from config)")
	cmd.Flags().BoolVar(&prefetch, "check", false, "validate every entry's data URL")
	return cmd
}

func (a *app) runCatalog(cmd *cobra.Command, args []string, path string, prefetch bool) error {
	if path == "" {
		path = a.cfg.CatalogPath
	}
	if path == "" {
		return fmt.Errorf("no catalog configured: set catalog_path in the config or pass --catalog")
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	log := a.logs.Get(logging.CategoryCatalog)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		entry, ok := cat.Get(args[0])
		if !ok {
			return fmt.Errorf("no catalog entry %q (see 'histoscope catalog' for the list)", args[0])
		}

		title := entry.Title
		if title == "" {
			title = entry.Name
		}
		fmt.Fprintf(out, "%s\n%s\n\n", title, entry.URL)

		if entry.Description != "" {
			rendered, err := renderMarkdown(entry.Description)
			if err != nil {
				log.Warn("markdown render failed, printing raw")
				rendered = entry.Description
			}
			fmt.Fprintln(out, rendered)
		}
		fmt.Fprintf(out, "view it:  histoscope view %s", entry.URL)
		if len(entry.DefaultAxes) > 0 {
			fmt.Fprintf(out, " --axes %s", strings.Join(entry.DefaultAxes, ","))
		}
		if entry.ColorScale != "" {
			fmt.Fprintf(out, " --color-scale %s", entry.ColorScale)
		}
		fmt.Fprintln(out)
		return nil
	}

	if prefetch {
		statuses := catalog.Prefetch(cmd.Context(), loader.New(nil, a.logs.Get(logging.CategoryLoader)), cat.Entries)
		for _, st := range statuses {
			if st.Err != nil {
				fmt.Fprintf(out, "FAIL %-24s %v\n", st.Entry.Name, st.Err)
				continue
			}
			fmt.Fprintf(out, "ok   %-24s %d axes, %d cells\n", st.Entry.Name, st.Axes, st.Cells)
		}
		return nil
	}

	for _, name := range cat.Names() {
		entry, _ := cat.Get(name)
		if entry.Title != "" {
			fmt.Fprintf(out, "%-24s %s\n", name, entry.Title)
		} else {
			fmt.Fprintln(out, name)
		}
	}
	return nil
}

func renderMarkdown(src string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}

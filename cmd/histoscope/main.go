// Package main provides the histoscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"histoscope/internal/config"
	"histoscope/internal/logging"
)

// app carries the state shared by the subcommands of one execution: the
// loaded config and the logger registry, populated in PersistentPreRunE.
type app struct {
	cfg  *config.Config
	logs *logging.Registry
}

// newRootCmd builds a fresh command tree. Flag variables live in the
// closures, so repeated executions never see each other's values.
func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		verbose    bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "histoscope",
		Short: "histoscope - terminal viewer for multi-dimensional histograms",
		Long: `histoscope inspects the binned histogram documents published by the
collaboration's analysis exports: JSON files carrying named axes (bin
edges) and a flat row-major counts array.

Point it at a URL, a local file, or a catalog entry name to browse
projections interactively, or use the non-interactive subcommands to
summarize and export them.

Examples:
  histoscope view https://data.example.org/tracker-acceptance.json
  histoscope view hits.json --axes eta,p --color-scale log --watch
  histoscope view tracker-acceptance
  histoscope project hits.json --axes eta --filter p=2:5 --format csv
  histoscope info hits.json
  histoscope catalog tracker-acceptance`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			a.logs, err = logging.New(logging.Options{
				Verbose: verbose || a.cfg.Logging.Verbose,
				File:    a.cfg.Logging.File,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logs != nil {
				a.logs.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")

	cmd.AddCommand(a.newViewCmd())
	cmd.AddCommand(a.newInfoCmd())
	cmd.AddCommand(a.newProjectCmd())
	cmd.AddCommand(a.newCatalogCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

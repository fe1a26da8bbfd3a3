package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"histoscope/cmd/histoscope/ui"
	"histoscope/cmd/histoscope/viewer"
	"histoscope/internal/catalog"
	"histoscope/internal/config"
	"histoscope/internal/loader"
	"histoscope/internal/logging"
	"histoscope/internal/watch"
)

// newViewCmd builds the interactive viewer command.
func (a *app) newViewCmd() *cobra.Command {
	var (
		axes       []string
		colorScale string
		watchData  bool
	)

	cmd := &cobra.Command{
		Use:   "view [url|file|entry]",
		Short: "Browse a histogram interactively",
		Long: `Loads a histogram document and opens the interactive viewer. The
argument is a URL, a local file, or the name of a catalog entry; an
entry supplies its own URL, display axes, and color scale, which flags
still override.

Keys: 1-9 toggle which axes are displayed (1 axis renders bars, 2 axes a
heatmap), tab focuses a hidden axis, [ ] { } adjust its bin-range filter,
0 clears it, s switches linear/log shading, r reloads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, args[0], axes, colorScale, watchData)
		},
	}

	cmd.Flags().StringSliceVar(&axes, "axes", nil, "initial display axes (1 or 2 names)")
	cmd.Flags().StringVar(&colorScale, "color-scale", "", "heatmap scale: linear or log")
	cmd.Flags().BoolVar(&watchData, "watch", false, "reload when a local data file changes")
	return cmd
}

// viewParams is the resolved input of the view command: the data source
// plus display defaults after applying precedence (flag over catalog
// entry over config).
type viewParams struct {
	url   string
	axes  []string
	scale config.ColorScale
}

func resolveView(target string, flagAxes []string, flagScale string, entry *catalog.Entry, cfg *config.Config) (viewParams, error) {
	p := viewParams{
		url:   target,
		axes:  cfg.Viewer.InitialAxes,
		scale: cfg.Viewer.ColorScale,
	}
	if entry != nil {
		p.url = entry.URL
		if len(entry.DefaultAxes) > 0 {
			p.axes = entry.DefaultAxes
		}
		if entry.ColorScale != "" {
			p.scale = entry.ColorScale
		}
	}
	if len(flagAxes) > 0 {
		p.axes = flagAxes
	}
	if flagScale != "" {
		p.scale = config.ColorScale(flagScale)
	}

	if p.scale != config.ScaleLinear && p.scale != config.ScaleLog {
		return viewParams{}, fmt.Errorf("unknown color scale %q", p.scale)
	}
	if len(p.axes) > 2 {
		return viewParams{}, fmt.Errorf("at most 2 initial axes, got %d", len(p.axes))
	}
	return p, nil
}

// lookupEntry treats the view argument as a catalog entry name. URLs and
// file paths pass through as nil; so does anything when no catalog is
// configured or it fails to load.
func (a *app) lookupEntry(name string) *catalog.Entry {
	if a.cfg.CatalogPath == "" {
		return nil
	}
	cat, err := catalog.Load(a.cfg.CatalogPath)
	if err != nil {
		return nil
	}
	if e, ok := cat.Get(name); ok {
		return &e
	}
	return nil
}

func (a *app) runView(cmd *cobra.Command, target string, flagAxes []string, flagScale string, watchData bool) error {
	params, err := resolveView(target, flagAxes, flagScale, a.lookupEntry(target), a.cfg)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; log only when a file sink is configured.
	reg := a.logs
	if a.cfg.Logging.File == "" {
		reg = logging.Nop()
	}

	styles := stylesForTheme(a.cfg.Viewer.Theme)

	opts := viewer.Options{
		URL:         params.url,
		InitialAxes: params.axes,
		ColorScale:  params.scale,
		Styles:      &styles,
		Log:         reg.ForInstance(logging.CategoryUI),
	}

	if watchData {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		changes := make(chan struct{}, 1)
		w, err := watch.New(params.url, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		}, reg.Get(logging.CategoryWatch))
		if err != nil {
			return fmt.Errorf("watch %s: %w", params.url, err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watch %s: %w", params.url, err)
		}
		defer w.Stop()

		opts.Changes = changes
	}

	l := loader.New(nil, reg.Get(logging.CategoryLoader))
	return viewer.Run(opts, l)
}

func stylesForTheme(mode config.ThemeMode) ui.Styles {
	switch mode {
	case config.ThemeLight:
		return ui.NewStyles(ui.LightTheme())
	case config.ThemeDark:
		return ui.NewStyles(ui.DarkTheme())
	default:
		return ui.DefaultStyles()
	}
}

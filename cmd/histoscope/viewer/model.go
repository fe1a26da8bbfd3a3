// Package viewer implements the interactive histogram viewer: a bubbletea
// model that loads a histogram document, owns the axis selection, and
// re-renders the projection on every interaction. One Model is one viewer
// instance; nothing here is shared across instances.
package viewer

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"histoscope/cmd/histoscope/ui"
	"histoscope/internal/config"
	"histoscope/internal/histogram"
	"histoscope/internal/loader"
)

// state is the loading lifecycle of the viewer.
type state int

const (
	stateLoading state = iota
	stateReady
	stateError
)

// Options configures a viewer instance.
type Options struct {
	// URL locates the histogram document (http(s) or local path).
	URL string
	// InitialAxes picks the axes displayed when the histogram loads.
	InitialAxes []string
	// ColorScale selects heatmap shading.
	ColorScale config.ColorScale
	// Styles provides the theme; zero value falls back to auto-detect.
	Styles *ui.Styles
	// Log receives viewer diagnostics. Nil means silent.
	Log *zap.Logger
	// Changes delivers live-reload notifications from a file watcher.
	// Each receive triggers a superseding reload. May be nil.
	Changes <-chan struct{}
}

// Model is the viewer. It owns the loaded spec, the current selection,
// and the projection derived from it.
type Model struct {
	opts   Options
	loader *loader.Loader
	log    *zap.Logger

	state  state
	errMsg string

	spec  *histogram.Spec
	sel   histogram.Selection
	proj  *histogram.Projection
	scale config.ColorScale

	// focus indexes the hidden axes (in spec order) for filter keys.
	focus int

	styles  ui.Styles
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	status  string
	width   int
	height  int
}

// New builds a viewer in the loading state. Call Run (or hand the model
// to a bubbletea program) to start it.
func New(opts Options, l *loader.Loader) Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	styles := ui.DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	scale := opts.ColorScale
	if scale == "" {
		scale = config.ScaleLinear
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		opts:    opts,
		loader:  l,
		log:     log,
		state:   stateLoading,
		scale:   scale,
		styles:  styles,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		width:   80,
		height:  24,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadCmd()}
	if m.opts.Changes != nil {
		cmds = append(cmds, waitForChange(m.opts.Changes))
	}
	return tea.Batch(cmds...)
}

// Run mounts the viewer in the alternate screen and blocks until quit.
func Run(opts Options, l *loader.Loader) error {
	p := tea.NewProgram(New(opts, l), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// hiddenAxes returns the non-displayed axis names in spec order.
func (m *Model) hiddenAxes() []string {
	if m.spec == nil {
		return nil
	}
	var hidden []string
	for _, ax := range m.spec.Axes {
		if !displayed(m.sel.Display, ax.Name) {
			hidden = append(hidden, ax.Name)
		}
	}
	return hidden
}

func displayed(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

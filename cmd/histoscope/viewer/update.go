package viewer

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"histoscope/internal/config"
	"histoscope/internal/histogram"
)

// Update is the event loop. Interaction keys are ignored while a load is
// in flight; a reload supersedes the outstanding request rather than
// cancelling it.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case specLoadedMsg:
		return m.handleLoaded(msg)

	case fileChangedMsg:
		m.state = stateLoading
		m.status = "data file changed, reloading"
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(), waitForChange(m.opts.Changes))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(msg specLoadedMsg) (tea.Model, tea.Cmd) {
	if m.loader.Stale(msg.id) {
		m.log.Debug("discarding superseded load", zap.Uint64("request", msg.id))
		return m, nil
	}

	if msg.err != nil {
		m.state = stateError
		m.errMsg = msg.err.Error()
		m.log.Warn("load failed", zap.Error(msg.err))
		return m, nil
	}

	m.state = stateReady
	m.errMsg = ""
	m.status = ""
	m.spec = msg.spec
	m.sel = histogram.DefaultSelection(msg.spec, m.opts.InitialAxes)
	m.focus = 0
	m.recompute()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Reload stays live in every state: a reload during loading simply
	// supersedes the outstanding request.
	if key.Matches(msg, m.keys.Reload) {
		m.state = stateLoading
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	}

	// Everything else needs loaded data.
	if m.state != stateReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.ToggleAxis):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			m.toggleAxis(n - 1)
		}

	case key.Matches(msg, m.keys.CycleFocus):
		if hidden := m.hiddenAxes(); len(hidden) > 0 {
			m.focus = (m.focus + 1) % len(hidden)
		}

	case key.Matches(msg, m.keys.WidenLo):
		m.adjustFilter(-1, 0)
	case key.Matches(msg, m.keys.NarrowLo):
		m.adjustFilter(1, 0)
	case key.Matches(msg, m.keys.NarrowHi):
		m.adjustFilter(0, -1)
	case key.Matches(msg, m.keys.WidenHi):
		m.adjustFilter(0, 1)

	case key.Matches(msg, m.keys.ClearFilter):
		if name, ok := m.focusedHidden(); ok {
			m.setFixedFilter(name, nil)
		}

	case key.Matches(msg, m.keys.ToggleScale):
		if m.scale == config.ScaleLinear {
			m.scale = config.ScaleLog
		} else {
			m.scale = config.ScaleLinear
		}
	}

	return m, nil
}

// toggleAxis adds or removes the i-th spec axis from the display set.
// A displayed axis is hidden (unless it is the only one); a hidden axis
// joins the display, evicting the older displayed axis when two are
// already shown.
func (m *Model) toggleAxis(i int) {
	if i < 0 || i >= len(m.spec.Axes) {
		return
	}
	name := m.spec.Axes[i].Name

	display := append([]string(nil), m.sel.Display...)
	if displayed(display, name) {
		if len(display) == 1 {
			m.status = "at least one axis must stay displayed"
			return
		}
		keep := display[:0]
		for _, n := range display {
			if n != name {
				keep = append(keep, n)
			}
		}
		display = keep
	} else if len(display) < 2 {
		display = append(display, name)
	} else {
		display = []string{display[1], name}
	}

	m.setDisplayAxes(display)
}

// setDisplayAxes swaps the display set, dropping filters on now-displayed
// axes and giving newly hidden axes an unrestricted filter. On any
// validation failure the previous selection and projection stay in place.
func (m *Model) setDisplayAxes(names []string) {
	next := histogram.Selection{
		Display: names,
		Filters: make(map[string]*histogram.BinRange),
	}
	for _, ax := range m.spec.Axes {
		if displayed(names, ax.Name) {
			continue
		}
		if r, ok := m.sel.Filters[ax.Name]; ok {
			next.Filters[ax.Name] = r
		} else {
			next.Filters[ax.Name] = nil
		}
	}
	m.commit(next)
}

// setFixedFilter replaces one hidden axis's bin restriction. A nil range
// removes the restriction.
func (m *Model) setFixedFilter(name string, r *histogram.BinRange) {
	next := m.sel.Clone()
	next.Filters[name] = r
	m.commit(next)
}

// adjustFilter nudges the focused hidden axis's range endpoints. An
// unfiltered axis starts from its full range.
func (m *Model) adjustFilter(dlo, dhi int) {
	name, ok := m.focusedHidden()
	if !ok {
		return
	}
	ax, _ := m.spec.Axis(name)

	r := m.sel.Filters[name]
	if r == nil {
		r = &histogram.BinRange{Lo: 0, Hi: ax.Bins()}
	}
	next := histogram.BinRange{Lo: r.Lo + dlo, Hi: r.Hi + dhi}
	if next.Lo < 0 || next.Hi > ax.Bins() || next.Lo > next.Hi {
		return
	}
	m.setFixedFilter(name, &next)
}

func (m *Model) focusedHidden() (string, bool) {
	hidden := m.hiddenAxes()
	if len(hidden) == 0 {
		return "", false
	}
	if m.focus >= len(hidden) {
		m.focus = 0
	}
	return hidden[m.focus], true
}

// commit validates the candidate selection by reducing with it. The prior
// projection survives any failure, so the display never partially updates.
func (m *Model) commit(next histogram.Selection) {
	proj, err := histogram.Reduce(m.spec, next)
	if err != nil {
		m.status = err.Error()
		m.log.Warn("selection rejected", zap.Error(err))
		return
	}
	m.sel = next
	m.proj = proj
	m.status = ""
	if hidden := m.hiddenAxes(); m.focus >= len(hidden) {
		m.focus = 0
	}
}

// recompute rebuilds the projection from the current selection.
func (m *Model) recompute() {
	proj, err := histogram.Reduce(m.spec, m.sel)
	if err != nil {
		// Unreachable through the exposed controls; surface it rather
		// than show stale data silently.
		m.status = fmt.Sprintf("projection failed: %v", err)
		m.log.Error("reduce failed", zap.Error(err))
		return
	}
	m.proj = proj
}

package viewer

import (
	"fmt"
	"strings"

	"histoscope/cmd/histoscope/ui"
	"histoscope/internal/config"
)

// View renders the full frame: header, chart, axis panel, status, help.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("histoscope"))
	sb.WriteString(" ")
	sb.WriteString(m.styles.Muted.Render(m.opts.URL))
	sb.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Body.Render(" loading histogram..."))
		sb.WriteString("\n")

	case stateError:
		sb.WriteString(m.styles.Error.Render("load failed: " + m.errMsg))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("press r to retry, q to quit"))
		sb.WriteString("\n")

	case stateReady:
		sb.WriteString(m.renderChart())
		sb.WriteString("\n")
		sb.WriteString(m.renderAxisPanel())
	}

	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Warning.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderChart() string {
	if m.proj == nil {
		return m.styles.Muted.Render("no projection")
	}
	if len(m.proj.Axes) == 2 {
		hm := ui.Heatmap{Scale: m.scale, Styles: m.styles}
		return hm.Render(m.proj)
	}
	chart := ui.BarChart{Width: m.width - 4, Styles: m.styles}
	return chart.Render(m.proj)
}

// renderAxisPanel lists every axis with its display/filter state. The
// number prefix is the toggle key; the marker shows the filter focus.
func (m Model) renderAxisPanel() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Subtitle.Render("axes"))
	sb.WriteString("\n")

	for i, ax := range m.spec.Axes {
		line := fmt.Sprintf("%d %s (%d bins)", i+1, ax.Name, ax.Bins())

		if displayed(m.sel.Display, ax.Name) {
			sb.WriteString(m.styles.AxisActive.Render("▸ " + line + " [displayed]"))
		} else {
			marker := "  "
			if name, ok := m.focusedHidden(); ok && name == ax.Name {
				marker = "› "
			}
			desc := line
			if r := m.sel.Filters[ax.Name]; r != nil {
				desc += fmt.Sprintf(" bins %d-%d of %d", r.Lo, r.Hi, ax.Bins())
				sb.WriteString(marker + m.styles.Filter.Render(desc))
			} else {
				desc += " summed"
				sb.WriteString(marker + m.styles.Muted.Render(desc))
			}
		}
		sb.WriteString("\n")
	}

	scale := "linear"
	if m.scale == config.ScaleLog {
		scale = "log"
	}
	if m.proj != nil {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("total %s · scale %s",
			ui.FormatValue(m.proj.Total()), scale)))
		sb.WriteString("\n")
	}
	return sb.String()
}

package viewer

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"histoscope/internal/histogram"
)

// specLoadedMsg carries a completed load. The request ID lets Update
// discard results that a newer request has superseded.
type specLoadedMsg struct {
	id   uint64
	spec *histogram.Spec
	err  error
}

// fileChangedMsg reports that the watched data file changed on disk.
type fileChangedMsg struct{}

// loadCmd issues a new request ID and fetches the document. The returned
// command runs on its own goroutine; only the resulting message touches
// the model.
func (m *Model) loadCmd() tea.Cmd {
	id := m.loader.Begin()
	url := m.opts.URL
	return func() tea.Msg {
		spec, err := m.loader.Load(context.Background(), url)
		return specLoadedMsg{id: id, spec: spec, err: err}
	}
}

// waitForChange blocks on the watcher channel and converts one
// notification into a message. Re-armed after every receive.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

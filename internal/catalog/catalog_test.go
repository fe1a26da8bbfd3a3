package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histoscope/internal/config"
	"histoscope/internal/loader"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, `
entries:
  - name: tracker-acceptance
    title: Tracker hit acceptance
    url: https://example.org/data/tracker.json
    description: |
      Hit acceptance binned in **eta** and **p**.
    default_axes: [eta, p]
    color_scale: log
  - name: dis-kinematics
    url: https://example.org/data/dis.json
`)

	cat, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cat.Entries, 2)

	e, ok := cat.Get("tracker-acceptance")
	require.True(t, ok)
	assert.Equal(t, []string{"eta", "p"}, e.DefaultAxes)
	assert.Equal(t, config.ScaleLog, e.ColorScale)
	assert.Contains(t, e.Description, "**eta**")

	_, ok = cat.Get("absent")
	assert.False(t, ok)

	assert.Equal(t, []string{"dis-kinematics", "tracker-acceptance"}, cat.Names())
}

func TestLoadCatalogRejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unnamed entry", "entries:\n  - url: https://example.org/x.json\n"},
		{"missing url", "entries:\n  - name: x\n"},
		{"duplicate name", "entries:\n  - name: x\n    url: a\n  - name: x\n    url: b\n"},
		{"bad yaml", "entries: [unclosed"},
		{"unknown color scale", "entries:\n  - name: x\n    url: a\n    color_scale: rainbow\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestPrefetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.json":
			_, _ = w.Write([]byte(`{"axes": [{"name": "x", "edges": [0,1,2]}], "counts": [3, 4]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	entries := []Entry{
		{Name: "good", URL: srv.URL + "/good.json"},
		{Name: "bad", URL: srv.URL + "/bad.json"},
	}

	statuses := Prefetch(context.Background(), loader.New(srv.Client(), nil), entries)
	require.Len(t, statuses, 2)

	assert.NoError(t, statuses[0].Err)
	assert.Equal(t, 1, statuses[0].Axes)
	assert.Equal(t, 2, statuses[0].Cells)

	assert.Error(t, statuses[1].Err)
	assert.Equal(t, "bad", statuses[1].Entry.Name)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histoscope/internal/catalog"
	"histoscope/internal/config"
	"histoscope/internal/histogram"
)

const testDoc = `{
	"axes": [
		{"name": "x", "edges": [0, 1, 2]},
		{"name": "y", "edges": [0, 1, 2, 3]}
	],
	"counts": [1, 2, 3, 4, 5, 6]
}`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hits.json")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))
	return path
}

// execute builds a fresh command tree with a throwaway config, runs it,
// and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info", writeDoc(t))
	require.NoError(t, err)
	assert.Contains(t, out, "axes: 2, cells: 6, total count: 21")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "y")
}

func TestInfoCommandBadFile(t *testing.T) {
	_, err := execute(t, "info", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestProjectCommandTable(t *testing.T) {
	out, err := execute(t, "project", writeDoc(t), "--axes", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "[0, 1)")
	assert.Contains(t, out, "6")
	assert.Contains(t, out, "15")
}

func TestProjectCommandCSVWithFilter(t *testing.T) {
	out, err := execute(t, "project", writeDoc(t),
		"--axes", "x", "--filter", "y=1:3", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "x_lo,x_hi,count")
	assert.Contains(t, out, "0,1,5")
	assert.Contains(t, out, "1,2,11")
}

func TestRepeatedExecutionsIsolateFlags(t *testing.T) {
	// Slice flags would accumulate across runs if the command tree were
	// shared: the second --axes x would become ["x", "x"].
	doc := writeDoc(t)
	first, err := execute(t, "project", doc, "--axes", "x", "--filter", "y=1:3", "--format", "csv")
	require.NoError(t, err)

	second, err := execute(t, "project", doc, "--axes", "x", "--filter", "y=1:3", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProjectCommandUnknownAxis(t *testing.T) {
	_, err := execute(t, "project", writeDoc(t), "--axes", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestCatalogCommand(t *testing.T) {
	doc := writeDoc(t)
	catPath := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(`
entries:
  - name: hits
    title: Tracker hits
    url: `+doc+`
    description: "Hits binned in **x** and **y**."
    default_axes: [x]
    color_scale: log
`), 0o644))

	out, err := execute(t, "catalog", "--catalog", catPath)
	require.NoError(t, err)
	assert.Contains(t, out, "hits")
	assert.Contains(t, out, "Tracker hits")

	out, err = execute(t, "catalog", "hits", "--catalog", catPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Tracker hits")
	assert.Contains(t, out, "histoscope view")
	assert.Contains(t, out, "--axes x")
	assert.Contains(t, out, "--color-scale log")

	out, err = execute(t, "catalog", "--catalog", catPath, "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestResolveViewPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Viewer.InitialAxes = []string{"x"}
	entry := &catalog.Entry{
		Name:        "hits",
		URL:         "https://example.org/hits.json",
		DefaultAxes: []string{"eta", "p"},
		ColorScale:  config.ScaleLog,
	}

	// An entry supplies the URL and its own defaults.
	p, err := resolveView("hits", nil, "", entry, cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/hits.json", p.url)
	assert.Equal(t, []string{"eta", "p"}, p.axes)
	assert.Equal(t, config.ScaleLog, p.scale)

	// Flags win over the entry.
	p, err = resolveView("hits", []string{"p"}, "linear", entry, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, p.axes)
	assert.Equal(t, config.ScaleLinear, p.scale)

	// Without an entry the argument is the source and config supplies
	// the defaults.
	p, err = resolveView("hits.json", nil, "", nil, cfg)
	require.NoError(t, err)
	assert.Equal(t, "hits.json", p.url)
	assert.Equal(t, []string{"x"}, p.axes)
	assert.Equal(t, config.ScaleLinear, p.scale)

	_, err = resolveView("hits.json", nil, "rainbow", nil, cfg)
	assert.Error(t, err)

	_, err = resolveView("hits.json", []string{"x", "y", "z"}, "", nil, cfg)
	assert.Error(t, err)
}

func TestLookupEntry(t *testing.T) {
	doc := writeDoc(t)
	catPath := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(`
entries:
  - name: hits
    url: `+doc+`
    default_axes: [y]
`), 0o644))

	a := &app{cfg: config.Default()}
	assert.Nil(t, a.lookupEntry("hits"), "no catalog configured")

	a.cfg.CatalogPath = catPath
	e := a.lookupEntry("hits")
	require.NotNil(t, e)
	assert.Equal(t, doc, e.URL)
	assert.Equal(t, []string{"y"}, e.DefaultAxes)

	assert.Nil(t, a.lookupEntry(doc), "file paths are not entry names")
}

func TestParseFilter(t *testing.T) {
	name, r, err := parseFilter("y=1:3")
	require.NoError(t, err)
	assert.Equal(t, "y", name)
	assert.Equal(t, &histogram.BinRange{Lo: 1, Hi: 3}, r)

	for _, bad := range []string{"y", "y=1", "y=a:3", "y=1:b"} {
		_, _, err := parseFilter(bad)
		assert.Error(t, err, bad)
	}
}

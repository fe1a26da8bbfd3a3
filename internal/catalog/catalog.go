// Package catalog indexes the collaboration's published histograms: named
// entries carrying a data URL, markdown documentation, and per-entry viewer
// defaults. The catalog file is YAML, maintained alongside the data exports.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"histoscope/internal/config"
	"histoscope/internal/loader"
)

// Entry is one published histogram.
type Entry struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
	// Description is markdown, rendered in the terminal when the entry
	// is shown.
	Description string `yaml:"description"`
	// DefaultAxes and ColorScale override the viewer defaults for this
	// entry when set.
	DefaultAxes []string          `yaml:"default_axes"`
	ColorScale  config.ColorScale `yaml:"color_scale"`
}

// Catalog is an ordered set of entries with unique names.
type Catalog struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cat.Entries))
	for i, e := range cat.Entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog %s: entry %d has no name", path, i)
		}
		if e.URL == "" {
			return nil, fmt.Errorf("catalog %s: entry %q has no url", path, e.Name)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("catalog %s: duplicate entry %q", path, e.Name)
		}
		if e.ColorScale != "" && e.ColorScale != config.ScaleLinear && e.ColorScale != config.ScaleLog {
			return nil, fmt.Errorf("catalog %s: entry %q has unknown color_scale %q", path, e.Name, e.ColorScale)
		}
		seen[e.Name] = true
	}
	return &cat, nil
}

// Get returns the named entry, or false if absent.
func (c *Catalog) Get(name string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the entry names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}

// Status is the outcome of validating one entry's data URL.
type Status struct {
	Entry Entry
	Axes  int
	Cells int
	Err   error
}

// Prefetch loads and validates every entry's histogram concurrently and
// returns one status per entry, in catalog order. Individual failures do
// not abort the rest.
func Prefetch(ctx context.Context, l *loader.Loader, entries []Entry) []Status {
	statuses := make([]Status, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, e := range entries {
		g.Go(func() error {
			spec, err := l.Load(ctx, e.URL)
			statuses[i] = Status{Entry: e, Err: err}
			if err == nil {
				statuses[i].Axes = len(spec.Axes)
				statuses[i].Cells = len(spec.Counts)
			}
			return nil
		})
	}
	_ = g.Wait()
	return statuses
}

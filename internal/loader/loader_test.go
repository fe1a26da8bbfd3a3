package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histoscope/internal/histogram"
)

const validDoc = `{
	"axes": [
		{"name": "x", "edges": [0, 1, 2]},
		{"name": "y", "edges": [0, 1, 2, 3]}
	],
	"counts": [1, 2, 3, 4, 5, 6]
}`

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validDoc))
	}))
	defer srv.Close()

	l := New(srv.Client(), nil)
	spec, err := l.Load(context.Background(), srv.URL+"/hits.json")
	require.NoError(t, err)
	assert.Len(t, spec.Axes, 2)
	assert.Equal(t, 21.0, spec.Total())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	l := New(nil, nil)
	spec, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "y", spec.Axes[1].Name)
}

func TestLoadHTTPErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l := New(srv.Client(), nil)
	_, err := l.Load(context.Background(), srv.URL+"/missing.json")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr), "got %v", err)
}

func TestLoadMissingFileIsFetchError(t *testing.T) {
	l := New(nil, nil)
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr), "got %v", err)
}

func TestLoadMalformedJSONIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"axes": [`))
	}))
	defer srv.Close()

	l := New(srv.Client(), nil)
	_, err := l.Load(context.Background(), srv.URL)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "got %v", err)
}

func TestLoadInvariantViolationIsSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// counts too short for a 2x3 histogram
		_, _ = w.Write([]byte(`{"axes": [{"name": "x", "edges": [0,1,2]}], "counts": [1,2,3]}`))
	}))
	defer srv.Close()

	l := New(srv.Client(), nil)
	_, err := l.Load(context.Background(), srv.URL)
	var schemaErr *histogram.SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
}

func TestLoadCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(srv.Client(), nil)
	_, err := l.Load(ctx, srv.URL)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr), "got %v", err)
}

// A result is stale as soon as a newer request has been issued.
func TestRequestSupersession(t *testing.T) {
	l := New(nil, nil)

	first := l.Begin()
	assert.False(t, l.Stale(first))

	second := l.Begin()
	assert.True(t, l.Stale(first))
	assert.False(t, l.Stale(second))
}

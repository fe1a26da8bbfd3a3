// Package loader retrieves histogram documents from http(s) URLs or local
// files and validates them against the histogram schema. It also issues the
// monotonically increasing request IDs the viewer uses to discard stale
// results when a reload supersedes an in-flight fetch.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"histoscope/internal/histogram"
)

// FetchError is a transport-level failure: the document could not be
// retrieved at all. Not retried; the user may trigger a reload.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a malformed JSON document. Fatal for this load attempt.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader fetches and validates histogram documents. One Loader serves one
// viewer instance; the request counter is what makes "last request wins"
// work without a cancellation primitive.
type Loader struct {
	client *http.Client
	log    *zap.Logger
	latest atomic.Uint64
}

// New creates a Loader. A nil client gets a default with a sane timeout,
// and a nil logger is replaced with a no-op one.
func New(client *http.Client, log *zap.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{client: client, log: log}
}

// Begin issues a new request ID. Results carrying an ID older than the
// most recently issued one are stale and must be discarded.
func (l *Loader) Begin() uint64 {
	return l.latest.Add(1)
}

// Stale reports whether a completed request has been superseded.
func (l *Loader) Stale(id uint64) bool {
	return id != l.latest.Load()
}

// Load retrieves, parses, and validates the histogram at url. Plain
// paths (no http/https scheme) are read from the local filesystem.
func (l *Loader) Load(ctx context.Context, url string) (*histogram.Spec, error) {
	start := time.Now()

	data, err := l.read(ctx, url)
	if err != nil {
		l.log.Warn("fetch failed", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	var spec histogram.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		l.log.Warn("parse failed", zap.String("url", url), zap.Error(err))
		return nil, &ParseError{URL: url, Err: err}
	}
	if err := spec.Validate(); err != nil {
		l.log.Warn("schema violation", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	l.log.Debug("histogram loaded",
		zap.String("url", url),
		zap.Int("axes", len(spec.Axes)),
		zap.Int("cells", len(spec.Counts)),
		zap.Duration("elapsed", time.Since(start)))
	return &spec, nil
}

func (l *Loader) read(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}
		return data, nil
	}

	data, err := os.ReadFile(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return data, nil
}

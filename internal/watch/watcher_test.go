package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitFor(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal(msg)
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hits.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	changed := make(chan struct{}, 1)
	w, err := New(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte(`{"counts": []}`), 0o644))
	waitFor(t, changed, "no reload after write")

	stats := w.Snapshot()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Reloads, 1)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hits.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	changed := make(chan struct{}, 1)
	w, err := New(path, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-changed:
		t.Fatal("reload fired for an unrelated file")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hits.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	changed := make(chan struct{}, 16)
	w, err := New(path, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(context.Background()))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	waitFor(t, changed, "no reload after burst")
	// The burst falls inside one debounce window.
	time.Sleep(600 * time.Millisecond)
	assert.LessOrEqual(t, len(changed), 1)
}

func TestStopReturnsAfterFailedStart(t *testing.T) {
	// Watching a file in a directory that does not exist fails in Start.
	path := filepath.Join(t.TempDir(), "missing", "hits.json")

	w, err := New(path, func() {}, nil)
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	waitFor(t, done, "Stop blocked after a failed Start")
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hits.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	w, err := New(path, func() {}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWatcher(t *testing.T, w *Watcher) (<-chan []string, context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) {
			changes <- paths
		})
	}()
	t.Cleanup(cancel)
	return changes, cancel, done
}

func TestNew_NoPaths(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	assert.Error(t, err)
}

func TestNew_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := New([]string{filepath.Join(t.TempDir(), "gone", "model.xmi")})
	assert.Error(t, err)
}

func TestRun_ReportsChangedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "model.xmi")
	require.NoError(t, os.WriteFile(target, []byte("<a/>"), 0o644))

	w, err := New([]string{target}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	changes, _, _ := runWatcher(t, w)

	require.NoError(t, os.WriteFile(target, []byte("<b/>"), 0o644))

	select {
	case got := <-changes:
		assert.Equal(t, []string{target}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRun_IgnoresUnwatchedSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "model.xmi")
	require.NoError(t, os.WriteFile(target, []byte("<a/>"), 0o644))

	w, err := New([]string{target}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	changes, _, _ := runWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case got := <-changes:
		t.Fatalf("unexpected change %v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_DebounceBatchesWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.xmi")
	b := filepath.Join(dir, "b.xmi")
	require.NoError(t, os.WriteFile(a, nil, 0o644))
	require.NoError(t, os.WriteFile(b, nil, 0o644))

	w, err := New([]string{a, b}, WithDebounce(300*time.Millisecond))
	require.NoError(t, err)
	changes, _, _ := runWatcher(t, w)

	require.NoError(t, os.WriteFile(a, []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("2"), 0o644))
	require.NoError(t, os.WriteFile(a, []byte("3"), 0o644))

	select {
	case got := <-changes:
		assert.Equal(t, []string{a, b}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "model.xmi")
	require.NoError(t, os.WriteFile(target, nil, 0o644))

	w, err := New([]string{target})
	require.NoError(t, err)
	_, cancel, done := runWatcher(t, w)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWithDebounce_IgnoresNegative(t *testing.T) {
	t.Parallel()

	w := &Watcher{debounce: DefaultDebounce}
	WithDebounce(-time.Second)(w)
	assert.Equal(t, DefaultDebounce, w.debounce)
	WithDebounce(0)(w)
	assert.Zero(t, w.debounce)
}

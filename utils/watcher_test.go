package utils

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherCallsHandlerOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.rle")
	other := filepath.Join(dir, "other.rle")
	require.NoError(t, os.WriteFile(path, []byte("x = 1, y = 1\nb!"), 0o644))

	var calls atomic.Int32
	w, err := NewFileWatcher(path, 20*time.Millisecond, nil, func(changed string) {
		assert.Equal(t, filepath.Base(path), filepath.Base(changed))
		calls.Add(1)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte("x = 1, y = 1\no!"), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.rle")
	w, err := NewFileWatcher(path, 0, nil, func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})
}

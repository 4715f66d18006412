package config

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

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leapcalc.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 6\n"), 0o600))

	fw, err := NewFileWatcher(path, 50*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fw.Close() })
	assert.True(t, filepath.IsAbs(fw.Path()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		fw.Run(ctx, func() { calls.Add(1) })
	}()

	require.NoError(t, os.WriteFile(other, []byte("x: 1\n"), 0o600))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("precision: 8\n"), 0o600))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes is reported once")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestFileWatcher_MissingDir(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "leapcalc.yaml"), DefaultDebounce, nil)
	require.Error(t, err)
}

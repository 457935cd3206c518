package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-viewer/internal/logger"
)

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G28\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, 20*time.Millisecond, logger.NoOpLogger{}, func() { changed <- struct{}{} })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("G28\nG1 X1\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go Watch(ctx, path, 10*time.Millisecond, logger.NoOpLogger{}, func() { changed <- struct{}{} })

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))

	select {
	case <-changed:
		t.Fatal("sibling write reported")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchFailsForMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "a.txt"), time.Millisecond, logger.NoOpLogger{}, func() {})
	assert.Error(t, err)
}

func TestFileWatcherFollowReplacesWatch(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("2"), 0o644))

	fw := NewFileWatcher(10*time.Millisecond, logger.NoOpLogger{})
	defer fw.Shutdown()

	firstChanged := make(chan struct{}, 4)
	secondChanged := make(chan struct{}, 4)
	fw.Follow(first, func() { firstChanged <- struct{}{} })
	fw.Follow(second, func() { secondChanged <- struct{}{} })
	assert.Equal(t, second, fw.Path())

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(first, []byte("1!"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("2!"), 0o644))

	select {
	case <-secondChanged:
	case <-time.After(2 * time.Second):
		t.Fatal("second file change not reported")
	}
	assert.Empty(t, firstChanged)

	fw.Stop()
	assert.Empty(t, fw.Path())
}

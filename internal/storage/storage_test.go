package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-viewer/internal/apperr"
)

func backends(t *testing.T) map[string]StringSetStore {
	t.Helper()
	dir := t.TempDir()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	sqlite, err := OpenSQLite(filepath.Join(dir, "recent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	file, err := NewFileStore(filepath.Join(dir, "nested", "recent.yaml"))
	require.NoError(t, err)

	return map[string]StringSetStore{
		BackendPreferences: NewPreferencesStore(a.Preferences()),
		BackendFile:        file,
		BackendSQLite:      sqlite,
		BackendMemory:      NewMemoryStore(),
	}
}

func TestStoresRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := store.Strings(ctx, "recent_files")
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, store.SetStrings(ctx, "recent_files", []string{"file:///a.txt", "file:///b.pit", "file:///a.txt"}))

			got, err := store.Strings(ctx, "recent_files")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"file:///a.txt", "file:///b.pit"}, got)
		})
	}
}

func TestStoresOverwriteFully(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetStrings(ctx, "k", []string{"one", "two"}))
			require.NoError(t, store.SetStrings(ctx, "k", []string{"three"}))

			got, err := store.Strings(ctx, "k")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"three"}, got)
		})
	}
}

func TestStoresKeepKeysApart(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetStrings(ctx, "left", []string{"l"}))
			require.NoError(t, store.SetStrings(ctx, "right", []string{"r"}))

			left, err := store.Strings(ctx, "left")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"l"}, left)
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recent.yaml")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.SetStrings(ctx, "recent_files", []string{"content://doc/1"}))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Strings(ctx, "recent_files")
	require.NoError(t, err)
	assert.Equal(t, []string{"content://doc/1"}, got)
}

func TestFileStoreReportsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recent_files: [unterminated"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Strings(context.Background(), "recent_files")
	assert.Error(t, err)
	assert.Error(t, store.SetStrings(context.Background(), "recent_files", []string{"x"}))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recent.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.SetStrings(ctx, "recent_files", []string{"b", "a"}))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Strings(ctx, "recent_files")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	assert.ErrorIs(t, store.SetStrings(ctx, "k", []string{"v"}), context.Canceled)
}

func TestNewSelectsBackend(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	dir := t.TempDir()

	store, err := New(BackendPreferences, "", a.Preferences())
	require.NoError(t, err)
	assert.IsType(t, &PreferencesStore{}, store)

	store, err = New(BackendFile, filepath.Join(dir, "r.yaml"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = New(BackendSQLite, filepath.Join(dir, "r.db"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	store.Close()

	store, err = New(BackendMemory, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = New("redis", "", nil)
	assert.ErrorIs(t, err, apperr.ErrUnknownBackend)

	_, err = New(BackendPreferences, "", nil)
	assert.Error(t, err)
}

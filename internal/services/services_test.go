package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-viewer/internal/apperr"
	"text-viewer/internal/logger"
	"text-viewer/internal/models"
	"text-viewer/internal/storage"
)

type fakeHost struct {
	names    map[string]string
	contents map[string]string
}

func (f *fakeHost) DisplayName(ref string) (string, error) {
	name, ok := f.names[ref]
	if !ok {
		return "", apperr.ErrNameResolutionFailed
	}
	return name, nil
}

func (f *fakeHost) ReadContent(_ context.Context, ref string) ([]byte, error) {
	content, ok := f.contents[ref]
	if !ok {
		return nil, errors.New("io failure")
	}
	return []byte(content), nil
}

type failingStore struct {
	storage.StringSetStore
}

func (failingStore) SetStrings(context.Context, string, []string) error {
	return errors.New("disk full")
}

func (failingStore) Strings(context.Context, string) ([]string, error) {
	return nil, errors.New("disk gone")
}

func newHost() *fakeHost {
	return &fakeHost{
		names: map[string]string{
			"ref-a": "a.txt",
			"ref-b": "b.pit",
			"ref-c": "c.gcode",
		},
		contents: map[string]string{
			"ref-a": "alpha",
		},
	}
}

func TestDisplayNameFallsBackToUnknown(t *testing.T) {
	fs := NewFileService(newHost(), newHost(), false, logger.NoOpLogger{})
	assert.Equal(t, "a.txt", fs.DisplayName("ref-a"))
	assert.Equal(t, models.UnknownName, fs.DisplayName("ref-missing"))
}

func TestValidate(t *testing.T) {
	fs := NewFileService(newHost(), newHost(), false, logger.NoOpLogger{})
	for _, name := range []string{"Report.TXT", "model.PIM", "x.Gcode"} {
		assert.NoError(t, fs.Validate(name), name)
	}
	assert.ErrorIs(t, fs.Validate("notes.md"), apperr.ErrUnsupportedFileType)
	assert.ErrorIs(t, fs.Validate(models.UnknownName), apperr.ErrUnsupportedFileType)
}

func TestReadLenientSwallowsFailure(t *testing.T) {
	h := newHost()
	fs := NewFileService(h, h, false, logger.NoOpLogger{})

	content, err := fs.Read(context.Background(), "ref-a")
	require.NoError(t, err)
	assert.Equal(t, "alpha", content)

	content, err = fs.Read(context.Background(), "ref-b")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestReadStrictReportsFailure(t *testing.T) {
	h := newHost()
	fs := NewFileService(h, h, true, logger.NoOpLogger{})

	_, err := fs.Read(context.Background(), "ref-b")
	assert.ErrorIs(t, err, apperr.ErrContentReadFailed)
	assert.True(t, fs.Strict())
}

func newRecent(store storage.StringSetStore, h *fakeHost) *RecentFilesService {
	return NewRecentFilesService(store, "recent_files", h, models.NewRecentFilesRepository(), logger.NoOpLogger{})
}

func TestSaveThenLoadIsSetEqual(t *testing.T) {
	ctx := context.Background()
	h := newHost()
	rs := newRecent(storage.NewMemoryStore(), h)

	list := models.RecentFilesList{
		{DisplayName: "a.txt", Reference: "ref-a"},
		{DisplayName: "b.pit", Reference: "ref-b"},
		{DisplayName: "c.gcode", Reference: "ref-c"},
	}
	require.NoError(t, rs.Save(ctx, list))

	// ref-b can no longer be resolved
	delete(h.names, "ref-b")

	got, err := rs.Load(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, models.RecentFilesList{list[0], list[2]}, got)
}

func TestLoadRecomputesDisplayName(t *testing.T) {
	ctx := context.Background()
	h := newHost()
	rs := newRecent(storage.NewMemoryStore(), h)

	require.NoError(t, rs.Save(ctx, models.RecentFilesList{{DisplayName: "old.txt", Reference: "ref-a"}}))

	got, err := rs.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RecentFilesList{{DisplayName: "a.txt", Reference: "ref-a"}}, got)
}

func TestRememberAppendsAndPersistsOnce(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	rs := newRecent(store, newHost())

	rec := models.FileRecord{DisplayName: "a.txt", Reference: "ref-a"}
	added, err := rs.Remember(ctx, rec)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = rs.Remember(ctx, rec)
	require.NoError(t, err)
	assert.False(t, added)

	stored, err := store.Strings(ctx, "recent_files")
	require.NoError(t, err)
	assert.Equal(t, []string{"ref-a"}, stored)
	assert.Equal(t, models.RecentFilesList{rec}, rs.List())
}

func TestRememberReportsPersistenceFailure(t *testing.T) {
	rs := newRecent(failingStore{}, newHost())

	rec := models.FileRecord{DisplayName: "a.txt", Reference: "ref-a"}
	added, err := rs.Remember(context.Background(), rec)
	assert.True(t, added)
	assert.ErrorIs(t, err, apperr.ErrPersistenceFailure)
	assert.Equal(t, models.RecentFilesList{rec}, rs.List())
}

func TestRestoreFillsRepository(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetStrings(ctx, "recent_files", []string{"ref-a", "ref-missing", "ref-c"}))

	repo := models.NewRecentFilesRepository()
	rs := NewRecentFilesService(store, "recent_files", newHost(), repo, logger.NoOpLogger{})

	_, err := rs.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())

	_, err = newRecent(failingStore{}, newHost()).Restore(ctx)
	assert.Error(t, err)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendToEmpty(t *testing.T) {
	r := FileRecord{DisplayName: "a.txt", Reference: "file:///a.txt"}
	assert.Equal(t, RecentFilesList{r}, Append(nil, r))
	assert.Equal(t, RecentFilesList{r}, Append(RecentFilesList{}, r))
}

func TestAppendExistingIsNoOp(t *testing.T) {
	a := FileRecord{DisplayName: "a.txt", Reference: "file:///a.txt"}
	b := FileRecord{DisplayName: "b.pit", Reference: "file:///b.pit"}
	list := RecentFilesList{a, b}

	// same reference, different name is still the same file
	got := Append(list, FileRecord{DisplayName: "renamed.txt", Reference: a.Reference})
	assert.Equal(t, list, got)
}

func TestAppendDoesNotAliasInput(t *testing.T) {
	a := FileRecord{DisplayName: "a.txt", Reference: "ref-a"}
	b := FileRecord{DisplayName: "b.txt", Reference: "ref-b"}
	list := make(RecentFilesList, 1, 4)
	list[0] = a

	got := Append(list, b)
	got[0].DisplayName = "changed"

	assert.Equal(t, "a.txt", list[0].DisplayName)
	assert.Len(t, list, 1)
	assert.Equal(t, RecentFilesList{{"changed", "ref-a"}, b}, got)
}

func TestIsAllowedName(t *testing.T) {
	for _, name := range []string{"Report.TXT", "model.PIM", "x.Gcode", "profile.pit", "a.b.txt"} {
		assert.True(t, IsAllowedName(name), name)
	}
	for _, name := range []string{"notes.md", "image.png", UnknownName, "txt", ".txt.bak", ""} {
		assert.False(t, IsAllowedName(name), name)
	}
}

func TestRepositoryAddNotifies(t *testing.T) {
	repo := NewRecentFilesRepository()
	var seen []RecentFilesList
	repo.OnChange(func(l RecentFilesList) { seen = append(seen, l) })

	r := FileRecord{DisplayName: "a.txt", Reference: "ref-a"}
	assert.True(t, repo.Add(r))
	assert.False(t, repo.Add(r))

	require.Len(t, seen, 1)
	assert.Equal(t, RecentFilesList{r}, seen[0])
	assert.Equal(t, 1, repo.Len())
}

func TestRepositoryReplaceDropsDuplicates(t *testing.T) {
	repo := NewRecentFilesRepository()
	a := FileRecord{DisplayName: "a.txt", Reference: "ref-a"}
	b := FileRecord{DisplayName: "b.txt", Reference: "ref-b"}

	repo.Replace(RecentFilesList{a, b, a})

	assert.Equal(t, RecentFilesList{a, b}, repo.List())
}

func TestRepositoryListIsSnapshot(t *testing.T) {
	repo := NewRecentFilesRepository()
	repo.Add(FileRecord{DisplayName: "a.txt", Reference: "ref-a"})

	snap := repo.List()
	snap[0].DisplayName = "mutated"

	assert.Equal(t, "a.txt", repo.List()[0].DisplayName)
}

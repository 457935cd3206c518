package models

import (
	"sync"
)

// RecentFilesList is insertion ordered with unique references
type RecentFilesList []FileRecord

// Contains reports whether a record with the given reference is present
func (l RecentFilesList) Contains(reference string) bool {
	for _, r := range l {
		if r.Reference == reference {
			return true
		}
	}
	return false
}

// References returns the references in list order
func (l RecentFilesList) References() []string {
	refs := make([]string, 0, len(l))
	for _, r := range l {
		refs = append(refs, r.Reference)
	}
	return refs
}

// Append returns a copy of list with record added at the end, or an unchanged
// copy when the reference is already present.
func Append(list RecentFilesList, record FileRecord) RecentFilesList {
	out := make(RecentFilesList, len(list), len(list)+1)
	copy(out, list)
	if list.Contains(record.Reference) {
		return out
	}
	return append(out, record)
}

// RecentFilesListener is notified with a snapshot after every change
type RecentFilesListener func(RecentFilesList)

// RecentFilesRepository owns the in-memory recent files state
type RecentFilesRepository struct {
	mu        sync.RWMutex
	list      RecentFilesList
	listeners []RecentFilesListener
}

// NewRecentFilesRepository creates an empty repository
func NewRecentFilesRepository() *RecentFilesRepository {
	return &RecentFilesRepository{
		list: make(RecentFilesList, 0),
	}
}

// List returns a snapshot of the current list
func (r *RecentFilesRepository) List() RecentFilesList {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(RecentFilesList, len(r.list))
	copy(out, r.list)
	return out
}

func (r *RecentFilesRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}

// Replace swaps the whole list, used after a load. Duplicate references are dropped.
func (r *RecentFilesRepository) Replace(list RecentFilesList) {
	r.mu.Lock()
	r.list = make(RecentFilesList, 0, len(list))
	for _, rec := range list {
		r.list = Append(r.list, rec)
	}
	snapshot := r.snapshotLocked()
	listeners := r.listenersLocked()
	r.mu.Unlock()

	r.notify(listeners, snapshot)
}

// Add appends record unless its reference is present. It reports whether the list changed.
func (r *RecentFilesRepository) Add(record FileRecord) bool {
	r.mu.Lock()
	if r.list.Contains(record.Reference) {
		r.mu.Unlock()
		return false
	}
	r.list = Append(r.list, record)
	snapshot := r.snapshotLocked()
	listeners := r.listenersLocked()
	r.mu.Unlock()

	r.notify(listeners, snapshot)
	return true
}

// OnChange registers a listener called after every change
func (r *RecentFilesRepository) OnChange(listener RecentFilesListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *RecentFilesRepository) snapshotLocked() RecentFilesList {
	out := make(RecentFilesList, len(r.list))
	copy(out, r.list)
	return out
}

func (r *RecentFilesRepository) listenersLocked() []RecentFilesListener {
	out := make([]RecentFilesListener, len(r.listeners))
	copy(out, r.listeners)
	return out
}

func (r *RecentFilesRepository) notify(listeners []RecentFilesListener, snapshot RecentFilesList) {
	for _, l := range listeners {
		l(snapshot)
	}
}

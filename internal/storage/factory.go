package storage

import (
	"fmt"

	"fyne.io/fyne/v2"

	"text-viewer/internal/apperr"
)

// Backend names accepted by New
const (
	BackendPreferences = "preferences"
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendMemory      = "memory"
)

// Backends lists every backend name New understands
var Backends = []string{BackendPreferences, BackendFile, BackendSQLite, BackendMemory}

// New creates the store for backend. prefs is only used by the preferences
// backend and path only by the file and sqlite backends.
func New(backend, path string, prefs fyne.Preferences) (StringSetStore, error) {
	switch backend {
	case BackendPreferences, "":
		if prefs == nil {
			return nil, fmt.Errorf("preferences backend: no preferences available")
		}
		return NewPreferencesStore(prefs), nil
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperr.ErrUnknownBackend, backend)
	}
}

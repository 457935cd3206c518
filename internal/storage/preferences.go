package storage

import (
	"context"

	"fyne.io/fyne/v2"
)

// PreferencesStore keeps sets in the platform preferences of the running
// Fyne app (NSUserDefaults, SharedPreferences or a JSON file on desktop).
type PreferencesStore struct {
	prefs fyne.Preferences
}

func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

func (p *PreferencesStore) Strings(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dedupe(p.prefs.StringList(key)), nil
}

// SetStrings writes through Fyne, which persists preferences itself and does
// not report write failures.
func (p *PreferencesStore) SetStrings(ctx context.Context, key string, values []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.prefs.SetStringList(key, dedupe(values))
	return nil
}

func (p *PreferencesStore) Close() error { return nil }

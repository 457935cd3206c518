// Package host wraps the platform services the file-open workflow depends
// on: the native file picker, name lookup and content reads.
package host

import "context"

// MIMEHints restrict the picker to text-like files while still allowing any file.
var MIMEHints = []string{"text/plain", "application/octet-stream", "*/*"}

// Picker asks the user to choose one file.
type Picker interface {
	// Pick blocks until the user chooses a file or cancels. Cancellation is
	// reported as apperr.ErrSelectionCancelled.
	Pick(ctx context.Context) (string, error)
}

// NameResolver turns an opaque reference into a display name.
type NameResolver interface {
	DisplayName(reference string) (string, error)
}

// ContentReader reads the full content behind a reference.
type ContentReader interface {
	ReadContent(ctx context.Context, reference string) ([]byte, error)
}

// Package apperr holds the sentinel errors shared across the file-open workflow.
package apperr

import "errors"

var (
	// ErrSelectionCancelled is returned when the user dismisses the picker.
	ErrSelectionCancelled = errors.New("selection cancelled")
	// ErrUnsupportedFileType is returned when a file name is not on the allow-list.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrNameResolutionFailed is returned when a reference cannot be resolved to a name.
	ErrNameResolutionFailed = errors.New("name resolution failed")
	// ErrContentReadFailed is returned when a file's content cannot be read.
	ErrContentReadFailed = errors.New("content read failed")
	// ErrPersistenceFailure is returned when the recent files cannot be written.
	ErrPersistenceFailure = errors.New("persistence failure")

	ErrPickerBusy     = errors.New("file picker already open")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

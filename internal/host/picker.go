package host

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"text-viewer/internal/apperr"
)

type pickResult struct {
	reference string
	err       error
}

// presenter shows a picker and returns a function that takes it down again.
// The callback may be invoked more than once or never.
type presenter func(callback func(fyne.URIReadCloser, error)) (dismiss func())

// FilePicker turns the callback based Fyne file dialog into a blocking call.
// Only one request may be outstanding at a time.
type FilePicker struct {
	present presenter

	mu      sync.Mutex
	pending chan pickResult
}

// NewFilePicker creates a picker that opens the native file dialog over window.
func NewFilePicker(window fyne.Window, hints []string) *FilePicker {
	filter := filterForHints(hints)

	return newFilePicker(func(callback func(fyne.URIReadCloser, error)) func() {
		var fd *dialog.FileDialog
		fyne.Do(func() {
			fd = dialog.NewFileOpen(callback, window)
			if filter != nil {
				fd.SetFilter(filter)
			}
			fd.Show()
		})
		return func() {
			fyne.Do(func() {
				if fd != nil {
					fd.Hide()
				}
			})
		}
	})
}

func newFilePicker(present presenter) *FilePicker {
	return &FilePicker{present: present}
}

// Pick must not be called from the Fyne UI goroutine.
func (p *FilePicker) Pick(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.pending != nil {
		p.mu.Unlock()
		return "", apperr.ErrPickerBusy
	}
	result := make(chan pickResult, 1)
	p.pending = result
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.pending = nil
		p.mu.Unlock()
	}()

	dismiss := p.present(func(reader fyne.URIReadCloser, err error) {
		res := pickResult{err: err}
		if reader != nil {
			res.reference = reader.URI().String()
			reader.Close()
		}
		select {
		case result <- res:
		default:
		}
	})

	select {
	case res := <-result:
		if res.err != nil {
			return "", fmt.Errorf("file picker: %w", res.err)
		}
		if res.reference == "" {
			return "", apperr.ErrSelectionCancelled
		}
		return res.reference, nil
	case <-ctx.Done():
		if dismiss != nil {
			dismiss()
		}
		return "", ctx.Err()
	}
}

// Busy reports whether a pick request is outstanding
func (p *FilePicker) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// filterForHints returns nil when any hint is the full wildcard, since the
// Fyne MIME filter cannot express it.
func filterForHints(hints []string) storage.FileFilter {
	if len(hints) == 0 {
		return nil
	}
	for _, h := range hints {
		if strings.TrimSpace(h) == "*/*" {
			return nil
		}
	}
	return storage.NewMimeTypeFileFilter(hints)
}

package host

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/storage/repository"

	"text-viewer/internal/apperr"
)

// Storage resolves and reads references through the Fyne storage
// repositories, so file:// works on desktop and content:// on Android.
type Storage struct{}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) DisplayName(reference string) (string, error) {
	uri, err := storage.ParseURI(reference)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrNameResolutionFailed, err)
	}

	exists, err := storage.Exists(uri)
	switch {
	case errors.Is(err, repository.ErrOperationNotSupported):
		// some providers cannot answer, the name is still usable
	case err != nil:
		return "", fmt.Errorf("%w: %v", apperr.ErrNameResolutionFailed, err)
	case !exists:
		return "", fmt.Errorf("%w: %s does not exist", apperr.ErrNameResolutionFailed, reference)
	}

	name := uri.Name()
	if name == "" {
		return "", fmt.Errorf("%w: %s has no name", apperr.ErrNameResolutionFailed, reference)
	}
	return name, nil
}

func (s *Storage) ReadContent(ctx context.Context, reference string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uri, err := storage.ParseURI(reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrContentReadFailed, err)
	}

	reader, err := storage.Reader(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrContentReadFailed, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrContentReadFailed, err)
	}
	return data, nil
}

// LocalPath returns the filesystem path behind a file:// reference.
func LocalPath(reference string) (string, bool) {
	uri, err := storage.ParseURI(reference)
	if err != nil || uri.Scheme() != "file" {
		return "", false
	}
	return uri.Path(), true
}

package services

import (
	"context"
	"fmt"

	"text-viewer/internal/apperr"
	"text-viewer/internal/host"
	"text-viewer/internal/logger"
	"text-viewer/internal/models"
)

const filesComponent = "FileService"

// FileService resolves, validates and reads files picked by the user
type FileService struct {
	resolver host.NameResolver
	reader   host.ContentReader
	strict   bool
	logger   logger.Logger
}

// NewFileService creates a file service. In strict mode read failures are
// returned to the caller, otherwise they are logged and yield empty content.
func NewFileService(resolver host.NameResolver, reader host.ContentReader, strict bool, log logger.Logger) *FileService {
	return &FileService{
		resolver: resolver,
		reader:   reader,
		strict:   strict,
		logger:   log,
	}
}

// DisplayName resolves reference, falling back to models.UnknownName
func (fs *FileService) DisplayName(reference string) string {
	name, err := fs.resolver.DisplayName(reference)
	if err != nil {
		fs.logger.Warning(filesComponent, "name lookup failed", map[string]interface{}{
			"reference": reference,
			"error":     err.Error(),
		})
		return models.UnknownName
	}
	return name
}

// Validate checks name against the extension allow-list
func (fs *FileService) Validate(name string) error {
	if !models.IsAllowedName(name) {
		return fmt.Errorf("%w: %s", apperr.ErrUnsupportedFileType, name)
	}
	return nil
}

// Read returns the full content behind reference as a string
func (fs *FileService) Read(ctx context.Context, reference string) (string, error) {
	data, err := fs.reader.ReadContent(ctx, reference)
	if err == nil {
		fs.logger.Debug(filesComponent, "file read", map[string]interface{}{
			"reference":  reference,
			"size_bytes": len(data),
		})
		return string(data), nil
	}

	fs.logger.Error(filesComponent, err, map[string]interface{}{
		"reference": reference,
		"strict":    fs.strict,
	})
	if fs.strict {
		return "", fmt.Errorf("%w: %v", apperr.ErrContentReadFailed, err)
	}
	return "", nil
}

// Strict reports whether read failures are returned
func (fs *FileService) Strict() bool {
	return fs.strict
}

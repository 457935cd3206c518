package models

import (
	"path/filepath"
	"strings"
)

// UnknownName is shown when a reference cannot be resolved to a file name
const UnknownName = "Unknown"

// AllowedExtensions lists the file name extensions the viewer accepts
var AllowedExtensions = []string{".txt", ".pim", ".pit", ".gcode"}

// FileRecord identifies a previously or currently opened file.
// Two records are the same file when their references match.
type FileRecord struct {
	DisplayName string
	Reference   string
}

// SameFile reports whether both records point at the same reference
func (r FileRecord) SameFile(other FileRecord) bool {
	return r.Reference == other.Reference
}

// OpenResult is what a completed file-open workflow hands to the display
type OpenResult struct {
	Record  FileRecord
	Content string
	Added   bool
}

// IsAllowedName checks the extension of name against AllowedExtensions, ignoring case.
func IsAllowedName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

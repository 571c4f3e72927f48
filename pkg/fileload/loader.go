package fileload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Common errors
var (
	// ErrNotRegular indicates the path exists but is not a regular file
	ErrNotRegular = errors.New("not a regular file")
)

// Loader reads a file fully into memory. It is an interface so the dispatcher
// can be tested with doubles that fail or return fixed content.
type Loader interface {
	// Load returns the complete contents of the named file
	Load(path string) ([]byte, error)
}

// OSLoader reads files from the local filesystem
type OSLoader struct{}

// NewOSLoader creates a loader backed by the local filesystem
func NewOSLoader() *OSLoader {
	return &OSLoader{}
}

// Load reads the content of a file and returns it as a byte slice.
// The returned slice's length is the file's size.
func (l *OSLoader) Load(path string) ([]byte, error) {
	// Convert to absolute path if it's a relative path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Check if file exists and is readable
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}

	// Check if it's a regular file
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, absPath)
	}

	// Read file content
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

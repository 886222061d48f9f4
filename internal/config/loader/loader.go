// Package loader reads dataset files and environment variables into generic
// maps.
//
// The format of a file is chosen by its extension: TOML (.toml), YAML (.yaml,
// .yml) or JSON (.json). Environment variables with the ORDERLY_ prefix are
// mapped onto dotted setting paths.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat indicates a file extension with no registered format.
var ErrUnknownFormat = errors.New("unknown file format")

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads configuration from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// testing/fstest.MapFS satisfies it for in-memory tests.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader loads one file in a fixed format.
type FileLoader struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFileLoader creates a loader for path, choosing the format from its
// extension.
func NewFileLoader(fsys FileSystem, path string) (*FileLoader, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &FileLoader{fs: fsys, path: path, format: format}, nil
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string {
	return l.path
}

// Format returns the file format.
func (l *FileLoader) Format() Format {
	return l.format
}

// Load reads and parses the file.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading %s: %w", l.path, err)
	}
	return l.format.parse(l.path, data)
}

// LoadFromReader parses the content of r in the loader's format.
func (l *FileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", l.format, err)
	}
	return l.format.parse("<reader>", data)
}

// FormatFor returns the format registered for path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Package file provides a storage.Document backed by a single JSON file on
// the local filesystem. This is the default storage driver.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const emptyCollection = "[]"

// File is a JSON document at Path.
type File struct {
	Path string
}

// New returns a File for path, creating its parent directory if needed.
// The file itself is created lazily on the first Load.
func New(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file.New: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file.New: create directory: %w", err)
	}
	return &File{Path: path}, nil
}

// Load reads the file, initialising it with `[]` when it does not exist.
func (f *File) Load() ([]byte, error) {
	body, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := f.Save([]byte(emptyCollection)); err != nil {
			return nil, err
		}
		return []byte(emptyCollection), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return body, nil
}

// Save writes body to a temporary file next to Path and renames it into
// place, so a concurrent reader sees either the old or the new document.
func (f *File) Save(body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}

// Close is a no-op; the file is opened and closed on every call.
func (f *File) Close() error { return nil }

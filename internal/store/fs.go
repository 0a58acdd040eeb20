// Package store persists users, items and image assets as plain files under
// a single shared data directory: users.json (object keyed by username),
// items.json (array in insertion order), an images/ tree for uploads and a
// next_id counter file.
//
// Every mutation is a full-file load–mutate–save cycle guarded by a
// per-store mutex, so writers within one process cannot clobber each other.
// Separate processes sharing a data directory are not serialized; see
// DESIGN.md for the accepted cross-process race.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Names under the data directory.
const (
	usersFile   = "users.json"
	itemsFile   = "items.json"
	counterFile = "next_id"
	imagesDir   = "images"
	thumbsDir   = "thumbs"
)

// FS resolves paths under the data directory and guarantees the on-disk
// skeleton exists before any store reads it.
type FS struct {
	dataDir string
}

// NewFS returns an FS rooted at dataDir. Nothing is created until
// EnsureInitialized runs.
func NewFS(dataDir string) *FS {
	return &FS{dataDir: dataDir}
}

// DataDir returns the root of the shared storage directory.
func (f *FS) DataDir() string { return f.dataDir }

// UsersPath returns the path of the credential map file.
func (f *FS) UsersPath() string { return filepath.Join(f.dataDir, usersFile) }

// ItemsPath returns the path of the item collection file.
func (f *FS) ItemsPath() string { return filepath.Join(f.dataDir, itemsFile) }

// ImagesDir returns the directory uploaded images are stored in.
func (f *FS) ImagesDir() string { return filepath.Join(f.dataDir, imagesDir) }

// ThumbsDir returns the directory thumbnail renditions are stored in.
func (f *FS) ThumbsDir() string { return filepath.Join(f.dataDir, imagesDir, thumbsDir) }

func (f *FS) counterPath() string { return filepath.Join(f.dataDir, counterFile) }

// EnsureInitialized creates the data directory, the image directories and
// empty store files where absent. It is idempotent and cheap, so stores call
// it before every load instead of relying on a separate startup phase.
func (f *FS) EnsureInitialized() error {
	if err := os.MkdirAll(f.ThumbsDir(), 0o755); err != nil {
		return fmt.Errorf("creating image directories: %w", err)
	}
	if err := writeIfAbsent(f.UsersPath(), []byte("{}")); err != nil {
		return fmt.Errorf("creating empty user store: %w", err)
	}
	if err := writeIfAbsent(f.ItemsPath(), []byte("[]")); err != nil {
		return fmt.Errorf("creating empty item store: %w", err)
	}
	return nil
}

// writeIfAbsent writes content to path only when no file exists there yet.
func writeIfAbsent(path string, content []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

// readJSON bootstraps the skeleton and loads the whole file at path into target.
func (f *FS) readJSON(path string, target any) error {
	if err := f.EnsureInitialized(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON replaces the file at path with the indented JSON encoding of
// value, matching the layout existing data directories were written with.
func (f *FS) writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return replaceFile(path, data)
}

// replaceFile writes data to a temp file in the target directory and renames
// it over path, so concurrent readers never observe a torn write.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

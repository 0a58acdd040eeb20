package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Assets stores uploaded images under the images directory. Files are named
// {YYYYMMDDHHMMSS}_{hash8}{ext}, where hash8 is the first 8 hex characters
// of the SHA-256 of the content and ext is the original extension. Two
// identical uploads within the same second collide on the same name and
// overwrite each other with identical bytes.
type Assets struct {
	fs *FS

	// now is swapped out in tests to pin the timestamp part of names.
	now func() time.Time
}

// NewAssets returns an asset store backed by fs.
func NewAssets(fs *FS) *Assets {
	return &Assets{fs: fs, now: time.Now}
}

// Store writes content under a content- and time-derived name and returns
// the path exactly as it is persisted in items.json. Empty content is a
// no-op returning an empty path.
func (s *Assets) Store(content []byte, originalFilename string) (string, error) {
	if len(content) == 0 {
		return "", nil
	}
	if err := s.fs.EnsureInitialized(); err != nil {
		return "", err
	}

	sum := sha256.Sum256(content)
	name := fmt.Sprintf("%s_%s%s",
		s.now().Format("20060102150405"),
		hex.EncodeToString(sum[:])[:8],
		filepath.Ext(originalFilename),
	)

	path := filepath.Join(s.fs.ImagesDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing asset: %w", err)
	}
	return path, nil
}

// StoreThumbnail writes a JPEG rendition for the asset at assetPath into the
// thumbs directory, under the asset's base name with a .jpg extension.
func (s *Assets) StoreThumbnail(assetPath string, jpegContent []byte) (string, error) {
	path := s.thumbPath(assetPath)
	if err := os.WriteFile(path, jpegContent, 0o644); err != nil {
		return "", fmt.Errorf("writing thumbnail: %w", err)
	}
	return path, nil
}

// Remove deletes the asset at assetPath along with its thumbnail. Missing
// files are not errors, so removing an already-gone asset is a no-op.
func (s *Assets) Remove(assetPath string) error {
	if err := os.Remove(assetPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing asset: %w", err)
	}
	if err := os.Remove(s.thumbPath(assetPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing thumbnail: %w", err)
	}
	return nil
}

func (s *Assets) thumbPath(assetPath string) string {
	base := strings.TrimSuffix(filepath.Base(assetPath), filepath.Ext(assetPath))
	return filepath.Join(s.fs.ThumbsDir(), base+".jpg")
}

package store

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func newTestAssets(t *testing.T) *Assets {
	t.Helper()
	assets := NewAssets(newTestFS(t))
	assets.now = func() time.Time {
		return time.Date(2026, 8, 29, 12, 30, 45, 0, time.UTC)
	}
	return assets
}

func TestStoreAssetNameFormat(t *testing.T) {
	assets := newTestAssets(t)

	path, err := assets.Store([]byte("fake image content"), "photo.png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	name := filepath.Base(path)
	pattern := regexp.MustCompile(`^20260829123045_[0-9a-f]{8}\.png$`)
	if !pattern.MatchString(name) {
		t.Errorf("asset name %q does not match {timestamp}_{hash8}{ext}", name)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored asset: %v", err)
	}
	if string(content) != "fake image content" {
		t.Errorf("stored content altered: %q", content)
	}
}

func TestStoreAssetDeterministicHash(t *testing.T) {
	assets := newTestAssets(t)

	first, err := assets.Store([]byte("same bytes"), "a.jpg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	second, err := assets.Store([]byte("same bytes"), "b.jpg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Same content, same second, same extension would collide; here only the
	// extension differs, so the hash part must match.
	if filepath.Base(first)[:23] != filepath.Base(second)[:23] {
		t.Errorf("expected identical timestamp and hash, got %q and %q", first, second)
	}
}

func TestStoreEmptyContentIsNoOp(t *testing.T) {
	assets := newTestAssets(t)

	path, err := assets.Store(nil, "photo.png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path for empty content, got %q", path)
	}
}

func TestThumbnailLifecycle(t *testing.T) {
	assets := newTestAssets(t)

	path, err := assets.Store([]byte("original bytes"), "photo.png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	thumb, err := assets.StoreThumbnail(path, []byte("jpeg bytes"))
	if err != nil {
		t.Fatalf("StoreThumbnail: %v", err)
	}
	if filepath.Ext(thumb) != ".jpg" {
		t.Errorf("expected .jpg thumbnail, got %q", thumb)
	}
	if _, err := os.Stat(thumb); err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}

	if err := assets.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected asset to be removed")
	}
	if _, err := os.Stat(thumb); !os.IsNotExist(err) {
		t.Error("expected thumbnail to be removed with the asset")
	}

	// Removing again is a no-op.
	if err := assets.Remove(path); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

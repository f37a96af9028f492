package library

import (
	"path/filepath"
	"testing"
)

func TestPhotosLibraryPaths(t *testing.T) {
	lib := New("/photos/Library.photoslibrary")

	if got, want := lib.DatabasePath(), filepath.Join("/photos/Library.photoslibrary", "database", "Photos.sqlite"); got != want {
		t.Errorf("expected database path %s, got %s", want, got)
	}
	if got, want := lib.OriginalsPath(), filepath.Join("/photos/Library.photoslibrary", "originals"); got != want {
		t.Errorf("expected originals path %s, got %s", want, got)
	}
}

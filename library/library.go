// Package library describes the on-disk layout of a macOS Photos library
// bundle.
package library

import "path/filepath"

// PhotosLibrary points at a Photos library bundle on disk.
type PhotosLibrary struct {
	Path string
}

// New returns a PhotosLibrary rooted at the given bundle path.
func New(path string) PhotosLibrary {
	return PhotosLibrary{Path: path}
}

// DatabasePath returns the path of the Photos.sqlite database file inside the
// library bundle.
func (l PhotosLibrary) DatabasePath() string {
	return filepath.Join(l.Path, "database", "Photos.sqlite")
}

// OriginalsPath returns the root of the tree that stores the asset files,
// keyed by each asset's directory and filename columns.
func (l PhotosLibrary) OriginalsPath() string {
	return filepath.Join(l.Path, "originals")
}

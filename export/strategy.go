// Package export computes destination layouts for assets and copies them out
// of the library.
package export

import (
	"strings"
	"time"

	"github.com/lgraf/photos-export/database"
)

// DateSelector picks the date a year/month layout is derived from.
type DateSelector int

const (
	// AssetDate uses the asset's own creation date.
	AssetDate DateSelector = iota
	// AlbumOrAssetDate uses the album start date when the asset is in an
	// album, falling back to the asset's creation date.
	AlbumOrAssetDate
)

type strategyKind int

const (
	kindPlain strategyKind = iota
	kindAlbum
	kindYearMonth
	kindJoining
)

// Strategy maps an asset to the relative directory it is exported to. The
// result never starts with a separator and degrades to the empty string when
// optional asset data is missing.
type Strategy struct {
	kind     strategyKind
	flatten  bool
	selector DateSelector
	parts    []Strategy
}

// Plain places every asset at the root of the destination.
func Plain() Strategy {
	return Strategy{kind: kindPlain}
}

// Album mirrors the album hierarchy; with flatten set, only the innermost
// album name is used.
func Album(flatten bool) Strategy {
	return Strategy{kind: kindAlbum, flatten: flatten}
}

// YearMonth groups assets into YYYY/MM/ directories derived from the
// selected date.
func YearMonth(selector DateSelector) Strategy {
	return Strategy{kind: kindYearMonth, selector: selector}
}

// Joining concatenates the directories of the given strategies in order.
// Empty segments contribute nothing.
func Joining(parts ...Strategy) Strategy {
	return Strategy{kind: kindJoining, parts: parts}
}

// RelativeOutputDir returns the relative output directory for the given
// asset.
func (s Strategy) RelativeOutputDir(asset database.AssetWithAlbumInfo) string {
	switch s.kind {
	case kindAlbum:
		return albumDir(asset, s.flatten)
	case kindYearMonth:
		return s.selectDate(asset).Format("2006/01") + "/"
	case kindJoining:
		var out strings.Builder
		for _, part := range s.parts {
			segment := part.RelativeOutputDir(asset)
			if segment == "" {
				continue
			}
			if out.Len() > 0 && !strings.HasSuffix(out.String(), "/") {
				out.WriteString("/")
			}
			out.WriteString(segment)
		}
		return out.String()
	default:
		return ""
	}
}

func (s Strategy) selectDate(asset database.AssetWithAlbumInfo) time.Time {
	if s.selector == AlbumOrAssetDate && asset.AlbumStartDate != nil {
		return *asset.AlbumStartDate
	}
	return asset.Date
}

func albumDir(asset database.AssetWithAlbumInfo, flatten bool) string {
	if asset.AlbumPath == nil {
		return ""
	}

	albumPath := *asset.AlbumPath
	if flatten && albumPath != "" {
		segments := strings.Split(strings.TrimSuffix(albumPath, "/"), "/")
		return segments[len(segments)-1]
	}
	return albumPath
}

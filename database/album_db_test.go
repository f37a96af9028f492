package database

import (
	"testing"
	"time"
)

func TestListAlbums_FiltersAndOrders(t *testing.T) {
	seed, dbPath := setupTestStore(t)

	// root -> folder -> two albums, one undated
	insertAlbum(t, seed, 1, int(KindRoot), nil, nil, nil, 0)
	insertAlbum(t, seed, 2, int(KindUserFolder), "Trips", 100.0, 1, 0)
	insertAlbum(t, seed, 3, int(KindUserAlbum), "Paris", 200.0, 2, 0)
	insertAlbum(t, seed, 4, int(KindUserAlbum), "Undated", nil, 2, 0)
	// system album and trashed album must never be surfaced
	insertAlbum(t, seed, 5, 999, "Smart Things", 50.0, 1, 0)
	insertAlbum(t, seed, 6, int(KindUserAlbum), "Deleted", 50.0, 1, 1)

	insertAsset(t, seed, 10, "A", "IMG_1.HEIC", 300.0)
	mapAssetToAlbum(t, seed, 3, 10)

	db := openReadOnly(t, dbPath)
	albums, err := ListAlbums(db)
	if err != nil {
		t.Fatalf("ListAlbums failed: %v", err)
	}

	t.Run("unknown kinds and trashed albums are excluded", func(t *testing.T) {
		for _, a := range albums {
			if a.ID == 5 || a.ID == 6 {
				t.Errorf("album %d should not be listed", a.ID)
			}
		}
		if len(albums) != 4 {
			t.Fatalf("expected 4 albums, got %d", len(albums))
		}
	})

	t.Run("undated albums sort first", func(t *testing.T) {
		// NULL start dates come first in ascending store order
		if albums[0].ID != 1 && albums[0].ID != 4 {
			t.Errorf("expected an undated album first, got id %d", albums[0].ID)
		}
		var parisIdx, undatedIdx int
		for i, a := range albums {
			switch a.ID {
			case 3:
				parisIdx = i
			case 4:
				undatedIdx = i
			}
		}
		if undatedIdx > parisIdx {
			t.Errorf("undated album listed after dated one (%d > %d)", undatedIdx, parisIdx)
		}
	})

	t.Run("asset counts are per album, not recursive", func(t *testing.T) {
		for _, a := range albums {
			want := int64(0)
			if a.ID == 3 {
				want = 1
			}
			if a.AssetCount != want {
				t.Errorf("album %d: expected asset count %d, got %d", a.ID, want, a.AssetCount)
			}
		}
	})

	t.Run("start dates are converted from the Cocoa epoch", func(t *testing.T) {
		for _, a := range albums {
			if a.ID != 3 {
				continue
			}
			want := time.Date(2001, 1, 1, 0, 3, 20, 0, time.UTC)
			if a.StartDate == nil || !a.StartDate.Equal(want) {
				t.Errorf("expected start date %v, got %v", want, a.StartDate)
			}
		}
	})

	t.Run("root has no parent", func(t *testing.T) {
		for _, a := range albums {
			if a.ID == 1 && a.ParentID != nil {
				t.Errorf("expected root to have nil parent, got %d", *a.ParentID)
			}
		}
	})
}

func TestGetAssetCounts(t *testing.T) {
	seed, dbPath := setupTestStore(t)

	insertAlbum(t, seed, 1, int(KindUserAlbum), "Paris", 100.0, nil, 0)
	insertAlbum(t, seed, 2, int(KindUserAlbum), "Rome", 100.0, nil, 0)

	insertAsset(t, seed, 10, "A", "IMG_1.HEIC", 100.0)
	insertAsset(t, seed, 11, "A", "IMG_2.HEIC", 100.0)
	insertAsset(t, seed, 12, "A", "IMG_3.HEIC", 100.0)
	mapAssetToAlbum(t, seed, 1, 10)

	db := openReadOnly(t, dbPath)

	counts, err := GetAssetCounts(db)
	if err != nil {
		t.Fatalf("GetAssetCounts failed: %v", err)
	}

	if counts.Total != 3 {
		t.Errorf("expected total of 3, got %d", counts.Total)
	}
	if counts.Album != 1 {
		t.Errorf("expected album count of 1, got %d", counts.Album)
	}

	t.Run("multi-album membership inflates the album count", func(t *testing.T) {
		// kept for compatibility with the original arithmetic
		mapAssetToAlbum(t, seed, 2, 10)

		counts, err := GetAssetCounts(db)
		if err != nil {
			t.Fatalf("GetAssetCounts failed: %v", err)
		}
		if counts.Album != 2 {
			t.Errorf("expected album count of 2, got %d", counts.Album)
		}
	})
}

package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lgraf/photos-export/cocoa"
)

// AlbumKind is the ZKIND code of a row in ZGENERICALBUM. The codes below are
// the user-visible kinds reverse-engineered from the Photos database; all
// other codes denote system albums and are never surfaced.
type AlbumKind int

const (
	KindUserAlbum  AlbumKind = 2
	KindRoot       AlbumKind = 3999
	KindUserFolder AlbumKind = 4000
)

var userVisibleKinds = []int{int(KindUserAlbum), int(KindRoot), int(KindUserFolder)}

// Album is a user-visible album or folder from the library.
type Album struct {
	ID         int64
	Kind       AlbumKind
	ParentID   *int64
	Name       string
	StartDate  *time.Time
	AssetCount int64
}

// AssetCount holds the total number of assets in the library and the number
// of album-to-asset mappings.
type AssetCount struct {
	Total int64
	Album int64
}

// ListAlbums returns all user-created albums and folders, including the
// synthetic root. System albums and trashed rows are excluded. Results are
// ordered by the raw start-date column, undated rows first.
func ListAlbums(db *sql.DB) ([]Album, error) {
	queryBuilder := psql.Select(
		"album.Z_PK",
		"album.ZKIND",
		"album.ZTITLE",
		"album.ZSTARTDATE",
		"album.ZPARENTFOLDER",
		"(SELECT COUNT(*) FROM Z_28ASSETS mapping WHERE mapping.Z_28ALBUMS = album.Z_PK) AS ASSET_COUNT").
		From("ZGENERICALBUM album").
		Where(sq.Eq{"album.ZKIND": userVisibleKinds}).
		Where(sq.Eq{"album.ZTRASHEDSTATE": 0}).
		OrderBy("album.ZSTARTDATE")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListAlbums: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListAlbums query: %w", err)
	}
	defer rows.Close()

	albums := []Album{}
	for rows.Next() {
		var (
			a         Album
			kind      int
			title     sql.NullString
			startDate sql.NullFloat64
			parentID  sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &kind, &title, &startDate, &parentID, &a.AssetCount); err != nil {
			return nil, fmt.Errorf("failed to scan album row: %w", err)
		}

		a.Kind = AlbumKind(kind)
		a.Name = title.String
		if parentID.Valid {
			id := parentID.Int64
			a.ParentID = &id
		}
		if startDate.Valid && startDate.Float64 != 0 {
			t := cocoa.TimestampToTime(startDate.Float64)
			a.StartDate = &t
		}

		albums = append(albums, a)
	}

	if err := rows.Err(); err != nil {
		return albums, fmt.Errorf("error iterating album rows: %w", err)
	}

	return albums, nil
}

// GetAssetCounts returns the number of asset rows in the library and the
// number of rows that have at least one album mapping. The album count is
// taken from a left-joined mapping column and therefore counts an asset once
// per album it belongs to; this matches the arithmetic of earlier versions.
func GetAssetCounts(db *sql.DB) (AssetCount, error) {
	queryBuilder := psql.Select(
		"COUNT(assets.Z_PK) AS ASSET_CNT_TOTAL",
		"COUNT(album_mapping.Z_3ASSETS) AS ASSET_CNT_ALBUM").
		From("ZASSET assets").
		LeftJoin("Z_28ASSETS album_mapping ON assets.Z_PK = album_mapping.Z_3ASSETS").
		Where(sq.Eq{"assets.ZTRASHEDSTATE": 0})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return AssetCount{}, fmt.Errorf("failed to build SQL for GetAssetCounts: %w", err)
	}

	var counts AssetCount
	if err := db.QueryRow(sqlStr, args...).Scan(&counts.Total, &counts.Album); err != nil {
		return AssetCount{}, fmt.Errorf("failed to query asset counts: %w", err)
	}

	return counts, nil
}

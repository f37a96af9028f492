package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/lgraf/photos-export/cocoa"
)

// HiddenAlbumOutputDir is the synthetic album path assigned to hidden assets
// so that album-based layouts keep them apart from regular exports.
const HiddenAlbumOutputDir = "_hidden"

// AssetWithAlbumInfo is one exportable asset row joined with the path of the
// album it belongs to. An asset that is in several albums produces one row
// per album; an asset that is in no album produces a single row with nil
// album fields.
type AssetWithAlbumInfo struct {
	ID               int64
	Directory        string
	Filename         string
	OriginalFilename string
	Date             time.Time
	AlbumPath        *string
	AlbumStartDate   *time.Time
}

// albumPathCTE materializes the full slash-terminated path of every
// non-trashed album row, regardless of kind; the kind filter is applied at
// the join below. Trashed folders are pruned from the recursion, so rows
// underneath them resolve to a NULL path.
const albumPathCTE = `WITH RECURSIVE ALBUM_PATH_CTE AS (
	SELECT Z_PK
	     , ZPARENTFOLDER
	     , '' AS path
	FROM ZGENERICALBUM
	WHERE ZGENERICALBUM.ZPARENTFOLDER IS NULL

UNION ALL

	SELECT child.Z_PK
	     , child.ZPARENTFOLDER
	     , printf('%s%s/', album.path, child.ZTITLE) AS path
	FROM ZGENERICALBUM child
	JOIN ALBUM_PATH_CTE album
	  ON album.Z_PK = child.ZPARENTFOLDER
	WHERE child.ZTRASHEDSTATE = 0
)`

// ListAssetsWithAlbumInfo returns every non-trashed asset joined with its
// original filename and the materialized path of each album it belongs to.
// Albums whose primary key appears in excludedAlbumIDs are treated like a
// join miss: the asset row survives with nil album fields.
//
// The kind and exclusion filters apply to the album side of the join, not to
// the joined rows: an asset whose only album memberships are filtered out
// still yields exactly one row, with nil album fields.
func ListAssetsWithAlbumInfo(db *sql.DB, excludedAlbumIDs []int64) ([]AssetWithAlbumInfo, error) {
	qualifyingAlbums := psql.Select(
		"album_mapping.Z_3ASSETS AS ASSET_ID",
		"album.ZSTARTDATE AS ALBUM_START_DATE",
		"album_path.path AS ALBUM_PATH").
		From("Z_28ASSETS album_mapping").
		Join("ZGENERICALBUM album ON album_mapping.Z_28ALBUMS = album.Z_PK").
		LeftJoin("ALBUM_PATH_CTE album_path ON album.Z_PK = album_path.Z_PK").
		Where(sq.Eq{"album.ZKIND": userVisibleKinds})

	if len(excludedAlbumIDs) > 0 {
		qualifyingAlbums = qualifyingAlbums.Where(sq.NotEq{"album.Z_PK": excludedAlbumIDs})
	}

	subSQL, subArgs, err := qualifyingAlbums.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build album subquery for ListAssetsWithAlbumInfo: %w", err)
	}

	queryBuilder := psql.Select(
		"assets.Z_PK AS ASSET_ID",
		"assets.ZDIRECTORY AS ASSET_DIRECTORY",
		"assets.ZFILENAME AS ASSET_FILENAME",
		"attribs.ZORIGINALFILENAME AS ASSET_ORIGINAL_FILENAME",
		"assets.ZDATECREATED AS ASSET_DATE",
		"album_info.ALBUM_PATH",
		"album_info.ALBUM_START_DATE").
		From("ZASSET assets").
		LeftJoin("ZADDITIONALASSETATTRIBUTES attribs ON assets.Z_PK = attribs.ZASSET").
		LeftJoin("("+subSQL+") album_info ON assets.Z_PK = album_info.ASSET_ID", subArgs...).
		Where(sq.Eq{"assets.ZTRASHEDSTATE": 0}).
		Prefix(albumPathCTE)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListAssetsWithAlbumInfo: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListAssetsWithAlbumInfo query: %w", err)
	}
	defer rows.Close()

	return scanAssetRows(rows)
}

// ListHiddenAssets returns all assets the user marked as hidden. They are not
// part of the regular album join; each row is assigned the fixed
// HiddenAlbumOutputDir album path instead.
func ListHiddenAssets(db *sql.DB) ([]AssetWithAlbumInfo, error) {
	queryBuilder := psql.Select(
		"assets.Z_PK AS ASSET_ID",
		"assets.ZDIRECTORY AS ASSET_DIRECTORY",
		"assets.ZFILENAME AS ASSET_FILENAME",
		"attribs.ZORIGINALFILENAME AS ASSET_ORIGINAL_FILENAME",
		"assets.ZDATECREATED AS ASSET_DATE").
		From("ZASSET assets").
		LeftJoin("ZADDITIONALASSETATTRIBUTES attribs ON assets.Z_PK = attribs.ZASSET").
		Where(sq.Eq{"assets.ZHIDDEN": 1}).
		Where(sq.Eq{"assets.ZTRASHEDSTATE": 0})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListHiddenAssets: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListHiddenAssets query: %w", err)
	}
	defer rows.Close()

	assets := []AssetWithAlbumInfo{}
	for rows.Next() {
		var (
			a            AssetWithAlbumInfo
			originalName sql.NullString
			date         sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.Directory, &a.Filename, &originalName, &date); err != nil {
			return nil, fmt.Errorf("failed to scan hidden asset row: %w", err)
		}

		a.OriginalFilename = originalName.String
		if date.Valid {
			a.Date = cocoa.TimestampToTime(date.Float64)
		}
		hiddenPath := HiddenAlbumOutputDir + "/"
		a.AlbumPath = &hiddenPath

		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return assets, fmt.Errorf("error iterating hidden asset rows: %w", err)
	}

	return assets, nil
}

func scanAssetRows(rows *sql.Rows) ([]AssetWithAlbumInfo, error) {
	assets := []AssetWithAlbumInfo{}
	for rows.Next() {
		var (
			a              AssetWithAlbumInfo
			originalName   sql.NullString
			date           sql.NullFloat64
			albumPath      sql.NullString
			albumStartDate sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.Directory, &a.Filename, &originalName, &date, &albumPath, &albumStartDate); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}

		a.OriginalFilename = originalName.String
		if date.Valid {
			a.Date = cocoa.TimestampToTime(date.Float64)
		}
		if albumPath.Valid {
			path := albumPath.String
			a.AlbumPath = &path
		}
		if albumStartDate.Valid && albumStartDate.Float64 != 0 {
			t := cocoa.TimestampToTime(albumStartDate.Float64)
			a.AlbumStartDate = &t
		}

		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return assets, fmt.Errorf("error iterating asset rows: %w", err)
	}

	return assets, nil
}

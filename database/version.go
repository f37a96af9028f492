package database

import (
	"database/sql"
	"fmt"

	"howett.net/plist"
)

// VersionRange is a range of Photos database model versions that share a
// compatible schema. The version number changes with every Photos update;
// each macOS release uses numbers from a known range.
type VersionRange struct {
	Start       uint64
	End         uint64
	Description string
}

var knownVersionRanges = []VersionRange{
	{0, 16999, "Older than macOS Sonoma"},
	{17000, 17599, "Photos 9.0, macOS 14.0 to 14.5 Sonoma"},
	{17600, 17999, "Photos 9.0, macOS 14.6 Sonoma"},
	{18000, 18999, "Photos 10.0, macOS 15 Sequoia"},
}

// SupportedVersionRange is the schema range the queries in this package are
// written against.
var SupportedVersionRange = VersionRange{18000, 18999, "Photos 10.0, macOS 15 Sequoia"}

// Contains reports whether the given model version falls into the range.
func (r VersionRange) Contains(version uint64) bool {
	return version >= r.Start && version <= r.End
}

// VersionRangeFor returns the known version range the given model version
// belongs to.
func VersionRangeFor(version uint64) (VersionRange, error) {
	for _, r := range knownVersionRanges {
		if r.Contains(version) {
			return r, nil
		}
	}
	return VersionRange{}, fmt.Errorf("unknown photos database model version %d", version)
}

// GetModelVersion reads the model version of the Photos database. It is
// stored as the PLModelVersion entry of a binary plist in the Z_METADATA
// table.
func GetModelVersion(db *sql.DB) (uint64, error) {
	queryBuilder := psql.Select("Z_PLIST").
		From("Z_METADATA").
		OrderBy("Z_VERSION DESC").
		Limit(1)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for GetModelVersion: %w", err)
	}

	var rawPlist []byte
	if err := db.QueryRow(sqlStr, args...).Scan(&rawPlist); err != nil {
		return 0, fmt.Errorf("failed to read version plist from database: %w", err)
	}

	var metadata struct {
		PLModelVersion uint64 `plist:"PLModelVersion"`
	}
	if _, err := plist.Unmarshal(rawPlist, &metadata); err != nil {
		return 0, fmt.Errorf("failed to parse version plist: %w", err)
	}
	if metadata.PLModelVersion == 0 {
		return 0, fmt.Errorf("version plist has no PLModelVersion entry")
	}

	return metadata.PLModelVersion, nil
}

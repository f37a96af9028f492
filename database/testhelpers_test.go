package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"howett.net/plist"
)

// setupTestStore creates a temporary Photos.sqlite with the subset of the
// schema the queries touch. It returns a writable handle for seeding plus
// the file path for opening read-only.
func setupTestStore(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "Photos.sqlite")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE ZGENERICALBUM (
		Z_PK INTEGER PRIMARY KEY,
		ZKIND INTEGER NOT NULL,
		ZTITLE TEXT,
		ZSTARTDATE REAL,
		ZPARENTFOLDER INTEGER,
		ZTRASHEDSTATE INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE ZASSET (
		Z_PK INTEGER PRIMARY KEY,
		ZDIRECTORY TEXT NOT NULL,
		ZFILENAME TEXT NOT NULL,
		ZDATECREATED REAL,
		ZHIDDEN INTEGER NOT NULL DEFAULT 0,
		ZTRASHEDSTATE INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE ZADDITIONALASSETATTRIBUTES (
		Z_PK INTEGER PRIMARY KEY,
		ZASSET INTEGER,
		ZORIGINALFILENAME TEXT
	);

	CREATE TABLE Z_28ASSETS (
		Z_28ALBUMS INTEGER NOT NULL,
		Z_3ASSETS INTEGER NOT NULL
	);

	CREATE TABLE Z_METADATA (
		Z_VERSION INTEGER PRIMARY KEY,
		Z_PLIST BLOB
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db, dbPath
}

func insertAlbum(t *testing.T, db *sql.DB, id int64, kind int, title any, startDate any, parent any, trashed int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO ZGENERICALBUM (Z_PK, ZKIND, ZTITLE, ZSTARTDATE, ZPARENTFOLDER, ZTRASHEDSTATE) VALUES (?, ?, ?, ?, ?, ?)`,
		id, kind, title, startDate, parent, trashed)
	if err != nil {
		t.Fatalf("failed to insert album %d: %v", id, err)
	}
}

func insertAsset(t *testing.T, db *sql.DB, id int64, dir, filename string, dateCreated float64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO ZASSET (Z_PK, ZDIRECTORY, ZFILENAME, ZDATECREATED) VALUES (?, ?, ?, ?)`,
		id, dir, filename, dateCreated)
	if err != nil {
		t.Fatalf("failed to insert asset %d: %v", id, err)
	}
}

func insertHiddenAsset(t *testing.T, db *sql.DB, id int64, dir, filename string, dateCreated float64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO ZASSET (Z_PK, ZDIRECTORY, ZFILENAME, ZDATECREATED, ZHIDDEN) VALUES (?, ?, ?, ?, 1)`,
		id, dir, filename, dateCreated)
	if err != nil {
		t.Fatalf("failed to insert hidden asset %d: %v", id, err)
	}
}

func insertAssetAttributes(t *testing.T, db *sql.DB, assetID int64, originalFilename string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO ZADDITIONALASSETATTRIBUTES (ZASSET, ZORIGINALFILENAME) VALUES (?, ?)`,
		assetID, originalFilename)
	if err != nil {
		t.Fatalf("failed to insert attributes for asset %d: %v", assetID, err)
	}
}

func mapAssetToAlbum(t *testing.T, db *sql.DB, albumID, assetID int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO Z_28ASSETS (Z_28ALBUMS, Z_3ASSETS) VALUES (?, ?)`, albumID, assetID)
	if err != nil {
		t.Fatalf("failed to map asset %d to album %d: %v", assetID, albumID, err)
	}
}

func insertVersionPlist(t *testing.T, db *sql.DB, modelVersion uint64) {
	t.Helper()

	raw, err := plist.Marshal(map[string]any{"PLModelVersion": modelVersion}, plist.BinaryFormat)
	if err != nil {
		t.Fatalf("failed to marshal version plist: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO Z_METADATA (Z_VERSION, Z_PLIST) VALUES (1, ?)`, raw); err != nil {
		t.Fatalf("failed to insert version plist: %v", err)
	}
}

// openReadOnly opens the seeded fixture the way production code does.
func openReadOnly(t *testing.T, dbPath string) *sql.DB {
	t.Helper()

	db, err := OpenPhotosDB(dbPath)
	if err != nil {
		t.Fatalf("failed to open photos db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

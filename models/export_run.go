package models

// ExportRun records one completed (non-dry-run) export.
type ExportRun struct {
	ID              string `gorm:"primaryKey"`
	LibraryPath     string `gorm:"not null"`
	DestinationPath string `gorm:"not null"`
	Strategy        string `gorm:"not null"`
	AssetCount      int    `gorm:"not null"`
	FailureCount    int    `gorm:"not null"`
	DurationMillis  int64  `gorm:"not null"`

	CreatedAt int64 `gorm:"not null"`
}

package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/lgraf/photos-export/database"
	"github.com/lgraf/photos-export/library"
)

// Properties holds everything one export invocation needs.
type Properties struct {
	Library                  library.PhotosLibrary
	DestinationPath          string
	Strategy                 Strategy
	RestoreOriginalFilenames bool
	DryRun                   bool
	IncludeHidden            bool
	ContinueOnError          bool
	ExcludedAlbumIDs         []int64
}

// Summary reports what an export run did.
type Summary struct {
	AssetCount   int
	FailureCount int
	Duration     time.Duration
	DryRun       bool
}

// Sink performs (or skips) the placement of a single asset file.
type Sink interface {
	// ExportAsset places the file at sourcePath under destPath.
	ExportAsset(sourcePath, destPath string) error
	// Finished emits the terminal summary line.
	Finished(failures int)
}

type copySink struct{}

func (copySink) ExportAsset(sourcePath, destPath string) error {
	return copyFile(sourcePath, destPath)
}

func (copySink) Finished(failures int) {
	if failures > 0 {
		fmt.Println(color.RedString("Done exporting assets, %d failed.", failures))
		return
	}
	fmt.Println(color.GreenString("Done exporting assets."))
}

type dryRunSink struct{}

func (dryRunSink) ExportAsset(sourcePath, destPath string) error {
	return nil
}

func (dryRunSink) Finished(failures int) {
	fmt.Println(color.MagentaString("Done. This was a dry run - no files were actually exported."))
}

// ExportAssets fetches all exportable assets from the library and places them
// under the destination path according to the configured strategy. In
// dry-run mode the same plan is printed but nothing is written.
func ExportAssets(props Properties) (Summary, error) {
	start := time.Now()

	db, err := database.OpenPhotosDB(props.Library.DatabasePath())
	if err != nil {
		return Summary{}, err
	}
	defer db.Close()

	assets, err := database.ListAssetsWithAlbumInfo(db, props.ExcludedAlbumIDs)
	if err != nil {
		return Summary{}, err
	}

	if props.IncludeHidden {
		hidden, err := database.ListHiddenAssets(db)
		if err != nil {
			return Summary{}, err
		}
		assets = append(assets, hidden...)
	}

	var sink Sink = copySink{}
	if props.DryRun {
		sink = dryRunSink{}
	}

	failures, err := exportAll(assets, props, sink)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		AssetCount:   len(assets),
		FailureCount: failures,
		Duration:     time.Since(start),
		DryRun:       props.DryRun,
	}, nil
}

func exportAll(assets []database.AssetWithAlbumInfo, props Properties, sink Sink) (int, error) {
	originalsPath := props.Library.OriginalsPath()
	failures := 0

	for index, asset := range assets {
		relativeDir := props.Strategy.RelativeOutputDir(asset)
		filename := destinationFilename(asset, props.RestoreOriginalFilenames)

		sourcePath := filepath.Join(originalsPath, asset.Directory, asset.Filename)
		destPath := filepath.Join(props.DestinationPath, filepath.FromSlash(relativeDir), filename)

		fmt.Printf("%s%s%s%s%s\n",
			color.YellowString("(%d/%d)", index+1, len(assets)),
			color.WhiteString(" Exporting "),
			color.HiBlackString("%s", asset.Filename),
			color.WhiteString(" to "),
			color.HiBlackString("%s", destPath))

		if err := sink.ExportAsset(sourcePath, destPath); err != nil {
			if !props.ContinueOnError {
				return failures, fmt.Errorf("failed to export asset %d: %w", asset.ID, err)
			}
			failures++
			fmt.Println(color.RedString("failed to export %s: %v", asset.Filename, err))
		}
	}

	fmt.Println()
	sink.Finished(failures)
	return failures, nil
}

// destinationFilename picks the exported filename. The original filename is
// used only when requested and actually recorded for the asset.
func destinationFilename(asset database.AssetWithAlbumInfo, restoreOriginal bool) string {
	if restoreOriginal && asset.OriginalFilename != "" {
		return asset.OriginalFilename
	}
	return asset.Filename
}

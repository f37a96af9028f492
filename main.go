package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/lgraf/photos-export/albumtree"
	"github.com/lgraf/photos-export/config"
	"github.com/lgraf/photos-export/database"
	"github.com/lgraf/photos-export/export"
	"github.com/lgraf/photos-export/library"
	"github.com/lgraf/photos-export/models"
	"github.com/lgraf/photos-export/repository"
)

func main() {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		// no .env file is fine
	} else if err != nil {
		log.Fatalf("failed loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	app := cli.NewApp()
	app.Name = "photos-export"
	app.Usage = "Export photos from the macOS Photos library, organized by album and/or date."
	app.Commands = []*cli.Command{
		listAlbumsCommand(cfg),
		exportCommand(cfg),
		historyCommand(cfg),
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func listAlbumsCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      "list-albums",
		Usage:     "List all albums in the library as a tree",
		ArgsUsage: "<library-path>",
		Action: func(ctx *cli.Context) error {
			lib, err := resolveLibrary(ctx, cfg)
			if err != nil {
				return err
			}

			db, err := database.OpenPhotosDB(lib.DatabasePath())
			if err != nil {
				return err
			}
			defer db.Close()

			warnOnUnsupportedVersion(db)

			albums, err := database.ListAlbums(db)
			if err != nil {
				return err
			}

			forest := albumtree.BuildForest(albums)
			fmt.Println(albumtree.Render(forest))

			counts, err := database.GetAssetCounts(db)
			if err != nil {
				return err
			}
			fmt.Println(albumtree.Summary(counts))

			return nil
		},
	}
}

func exportCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export assets from the library to a destination directory",
		ArgsUsage: "<library-path> <destination-path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "plain",
				Aliases: []string{"p"},
				Usage:   "export photos to the root of the export directory",
			},
			&cli.BoolFlag{
				Name:    "album",
				Aliases: []string{"a"},
				Usage:   "export photos grouped by album",
			},
			&cli.BoolFlag{
				Name:    "year-month",
				Aliases: []string{"y"},
				Usage:   "export photos grouped by year/month",
			},
			&cli.BoolFlag{
				Name:    "year-month-album",
				Aliases: []string{"m"},
				Usage:   "export photos grouped by year/month/album",
			},
			&cli.BoolFlag{
				Name:    "flatten-albums",
				Aliases: []string{"f"},
				Usage:   "flatten the album hierarchy",
			},
			&cli.BoolFlag{
				Name:    "restore-original-filenames",
				Aliases: []string{"o"},
				Usage:   "restore the original filenames of the photos",
			},
			&cli.Int64SliceFlag{
				Name:    "exclude-albums",
				Aliases: []string{"e"},
				Usage:   "exclude the specified album ids from the export",
			},
			&cli.BoolFlag{
				Name:    "include-hidden",
				Aliases: []string{"H"},
				Usage:   "also export assets marked as hidden (placed under _hidden)",
			},
			&cli.BoolFlag{
				Name:  "continue-on-error",
				Usage: "keep exporting when a copy fails and report the failures at the end",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "do not actually export the photos",
			},
		},
		Action: func(ctx *cli.Context) error {
			lib, err := resolveLibrary(ctx, cfg)
			if err != nil {
				return err
			}
			destination := ctx.Args().Get(1)
			if destination == "" {
				return cli.Exit("missing destination path argument", 2)
			}

			strategy, layoutName, err := resolveStrategy(ctx)
			if err != nil {
				return err
			}

			props := export.Properties{
				Library:                  lib,
				DestinationPath:          destination,
				Strategy:                 strategy,
				RestoreOriginalFilenames: ctx.Bool("restore-original-filenames"),
				DryRun:                   ctx.Bool("dry-run"),
				IncludeHidden:            ctx.Bool("include-hidden"),
				ContinueOnError:          ctx.Bool("continue-on-error"),
				ExcludedAlbumIDs:         ctx.Int64Slice("exclude-albums"),
			}

			if db, err := database.OpenPhotosDB(lib.DatabasePath()); err == nil {
				warnOnUnsupportedVersion(db)
				db.Close()
			}

			summary, err := export.ExportAssets(props)
			if err != nil {
				return err
			}

			if !summary.DryRun {
				recordExportRun(cfg, props, layoutName, summary)
			}

			return nil
		},
	}
}

func historyCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent export runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "number of runs to show",
			},
		},
		Action: func(ctx *cli.Context) error {
			db, err := database.InitHistoryDB(cfg.HistoryDBPath)
			if err != nil {
				return err
			}

			runs, err := repository.NewExportRunRepository(db).ListRecent(ctx.Int("limit"))
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No export runs recorded yet.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %s  %s -> %s  layout=%s assets=%d failures=%d took=%s\n",
					time.Unix(run.CreatedAt, 0).Format("2006-01-02 15:04:05"),
					run.ID,
					run.LibraryPath,
					run.DestinationPath,
					run.Strategy,
					run.AssetCount,
					run.FailureCount,
					time.Duration(run.DurationMillis)*time.Millisecond)
			}

			return nil
		},
	}
}

// resolveLibrary takes the library path from the first positional argument,
// falling back to the configured default.
func resolveLibrary(ctx *cli.Context, cfg config.Config) (library.PhotosLibrary, error) {
	path := ctx.Args().Get(0)
	if path == "" {
		path = cfg.LibraryPath
	}
	if path == "" {
		return library.PhotosLibrary{}, cli.Exit("missing library path argument", 2)
	}
	return library.New(path), nil
}

// resolveStrategy validates the mutually exclusive layout flags and maps them
// to an export strategy. Configuration errors are rejected here, before any
// store access. The default layout is plain.
func resolveStrategy(ctx *cli.Context) (export.Strategy, string, error) {
	flatten := ctx.Bool("flatten-albums")

	selected := 0
	for _, name := range []string{"plain", "album", "year-month", "year-month-album"} {
		if ctx.Bool(name) {
			selected++
		}
	}
	if selected > 1 {
		return export.Strategy{}, "", cli.Exit("only one of --plain, --album, --year-month and --year-month-album may be given", 2)
	}

	switch {
	case ctx.Bool("album"):
		return export.Album(flatten), "album", nil
	case ctx.Bool("year-month"):
		return export.YearMonth(export.AssetDate), "year-month", nil
	case ctx.Bool("year-month-album"):
		return export.Joining(
			export.YearMonth(export.AlbumOrAssetDate),
			export.Album(flatten),
		), "year-month-album", nil
	default:
		return export.Plain(), "plain", nil
	}
}

// warnOnUnsupportedVersion logs a warning when the library's schema version
// is unknown or newer/older than what the queries were written against. The
// export still proceeds.
func warnOnUnsupportedVersion(db *sql.DB) {
	version, err := database.GetModelVersion(db)
	if err != nil {
		log.Printf("warning: could not determine photos database version: %v", err)
		return
	}

	versionRange, err := database.VersionRangeFor(version)
	if err != nil {
		log.Printf("warning: unknown photos database version %d; results may be incorrect", version)
		return
	}
	if !database.SupportedVersionRange.Contains(version) {
		log.Printf("warning: photos database version %d (%s) is outside the supported range (%s)",
			version, versionRange.Description, database.SupportedVersionRange.Description)
	}
}

// recordExportRun appends the finished run to the local history database.
// History is best-effort; a failure here never fails the export.
func recordExportRun(cfg config.Config, props export.Properties, layoutName string, summary export.Summary) {
	db, err := database.InitHistoryDB(cfg.HistoryDBPath)
	if err != nil {
		log.Printf("warning: could not open export history: %v", err)
		return
	}

	run := &models.ExportRun{
		LibraryPath:     props.Library.Path,
		DestinationPath: props.DestinationPath,
		Strategy:        layoutName,
		AssetCount:      summary.AssetCount,
		FailureCount:    summary.FailureCount,
		DurationMillis:  summary.Duration.Milliseconds(),
	}
	if err := repository.NewExportRunRepository(db).Create(run); err != nil {
		log.Printf("warning: could not record export run: %v", err)
	}
}

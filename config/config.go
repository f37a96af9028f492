package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultHistoryFileName = "history.db"

type Config struct {
	// default Photos library path, used when no positional argument is given
	LibraryPath string

	// location of the local export-history database
	HistoryDBPath string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig() (Config, error) {
	historyPath := os.Getenv("PHOTOS_EXPORT_HISTORY_DB")
	if historyPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to resolve user config directory: %w", err)
		}
		historyPath = filepath.Join(configDir, "photos-export", defaultHistoryFileName)
	}

	cfg := Config{
		LibraryPath:   getEnvOrDefault("PHOTOS_LIBRARY_PATH", ""),
		HistoryDBPath: historyPath,
	}

	return cfg, nil
}

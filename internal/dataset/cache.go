package dataset

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autosales-dashboard/internal/models"
)

const cacheVersion = "v1"

type cacheEntry struct {
	Version   string
	Records   []models.SalesRecord
	WrittenAt time.Time
}

func cacheFilename(cacheDir, csvPath string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(csvPath)
	return filepath.Join(cacheDir, fmt.Sprintf("%s_%s.gob", name, cacheVersion))
}

func saveToCache(cacheDir, csvPath string, records []models.SalesRecord) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	file, err := os.Create(cacheFilename(cacheDir, csvPath))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(cacheEntry{
		Version:   cacheVersion,
		Records:   records,
		WrittenAt: time.Now(),
	})
}

func loadFromCache(cacheDir, csvPath string) (*cacheEntry, error) {
	file, err := os.Open(cacheFilename(cacheDir, csvPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entry cacheEntry
	if err := gob.NewDecoder(file).Decode(&entry); err != nil {
		return nil, err
	}
	if entry.Version != cacheVersion {
		return nil, fmt.Errorf("cache version %q, want %q", entry.Version, cacheVersion)
	}
	return &entry, nil
}

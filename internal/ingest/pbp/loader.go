package pbp

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadExport reads and decodes a single export file.
func LoadExport(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export %s: %w", path, err)
	}

	export := &Export{}
	if err := json.Unmarshal(data, export); err != nil {
		return nil, fmt.Errorf("decoding export %s: %w", path, err)
	}

	if err := validateExport(export); err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}

	return export, nil
}

// LoadDirectory reads every *.json export in dir, sorted by filename so
// ingestion order is stable. Bad files are logged and skipped; one corrupt
// export must not block the rest of the slate.
func LoadDirectory(dir string) ([]*Export, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var exports []*Export
	for _, path := range paths {
		export, err := LoadExport(path)
		if err != nil {
			log.Printf("[pbp] Skipping %s: %v", filepath.Base(path), err)
			continue
		}
		exports = append(exports, export)
	}

	return exports, nil
}

func validateExport(export *Export) error {
	if export.GameID == "" {
		return fmt.Errorf("missing game_id")
	}
	if export.HomeTeam.Abbreviation == "" || export.AwayTeam.Abbreviation == "" {
		return fmt.Errorf("missing team abbreviations")
	}
	if strings.EqualFold(export.HomeTeam.Abbreviation, export.AwayTeam.Abbreviation) {
		return fmt.Errorf("home and away teams are identical")
	}
	if len(export.Plays) == 0 {
		return fmt.Errorf("no plays")
	}
	return nil
}

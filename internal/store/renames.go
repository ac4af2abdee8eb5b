package store

import (
	"fmt"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// SaveRenameHistory caches the raw rename-history feed at path. It is the
// fallback for runs where the live fetch fails.
func SaveRenameHistory(path string, raw []byte) error {
	if err := writeFileAtomic(path, raw); err != nil {
		return fmt.Errorf("cache rename history: %w", err)
	}
	return nil
}

// LoadRenameHistory parses the cached rename-history snapshot into a
// RenameMap.
func LoadRenameHistory(path string) (model.RenameMap, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read rename history: %w", err)
	}
	return model.ParseRenameMap(rows), nil
}

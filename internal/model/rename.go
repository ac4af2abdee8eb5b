package model

import "strings"

// RenameMap maps a security's current symbol to the one it traded under
// before. It is loaded once per run from the exchange rename-history feed and
// shared read-only across workers.
type RenameMap map[string]string

// Columns of the rename-history feed.
var renameColumns = []string{"Name", "Old Symbol", "New Symbol", "Change Date"}

// ParseRenameMap builds a RenameMap from rename-history rows
// {Name, Old Symbol, New Symbol, Change Date}. A header row is skipped if
// present. The first entry for a new symbol wins.
func ParseRenameMap(rows [][]string) RenameMap {
	m := make(RenameMap)
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		oldSym := strings.TrimSpace(row[1])
		newSym := strings.TrimSpace(row[2])
		if oldSym == "" || newSym == "" || newSym == renameColumns[2] {
			continue
		}
		if _, ok := m[newSym]; !ok {
			m[newSym] = oldSym
		}
	}
	return m
}

// Previous returns the symbol the security traded under before it was renamed
// to sym, if a rename is on record.
func (m RenameMap) Previous(sym string) (string, bool) {
	old, ok := m[sym]
	return old, ok
}

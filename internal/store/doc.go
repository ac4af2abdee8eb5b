// Package store owns all persisted state of the engine.
//
// Layout on disk:
//   - one ledger file per security, <symbol>.csv, header + canonical columns
//   - one cached daily batch file per date, <YYYYMMDD>_NSE.csv
//   - the rename-history snapshot, symbolchange.csv
//
// No other package touches these files directly. Saves are atomic from a
// reader's perspective (write to a temp file, then rename over the target);
// atomicity is per file, not across securities.
package store

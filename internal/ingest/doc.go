// Package ingest implements the daily batch ingester.
//
// One run covers one date: download the full-market batch (or reuse the
// cached copy), partition it by symbol, and merge each symbol's rows into its
// ledger. A symbol without a ledger is first checked against the rename
// history (its history may live under the old symbol) and otherwise
// bootstrapped with a one-off full-history backfill, which is far cheaper
// than growing a new ledger one batch day at a time.
//
// No failure escapes a per-symbol unit; each unit reports an outcome and the
// run carries on. Only an unavailable daily batch aborts the whole date.
package ingest

// Package maintain keeps ledger files in canonical shape.
//
// Ingest appends rows in arrival order and tolerates whatever spellings the
// provider used that day, so over time a ledger accumulates duplicate rows,
// non-canonical date strings and out-of-order history. A maintenance sweep
// drops exact-duplicate rows, renders every field canonically and sorts each
// ledger by date. All three passes are idempotent; a second sweep over a
// maintained store rewrites nothing.
package maintain

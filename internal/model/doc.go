// Package model defines the shared data types of the security-wise ledger engine.
//
// Conventions:
//   - Dates: calendar days in canonical DD-MM-YYYY string form; the zero Date
//     is the explicit invalid/null marker
//   - Quantities and prices: OptInt / OptDecimal, where the literal "-" is the
//     missing sentinel ("not yet known", distinct from a true zero)
//   - Merge key: (symbol, series, date); at most one record per key in a ledger
package model

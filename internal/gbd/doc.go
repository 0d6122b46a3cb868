// Package gbd is the metadata access layer. It reads GBD metadata tables
// from a SQL database or an offline snapshot file and turns their rows into
// raw entity records, one type per entity kind.
//
// Every column is optional: an absent column, a SQL NULL, a float NaN and
// the string "nan" all read as the explicit unknown marker of Null.
//
// Key types:
//   - Source: table access (SQLSource, SnapshotSource)
//   - Adapter: typed, id-ordered raw records per entity kind
//   - Null: a value that may be unknown
package gbd

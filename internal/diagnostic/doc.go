// Package diagnostic provides the error taxonomy of a generation run and
// structured warnings for conditions that do not abort it.
//
// Key capabilities:
//   - Sentinel errors per failure category, usable with errors.Is
//   - Error carrying entity kind, raw id and offending row
//   - Diagnostics collection for dropped duplicates and other warnings
package diagnostic

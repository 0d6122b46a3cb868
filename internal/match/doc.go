// Package match turns raw GBD display names into identifier-safe names and
// handles names that collide after normalization.
//
// Key functions:
//   - CleanEntityList: raw display names to snake_case identifiers
//   - Dedupe: applies the duplicate-name policy to a list of names
//   - ToGoIdent: snake_case identifier to exported Go identifier
//   - Levenshtein, Suggest: edit distance and "did you mean" candidates
package match

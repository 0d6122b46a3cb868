// Package common holds small generic helpers shared across the generator.
//
// Key functions:
//   - TopoSort: deterministic dependency ordering with cycle reporting
//   - SortedKeys, SortedUnique: stable iteration helpers
package common

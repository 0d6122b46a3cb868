// Package gen emits the Go source of the gbdmapping package.
//
// Generation uses text/template for the fixed parts and plain string
// building for records and instances, then formats the result with
// golang.org/x/tools/imports. Output is a pure function of the resolved
// graph: no timestamps, run ids or map iteration order leak into it.
//
// Files per kind:
//   - <kind>_template.go: record types with gbd struct tags and a Fields method
//   - <kind>.go: a Build<Kinds> function returning the populated collection
//
// plus id.go (id types and the UNKNOWN marker) and base_template.go (shared
// records and the record helpers Get, ToMap, Equal and Format).
package gen

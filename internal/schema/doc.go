// Package schema declares the records emitted into the generated mapping
// package.
//
// A Record is an ordered list of fields, each with its GBD name, its Go
// type in the generated package and whether it may be absent. Records are
// grouped into one Module per emitted template file. The emitter renders
// type declarations from these schemas and orders instance literals by
// them, so the field order here is the order everywhere.
package schema

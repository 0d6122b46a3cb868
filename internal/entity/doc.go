// Package entity defines the resolved GBD entities and the ordered,
// name-indexed collections that hold them.
//
// Entities are built in two phases. Resolution fills scalar attributes and
// raw relationship ids; linking then sets the pointer fields (Parent,
// SubCauses, AffectedCauses, ...) from those ids. After linking every
// entity is treated as immutable.
package entity

// Package link turns the raw relationship ids of resolved entities into
// direct references.
//
// Resolution builds every node of a kind with its relationships still
// expressed as ids. Linking then runs once over the whole graph: parents
// and children are derived from parent ids and checked against the declared
// children, and "affected" id lists are looked up in the index of their
// target kind. Any id that does not resolve is a BrokenRelationship.
package link

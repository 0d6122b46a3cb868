package gbd

import "fmt"

// Null is a value that may be unknown. The zero value is unknown.
type Null[T any] struct {
	V     T
	Valid bool
}

// Known returns a known value.
func Known[T any](v T) Null[T] {
	return Null[T]{V: v, Valid: true}
}

// Unknown returns the unknown marker for T.
func Unknown[T any]() Null[T] {
	return Null[T]{}
}

// Get returns the value and whether it is known.
func (n Null[T]) Get() (T, bool) {
	return n.V, n.Valid
}

// Or returns the value, or def when unknown.
func (n Null[T]) Or(def T) T {
	if !n.Valid {
		return def
	}

	return n.V
}

// Ptr returns a pointer to the value, or nil when unknown.
func (n Null[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}

	v := n.V

	return &v
}

// String implements fmt.Stringer.
func (n Null[T]) String() string {
	if !n.Valid {
		return "UNKNOWN"
	}

	return fmt.Sprint(n.V)
}

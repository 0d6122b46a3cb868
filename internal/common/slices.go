package common

import (
	"cmp"
	"slices"
)

// Map applies fn to each element of s.
func Map[S ~[]E, E, R any](s S, fn func(E) R) []R {
	if s == nil {
		return nil
	}

	out := make([]R, len(s))
	for i, e := range s {
		out[i] = fn(e)
	}

	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// SortedUnique returns a sorted copy of s without repeated elements.
func SortedUnique[S ~[]E, E cmp.Ordered](s S) S {
	out := slices.Clone(s)
	slices.Sort(out)

	return slices.Compact(out)
}

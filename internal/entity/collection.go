package entity

import (
	"cmp"
	"fmt"
	"slices"
)

// Collection is an ordered, name-indexed set of entities of one kind.
// Iteration order is ascending Key.
type Collection[T Entity] struct {
	kind   Kind
	items  []T
	byName map[string]int
	// dropped maps the keys of duplicates removed by name to the name
	// they repeated.
	dropped map[int]string
}

// NewCollection sorts items by key and indexes them by name. Two items with
// the same name are rejected.
func NewCollection[T Entity](kind Kind, items []T) (*Collection[T], error) {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(a.Key(), b.Key())
	})

	c := &Collection[T]{kind: kind, items: sorted, byName: make(map[string]int, len(sorted))}

	for i, item := range sorted {
		if prev, ok := c.byName[item.EntityName()]; ok {
			return nil, fmt.Errorf("%s name %q used by ids %d and %d",
				kind, item.EntityName(), sorted[prev].Key(), item.Key())
		}

		c.byName[item.EntityName()] = i
	}

	return c, nil
}

// Kind returns the entity kind held.
func (c *Collection[T]) Kind() Kind {
	return c.kind
}

// All returns the entities in ascending key order.
func (c *Collection[T]) All() []T {
	if c == nil {
		return nil
	}

	return c.items
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}

	return len(c.items)
}

// Get returns the entity with the given normalized name.
func (c *Collection[T]) Get(name string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	i, ok := c.byName[name]
	if !ok {
		return zero, false
	}

	return c.items[i], true
}

// Names returns the entity names in iteration order.
func (c *Collection[T]) Names() []string {
	out := make([]string, 0, c.Len())
	for _, item := range c.All() {
		out = append(out, item.EntityName())
	}

	return out
}

// ByKey returns the entity with the given key.
func (c *Collection[T]) ByKey(key int) (T, bool) {
	var zero T

	items := c.All()

	i, ok := slices.BinarySearchFunc(items, key, func(item T, k int) int {
		return cmp.Compare(item.Key(), k)
	})
	if !ok {
		return zero, false
	}

	return items[i], true
}

// Drop records that the entity with key was removed because its name
// repeated the entity called name.
func (c *Collection[T]) Drop(key int, name string) {
	if c.dropped == nil {
		c.dropped = map[int]string{}
	}

	c.dropped[key] = name
}

// Dropped returns the name a removed duplicate with key repeated.
func (c *Collection[T]) Dropped(key int) (string, bool) {
	if c == nil {
		return "", false
	}

	name, ok := c.dropped[key]

	return name, ok
}

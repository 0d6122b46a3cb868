package link

import (
	"fmt"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
)

// Index maps entity keys to nodes of one kind.
type Index[T entity.Entity] struct {
	kind  entity.Kind
	nodes map[int]T
	// dropped names the entity a key removed as a duplicate repeated.
	dropped func(key int) (string, bool)
}

// NewIndex indexes nodes by key. Two nodes with one key are rejected.
func NewIndex[T entity.Entity](kind entity.Kind, nodes []T) (*Index[T], error) {
	idx := &Index[T]{kind: kind, nodes: make(map[int]T, len(nodes))}

	for _, n := range nodes {
		if prev, ok := idx.nodes[n.Key()]; ok {
			return nil, fmt.Errorf("%s id %d used by %q and %q", kind, n.Key(), prev.EntityName(), n.EntityName())
		}

		idx.nodes[n.Key()] = n
	}

	return idx, nil
}

// index builds the index of c, keeping track of the duplicates it dropped.
func index[T entity.Entity](kind entity.Kind, c *entity.Collection[T]) (*Index[T], error) {
	idx, err := NewIndex(kind, c.All())
	if err != nil {
		return nil, err
	}

	idx.dropped = c.Dropped

	return idx, nil
}

// Get returns the node with key id.
func (x *Index[T]) Get(id int) (T, bool) {
	n, ok := x.nodes[id]
	return n, ok
}

// Refs resolves a list of ids into nodes, keeping the order of ids.
func Refs[T entity.Entity, ID ~int](idx *Index[T], owner entity.Entity, field string, ids []ID) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(ids))

	for _, id := range ids {
		n, ok := idx.Get(int(id))
		if !ok {
			return nil, broken(owner, field, "%s", idx.missing(int(id)))
		}

		out = append(out, n)
	}

	return out, nil
}

// missing describes an id absent from the index. A duplicate dropped by
// name is reported with the name it repeated.
func (x *Index[T]) missing(id int) string {
	if x.dropped != nil {
		if name, ok := x.dropped(id); ok {
			return fmt.Sprintf("%s id %d was dropped as a duplicate of %q", x.kind, id, name)
		}
	}

	return fmt.Sprintf("unknown %s id %d", x.kind, id)
}

func broken(owner entity.Entity, field, format string, args ...any) *diagnostic.Error {
	return diagnostic.Newf(diagnostic.CodeBrokenRelationship, string(owner.EntityKind()), owner.Key(),
		format, args...).WithField(field)
}

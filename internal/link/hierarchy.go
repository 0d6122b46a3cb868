package link

import (
	"errors"
	"slices"

	"gbd-mapping-generator/internal/common"
	"gbd-mapping-generator/internal/entity"
)

// Hierarchy describes the parent/child fields of one kind.
type Hierarchy[T entity.Entity] struct {
	Kind        entity.Kind
	ParentID    func(T) int
	ChildIDs    func(T) []int
	SetParent   func(node, parent T)
	SetChildren func(node T, children []T)
}

// LinkHierarchy sets parent and children of every node. A node whose parent
// id is its own id is a root. Children are the inverse of the parent links,
// in node order, and must agree with the declared child ids of nodes that
// are present in the index. Parent cycles are rejected.
func LinkHierarchy[T entity.Entity](idx *Index[T], nodes []T, h Hierarchy[T]) error {
	parents := make([]int, len(nodes))
	pos := make(map[int]int, len(nodes))

	for i, n := range nodes {
		pos[n.Key()] = i
	}

	for i, n := range nodes {
		parents[i] = -1

		pid := h.ParentID(n)
		if pid == n.Key() {
			continue
		}

		p, ok := pos[pid]
		if !ok {
			return broken(n, "parent_id", "parent: %s", idx.missing(pid))
		}

		parents[i] = p
	}

	stuck, err := common.TopoSort(len(nodes), func(i int) []int {
		if parents[i] < 0 {
			return nil
		}

		return []int{parents[i]}
	})
	if errors.Is(err, common.ErrCycle) {
		return broken(nodes[stuck[0]], "parent_id", "parent cycle through %d %s nodes", len(stuck), h.Kind)
	}

	if err != nil {
		return err
	}

	children := make([][]T, len(nodes))

	for i, n := range nodes {
		if parents[i] >= 0 {
			children[parents[i]] = append(children[parents[i]], n)
		}
	}

	for i, n := range nodes {
		if err := checkDeclared(idx, n, h, children[i]); err != nil {
			return err
		}

		if parents[i] >= 0 {
			h.SetParent(n, nodes[parents[i]])
		}

		h.SetChildren(n, children[i])
	}

	return nil
}

// checkDeclared compares the declared child ids of n, restricted to ids
// that resolved, against the derived children.
func checkDeclared[T entity.Entity](idx *Index[T], n T, h Hierarchy[T], derived []T) error {
	var declared []int

	for _, id := range h.ChildIDs(n) {
		if _, ok := idx.Get(id); ok && id != n.Key() {
			declared = append(declared, id)
		}
	}

	declared = common.SortedUnique(declared)

	actual := make([]int, len(derived))
	for i, c := range derived {
		actual[i] = c.Key()
	}

	slices.Sort(actual)

	for _, id := range declared {
		if _, found := slices.BinarySearch(actual, id); !found {
			return broken(n, "child_ids", "declared child %d does not name it as parent", id)
		}
	}

	for _, id := range actual {
		if _, found := slices.BinarySearch(declared, id); !found {
			return broken(n, "child_ids", "%s %d names it as parent but is not a declared child", h.Kind, id)
		}
	}

	return nil
}

// VerifyInverse checks that every node is among the children of its parent
// and every child names the node as its parent.
func VerifyInverse[T entity.Entity](nodes []T, parent func(T) (T, bool), children func(T) []T) error {
	for _, n := range nodes {
		if p, ok := parent(n); ok {
			if p.Key() == n.Key() {
				return broken(n, "parent", "entity is its own parent")
			}

			if !slices.ContainsFunc(children(p), func(c T) bool { return c.Key() == n.Key() }) {
				return broken(n, "parent", "missing from the children of %q", p.EntityName())
			}
		}

		for _, c := range children(n) {
			if p, ok := parent(c); !ok || p.Key() != n.Key() {
				return broken(n, "children", "child %q does not name it as parent", c.EntityName())
			}
		}
	}

	return nil
}

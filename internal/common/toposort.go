package common

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCycle is returned by TopoSort when the dependency graph is not acyclic.
var ErrCycle = errors.New("cycle detected")

// TopoSort returns node indices in dependency order.
//
// Nodes are by index in [0, n). depsFn(i) yields indices that must come
// before i.
//
// The result is deterministic: when multiple nodes are available, the
// smallest index is picked. On a cycle, the error wraps ErrCycle and the
// returned slice holds the indices that could not be ordered.
func TopoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		deps := depsFn(i)
		for _, d := range deps {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		var stuck []int

		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, i)
			}
		}

		return stuck, fmt.Errorf("%w among %d nodes", ErrCycle, len(stuck))
	}

	return order, nil
}

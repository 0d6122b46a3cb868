package match

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when two entities of one kind
// normalize to the same name.
type DuplicatePolicy string

const (
	// PolicyDrop keeps the first occurrence and drops the later ones.
	PolicyDrop DuplicatePolicy = "drop"
	// PolicyFail rejects the whole kind.
	PolicyFail DuplicatePolicy = "fail"
)

// ParseDuplicatePolicy parses a policy name, case-insensitively.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyDrop, PolicyFail:
		return p, nil
	case "":
		return PolicyDrop, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want %q or %q)", s, PolicyDrop, PolicyFail)
	}
}

// Duplicate records a later entry whose name repeats an earlier one.
type Duplicate struct {
	Name string
	// Index of the repeated entry.
	Index int
	// First is the index of the entry that keeps the name.
	First int
}

// Dedupe applies policy to names. keep lists the indices that survive in
// input order. With PolicyFail and any repeat, err is non-nil and describes
// the first repeat.
func Dedupe(names []string, policy DuplicatePolicy) (keep []int, dropped []Duplicate, err error) {
	dropped = findDuplicates(names)
	if len(dropped) > 0 && policy == PolicyFail {
		d := dropped[0]
		return nil, dropped, fmt.Errorf("%q at positions %d and %d", d.Name, d.First, d.Index)
	}

	skip := make(map[int]bool, len(dropped))
	for _, d := range dropped {
		skip[d.Index] = true
	}

	keep = make([]int, 0, len(names)-len(dropped))
	for i := range names {
		if !skip[i] {
			keep = append(keep, i)
		}
	}

	return keep, dropped, nil
}

func findDuplicates(names []string) []Duplicate {
	seen := make(map[string]int, len(names))

	var dups []Duplicate

	for i, n := range names {
		if first, ok := seen[n]; ok {
			dups = append(dups, Duplicate{Name: n, Index: i, First: first})
			continue
		}

		seen[n] = i
	}

	return dups
}

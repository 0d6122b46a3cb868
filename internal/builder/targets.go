package builder

import (
	"fmt"
	"slices"
	"strings"

	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/match"
	"gbd-mapping-generator/internal/schema"
)

// Targets that are not entity kinds.
const (
	TargetID   = "id"
	TargetBase = "base_template"
	TargetAll  = "all"
)

// Targets returns every build target in build order, "all" last.
func Targets() []string {
	out := []string{TargetID, TargetBase}
	for _, k := range schema.Kinds {
		out = append(out, string(k.Kind))
	}

	return append(out, TargetAll)
}

// UnknownTargetError reports a target name that is not in Targets.
type UnknownTargetError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownTargetError) Error() string {
	msg := fmt.Sprintf("unknown kind %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, " or "))
	}

	return msg
}

// ParseTargets validates names, expands "all" and returns the targets in
// build order without repeats. No names means "all".
func ParseTargets(names []string) ([]string, error) {
	if len(names) == 0 {
		names = []string{TargetAll}
	}

	known := Targets()
	want := map[string]bool{}

	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if !slices.Contains(known, n) {
			return nil, &UnknownTargetError{Name: n, Suggestions: match.Suggest(n, known, 3)}
		}

		if n == TargetAll {
			for _, k := range known {
				want[k] = true
			}
		}

		want[n] = true
	}

	var out []string

	for _, k := range known {
		if k != TargetAll && want[k] {
			out = append(out, k)
		}
	}

	return out, nil
}

// kinds returns the entity kinds among targets.
func kinds(targets []string) []entity.Kind {
	var out []entity.Kind

	for _, t := range targets {
		if _, err := schema.ForKind(entity.Kind(t)); err == nil {
			out = append(out, entity.Kind(t))
		}
	}

	return out
}

package match

import "sort"

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			sub := diag
			if ra[i-1] != rb[j-1] {
				sub++
			}

			diag = row[i]
			row[i] = min(row[i]+1, row[i-1]+1, sub)
		}
	}

	return row[len(ra)]
}

// Suggest returns the candidates within maxDistance edits of word, closest
// first. Ties keep candidate order.
func Suggest(word string, candidates []string, maxDistance int) []string {
	type scored struct {
		name string
		dist int
	}

	var hits []scored

	for _, c := range candidates {
		if d := Levenshtein(word, c); d <= maxDistance {
			hits = append(hits, scored{c, d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"cause", "cause", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"Cause", "cause", 1},

		// Runes, not bytes
		{"ménière", "meniere", 2},

		// Kind names
		{"causes", "cause", 1},
		{"risk", "risk_factor", 7},
		{"sequelae", "sequela", 1},
		{"etiolgy", "etiology", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSuggest(t *testing.T) {
	kinds := []string{"cause", "covariate", "coverage_gap", "etiology", "risk_factor", "sequela"}

	assert.Equal(t, []string{"cause"}, Suggest("causes", kinds, 2))
	assert.Equal(t, []string{"sequela"}, Suggest("sequelae", kinds, 2))
	assert.Empty(t, Suggest("population", kinds, 2))
}

func BenchmarkLevenshtein(b *testing.B) {
	for b.Loop() {
		Levenshtein("diarrheal_diseases", "diarrhoeal_disease")
	}
}

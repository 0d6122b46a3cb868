package resolve

import (
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/match"
)

// Config holds resolution settings.
type Config struct {
	// Duplicates decides what happens to entities whose names collide
	// after normalization.
	Duplicates match.DuplicatePolicy
	// ExplicitReferenceRisks are polytomous risks whose category map
	// already holds the unexposed reference category.
	ExplicitReferenceRisks []int
	// CategoryOverrides supply categories for polytomous risks whose
	// metadata has no category map, keyed by rei id.
	CategoryOverrides map[int][]entity.Category
	// Ages discretizes cause age restrictions.
	Ages *AgeTable
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		Duplicates:             match.PolicyDrop,
		ExplicitReferenceRisks: []int{128, 339},
		CategoryOverrides: map[int][]entity.Category{
			341: {
				{Key: "cat1", Label: "Stage 5 chronic kidney disease squeezed"},
				{Key: "cat2", Label: "Stage 4 chronic kidney disease squeezed"},
				{Key: "cat3", Label: "Stage 3 chronic kidney disease squeezed"},
				{Key: "cat4", Label: "Stage 1-2 chronic kidney disease"},
				{Key: "cat5", Label: Unexposed},
			},
		},
		Ages: DefaultAgeTable(),
	}
}

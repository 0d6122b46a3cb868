package resolve

import (
	"fmt"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/match"
)

// Resolver resolves raw records of every kind under one configuration.
type Resolver struct {
	config      Config
	diagnostics diagnostic.Diagnostics
	// dropped maps, per kind, the ids of duplicates dropped by name to the
	// name they repeated.
	dropped map[entity.Kind]map[int]string
}

// New creates a Resolver. Zero fields of cfg take their defaults.
func New(cfg Config) *Resolver {
	def := DefaultConfig()
	if cfg.Duplicates == "" {
		cfg.Duplicates = def.Duplicates
	}

	if cfg.ExplicitReferenceRisks == nil {
		cfg.ExplicitReferenceRisks = def.ExplicitReferenceRisks
	}

	if cfg.CategoryOverrides == nil {
		cfg.CategoryOverrides = def.CategoryOverrides
	}

	if cfg.Ages == nil {
		cfg.Ages = def.Ages
	}

	return &Resolver{config: cfg, dropped: map[entity.Kind]map[int]string{}}
}

// Diagnostics returns the non-fatal findings collected so far.
func (r *Resolver) Diagnostics() diagnostic.Diagnostics {
	return r.diagnostics
}

// names normalizes the raw names of one kind and applies the duplicate
// policy. It returns the normalized names and the indices to keep.
func (r *Resolver) names(kind entity.Kind, raw []string, ids []int) ([]string, []int, error) {
	names := match.CleanEntityList(raw)

	keep, dropped, err := match.Dedupe(names, r.config.Duplicates)
	if err != nil {
		d := dropped[0]

		return nil, nil, diagnostic.Newf(diagnostic.CodeDuplicateNormalizedName, string(kind), ids[d.Index],
			"name %q already used by id %d: %v", d.Name, ids[d.First], err)
	}

	r.dropped[kind] = make(map[int]string, len(dropped))

	for _, d := range dropped {
		r.dropped[kind][ids[d.Index]] = d.Name
		r.diagnostics.AddWarning(diagnostic.CodeDuplicateDropped,
			fmt.Sprintf("dropped id %d, name already used by id %d", ids[d.Index], ids[d.First]),
			string(kind), d.Name)
	}

	return names, keep, nil
}

// collection builds the collection of kind, remembering the duplicates
// names dropped so references to them can be reported by name.
func collection[T entity.Entity](r *Resolver, kind entity.Kind, items []T) (*entity.Collection[T], error) {
	c, err := entity.NewCollection(kind, items)
	if err != nil {
		return nil, err
	}

	for id, name := range r.dropped[kind] {
		c.Drop(id, name)
	}

	r.diagnostics.AddInfo(diagnostic.CodeResolved,
		fmt.Sprintf("resolved %d, dropped %d duplicates", c.Len(), len(r.dropped[kind])), string(kind), "")

	return c, nil
}

package gbd

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gbd-mapping-generator/internal/common"
)

// Filter narrows the records returned by the adapter.
type Filter struct {
	// MostDetailedOnly keeps only leaf entities of a hierarchy.
	MostDetailedOnly bool
}

// Adapter reads raw entity records from a Source. Tables are read once and
// cached, so a run fetches its metadata up front and resolves it offline.
// Records come back in ascending id order.
type Adapter struct {
	src    Source
	tables map[string]Table
}

// NewAdapter returns an Adapter over src.
func NewAdapter(src Source) *Adapter {
	return &Adapter{src: src, tables: map[string]Table{}}
}

func (a *Adapter) table(ctx context.Context, name string) (Table, error) {
	if t, ok := a.tables[name]; ok {
		return t, nil
	}

	t, err := a.src.Table(ctx, name)
	if err != nil {
		return nil, err
	}

	a.tables[name] = t

	return t, nil
}

// Prefetch reads the named tables into the cache.
func (a *Adapter) Prefetch(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, err := a.table(ctx, name); err != nil {
			return err
		}
	}

	return nil
}

func sortByID[T any](records []T, id func(T) int) {
	slices.SortStableFunc(records, func(a, b T) int {
		return cmp.Compare(id(a), id(b))
	})
}

// childIDs builds the parent -> children index from the parent column.
// Self-parented rows (hierarchy roots) are not their own children.
func childIDs(t Table, idCol, parentCol string) map[int][]int {
	out := map[int][]int{}

	for _, r := range t {
		id, parent := r.Int(idCol), r.Int(parentCol)
		if !id.Valid || !parent.Valid || id.V == parent.V {
			continue
		}

		out[parent.V] = append(out[parent.V], id.V)
	}

	for k := range out {
		slices.Sort(out[k])
	}

	return out
}

// pairs groups the right column by the left column of a link table.
func pairs(t Table, keyCol, valCol string) map[int][]int {
	out := map[int][]int{}

	for _, r := range t {
		k, v := r.Int(keyCol), r.Int(valCol)
		if k.Valid && v.Valid {
			out[k.V] = append(out[k.V], v.V)
		}
	}

	for k := range out {
		out[k] = common.SortedUnique(out[k])
	}

	return out
}

func requireID(r Row, table, col string) (int, error) {
	id := r.Int(col)
	if !id.Valid {
		return 0, fmt.Errorf("%s: row without %s", table, col)
	}

	return id.V, nil
}

// Causes returns every cause.
func (a *Adapter) Causes(ctx context.Context) ([]RawCause, error) {
	t, err := a.table(ctx, TableCause)
	if err != nil {
		return nil, err
	}

	children := childIDs(t, "cause_id", "parent_id")
	out := make([]RawCause, 0, len(t))

	for _, r := range t {
		id, err := requireID(r, TableCause, "cause_id")
		if err != nil {
			return nil, err
		}

		kids, explicit := r.IDs("child_ids")
		if !explicit {
			kids = children[id]
		}

		out = append(out, RawCause{
			ID:           id,
			Name:         r.String("cause_name").V,
			ParentID:     r.Int("parent_id"),
			ChildIDs:     kids,
			MostDetailed: r.Bool("most_detailed"),
			Level:        r.Int("level"),
			Male:         r.Bool("male"),
			Female:       r.Bool("female"),
			YllOnly:      r.Bool("yll_only"),
			YldOnly:      r.Bool("yld_only"),
			YllAgeStart:  r.Float("yll_age_start"),
			YllAgeEnd:    r.Float("yll_age_end"),
			YldAgeStart:  r.Float("yld_age_start"),
			YldAgeEnd:    r.Float("yld_age_end"),
		})
	}

	sortByID(out, func(c RawCause) int { return c.ID })

	return out, nil
}

// CauseModelableEntities returns the modelable entity to cause links.
func (a *Adapter) CauseModelableEntities(ctx context.Context) ([]RawCauseME, error) {
	t, err := a.table(ctx, TableModelableEntityCause)
	if err != nil {
		return nil, err
	}

	out := make([]RawCauseME, 0, len(t))

	for _, r := range t {
		me, cause := r.Int("modelable_entity_id"), r.Int("cause_id")
		if !me.Valid || !cause.Valid {
			continue
		}

		out = append(out, RawCauseME{MEID: me.V, CauseID: cause.V, Name: r.String("modelable_entity_name").V})
	}

	sortByID(out, func(m RawCauseME) int { return m.MEID })

	return out, nil
}

// Sequelae returns every sequela.
func (a *Adapter) Sequelae(ctx context.Context) ([]RawSequela, error) {
	t, err := a.table(ctx, TableSequela)
	if err != nil {
		return nil, err
	}

	out := make([]RawSequela, 0, len(t))

	for _, r := range t {
		id, err := requireID(r, TableSequela, "sequela_id")
		if err != nil {
			return nil, err
		}

		out = append(out, RawSequela{
			ID:              id,
			Name:            r.String("sequela_name").V,
			MEID:            r.Int("modelable_entity_id"),
			CauseID:         r.Int("cause_id"),
			HealthstateID:   r.Int("healthstate_id"),
			HealthstateName: r.String("healthstate_name"),
		})
	}

	sortByID(out, func(s RawSequela) int { return s.ID })

	return out, nil
}

// Etiologies returns etiologies, optionally only the most detailed ones.
func (a *Adapter) Etiologies(ctx context.Context, f Filter) ([]RawEtiology, error) {
	t, err := a.table(ctx, TableEtiology)
	if err != nil {
		return nil, err
	}

	out := make([]RawEtiology, 0, len(t))

	for _, r := range t {
		id, err := requireID(r, TableEtiology, "rei_id")
		if err != nil {
			return nil, err
		}

		e := RawEtiology{ID: id, Name: r.String("rei_name").V, MostDetailed: r.Bool("most_detailed")}
		if f.MostDetailedOnly && !e.MostDetailed.Or(false) {
			continue
		}

		out = append(out, e)
	}

	sortByID(out, func(e RawEtiology) int { return e.ID })

	return out, nil
}

// CauseEtiologies returns the cause to etiology links.
func (a *Adapter) CauseEtiologies(ctx context.Context) ([]RawCauseEtiology, error) {
	t, err := a.table(ctx, TableCauseEtiology)
	if err != nil {
		return nil, err
	}

	byCause := pairs(t, "cause_id", "rei_id")
	out := make([]RawCauseEtiology, 0, len(t))

	for _, cause := range common.SortedKeys(byCause) {
		for _, e := range byCause[cause] {
			out = append(out, RawCauseEtiology{CauseID: cause, EtiologyID: e})
		}
	}

	return out, nil
}

// categories groups the category and label columns of a category table by
// the owner column, read as text so numeric and named owners share one path.
func categories(t Table, ownerCol string) map[string][]RawCategory {
	out := map[string][]RawCategory{}

	for _, r := range t {
		owner := r.String(ownerCol)
		if !owner.Valid {
			continue
		}

		out[owner.V] = append(out[owner.V], RawCategory{
			Key:   r.String("category").V,
			Label: r.String("label").V,
		})
	}

	return out
}

// Risks returns every risk with its categories and affected entities.
func (a *Adapter) Risks(ctx context.Context) ([]RawRisk, error) {
	t, err := a.table(ctx, TableRisk)
	if err != nil {
		return nil, err
	}

	links := map[string]Table{}

	for _, name := range []string{TableRiskCategory, TableCauseRisk, TablePafOfOne, TableMediation} {
		if links[name], err = a.table(ctx, name); err != nil {
			return nil, err
		}
	}

	cats := categories(links[TableRiskCategory], "rei_id")
	affected := pairs(links[TableCauseRisk], "rei_id", "cause_id")
	pafOfOne := pairs(links[TablePafOfOne], "rei_id", "cause_id")
	mediated := pairs(links[TableMediation], "rei_id", "med_id")
	children := childIDs(t, "rei_id", "parent_id")

	out := make([]RawRisk, 0, len(t))

	for _, r := range t {
		id, err := requireID(r, TableRisk, "rei_id")
		if err != nil {
			return nil, err
		}

		kids, explicit := r.IDs("child_ids")
		if !explicit {
			kids = children[id]
		}

		out = append(out, RawRisk{
			ID:               id,
			Name:             r.String("rei_name").V,
			ParentID:         r.Int("parent_id"),
			ChildIDs:         kids,
			Level:            r.Int("level"),
			MostDetailed:     r.Bool("most_detailed"),
			CalculationType:  r.Int("rei_calculation_type"),
			ExposureType:     r.String("exposure_type"),
			RRScalar:         r.Float("rr_scalar"),
			TmredDist:        r.String("tmred_dist"),
			TmrelLower:       r.Float("tmrel_lower"),
			TmrelUpper:       r.Float("tmrel_upper"),
			InvExp:           r.Bool("inv_exp"),
			Male:             r.Bool("male"),
			Female:           r.Bool("female"),
			Yll:              r.Bool("yll"),
			Yld:              r.Bool("yld"),
			YllAgeGroupStart: r.Int("yll_age_group_id_start"),
			YllAgeGroupEnd:   r.Int("yll_age_group_id_end"),
			YldAgeGroupStart: r.Int("yld_age_group_id_start"),
			YldAgeGroupEnd:   r.Int("yld_age_group_id_end"),
			Categories:       cats[strconv.Itoa(id)],
			AffectedCauseIDs: affected[id],
			PafOfOneCauseIDs: pafOfOne[id],
			AffectedRiskIDs:  mediated[id],
			Flags: RawRiskFlags{
				ExposureExists:                           r.Bool("exposure_exists"),
				ExposureSDExists:                         r.Bool("exposure_sd_exists"),
				RelativeRiskExists:                       r.Bool("rr_exists"),
				RelativeRiskInRange:                      r.Bool("rr_in_range"),
				PopulationAttributableFractionYllExists:  r.Bool("paf_yll_exists"),
				PopulationAttributableFractionYllInRange: r.Bool("paf_yll_in_range"),
				PopulationAttributableFractionYldExists:  r.Bool("paf_yld_exists"),
				PopulationAttributableFractionYldInRange: r.Bool("paf_yld_in_range"),
			},
		})
	}

	sortByID(out, func(r RawRisk) int { return r.ID })

	return out, nil
}

// Covariates returns every covariate.
func (a *Adapter) Covariates(ctx context.Context) ([]RawCovariate, error) {
	t, err := a.table(ctx, TableCovariate)
	if err != nil {
		return nil, err
	}

	out := make([]RawCovariate, 0, len(t))

	for _, r := range t {
		id, err := requireID(r, TableCovariate, "covariate_id")
		if err != nil {
			return nil, err
		}

		out = append(out, RawCovariate{
			ID:          id,
			Name:        r.String("covariate_name").V,
			ByAge:       r.Bool("by_age"),
			BySex:       r.Bool("by_sex"),
			Dichotomous: r.Bool("dichotomous"),
		})
	}

	sortByID(out, func(c RawCovariate) int { return c.ID })

	return out, nil
}

// CoverageGaps returns every coverage gap, ordered by name.
func (a *Adapter) CoverageGaps(ctx context.Context) ([]RawCoverageGap, error) {
	t, err := a.table(ctx, TableCoverageGap)
	if err != nil {
		return nil, err
	}

	links := map[string]Table{}

	for _, name := range []string{TableCoverageGapLevel, TableCoverageGapCause, TableCoverageGapRisk} {
		if links[name], err = a.table(ctx, name); err != nil {
			return nil, err
		}
	}

	levels := categories(links[TableCoverageGapLevel], "coverage_gap_name")
	causes := namedPairs(links[TableCoverageGapCause], "cause_id")
	risks := namedPairs(links[TableCoverageGapRisk], "rei_id")

	out := make([]RawCoverageGap, 0, len(t))

	for _, r := range t {
		name := r.String("coverage_gap_name")
		if !name.Valid {
			return nil, fmt.Errorf("%s: row without coverage_gap_name", TableCoverageGap)
		}

		out = append(out, RawCoverageGap{
			Name:             name.V,
			ReiID:            r.Int("rei_id"),
			Distribution:     r.String("distribution"),
			Male:             r.Bool("male"),
			Female:           r.Bool("female"),
			Yll:              r.Bool("yll"),
			Yld:              r.Bool("yld"),
			Levels:           levels[name.V],
			AffectedCauseIDs: causes[name.V],
			AffectedRiskIDs:  risks[name.V],
			DismodID:         r.Int("dismod_id"),
			Scale:            r.Float("scale"),
			MaxRR:            r.Float("max_rr"),
		})
	}

	slices.SortStableFunc(out, func(a, b RawCoverageGap) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out, nil
}

func namedPairs(t Table, valCol string) map[string][]int {
	out := map[string][]int{}

	for _, r := range t {
		name, v := r.String("coverage_gap_name"), r.Int(valCol)
		if name.Valid && v.Valid {
			out[name.V] = append(out[name.V], v.V)
		}
	}

	for k := range out {
		out[k] = common.SortedUnique(out[k])
	}

	return out
}

package resolve

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
)

// Labels of the fixed reference categories.
const (
	Exposed   = "exposed"
	Unexposed = "unexposed"
)

// DrawsDistribution is the tmred of a continuous risk without bounds.
const DrawsDistribution = "draws"

var pafCalculationTypes = map[int]entity.PafCalculationType{
	0: entity.PafAggregation,
	1: entity.PafCategorical,
	2: entity.PafContinuous,
	3: entity.PafCustom,
	4: entity.PafDirect,
}

// Distribution is the exposure part of a classified risk.
type Distribution struct {
	Name       string
	Categories []entity.Category
	Tmred      *entity.Tmred
	Scalar     *entity.MaybeScalar
}

// RiskFactors resolves risk rows. Affected causes missing from causes are
// skipped with a warning; paf-of-one causes and mediated risks are left for
// linking to check.
func (r *Resolver) RiskFactors(
	raw []gbd.RawRisk, causes *entity.Collection[*entity.Cause],
) (*entity.Collection[*entity.RiskFactor], error) {
	rawNames, ids := make([]string, len(raw)), make([]int, len(raw))
	for i, rf := range raw {
		rawNames[i], ids[i] = rf.Name, rf.ID
	}

	names, keep, err := r.names(entity.KindRiskFactor, rawNames, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.RiskFactor, 0, len(keep))

	for _, i := range keep {
		rf, err := r.riskFactor(raw[i], names[i])
		if err != nil {
			return nil, err
		}

		rf.AffectedCauseIDs = toIDs[entity.CauseID](
			filterKnown(&r.diagnostics, rf, "affected_causes", raw[i].AffectedCauseIDs, causes))
		out = append(out, rf)
	}

	return collection(r, entity.KindRiskFactor, out)
}

func (r *Resolver) riskFactor(raw gbd.RawRisk, name string) (*entity.RiskFactor, error) {
	calc, ok := pafCalculationTypes[raw.CalculationType.Or(-1)]
	if !ok {
		return nil, diagnostic.Newf(diagnostic.CodeUnclassifiableDistribution, string(entity.KindRiskFactor), raw.ID,
			"unknown paf calculation type %s", raw.CalculationType).WithField("rei_calculation_type").WithRow(raw)
	}

	dist, err := r.ClassifyDistribution(raw)
	if err != nil {
		return nil, err
	}

	restrictions, err := RiskRestrictions(entity.KindRiskFactor, raw.ID,
		raw.Male, raw.Female, raw.Yll, raw.Yld,
		raw.YllAgeGroupStart, raw.YllAgeGroupEnd, raw.YldAgeGroupStart, raw.YldAgeGroupEnd)
	if err != nil {
		return nil, err
	}

	return &entity.RiskFactor{
		Name:               name,
		ID:                 entity.ReiID(raw.ID),
		Level:              raw.Level.Or(0),
		MostDetailed:       raw.MostDetailed.Or(false),
		Distribution:       dist.Name,
		PafCalculation:     calc,
		Restrictions:       restrictions,
		Categories:         dist.Categories,
		Tmred:              dist.Tmred,
		RelativeRiskScalar: dist.Scalar,
		Flags: entity.RiskDataFlags{
			ExposureExists:                           raw.Flags.ExposureExists.Ptr(),
			ExposureSDExists:                         raw.Flags.ExposureSDExists.Ptr(),
			RelativeRiskExists:                       raw.Flags.RelativeRiskExists.Ptr(),
			RelativeRiskInRange:                      raw.Flags.RelativeRiskInRange.Ptr(),
			PopulationAttributableFractionYllExists:  raw.Flags.PopulationAttributableFractionYllExists.Ptr(),
			PopulationAttributableFractionYllInRange: raw.Flags.PopulationAttributableFractionYllInRange.Ptr(),
			PopulationAttributableFractionYldExists:  raw.Flags.PopulationAttributableFractionYldExists.Ptr(),
			PopulationAttributableFractionYldInRange: raw.Flags.PopulationAttributableFractionYldInRange.Ptr(),
		},
		ParentID:         entity.ReiID(raw.ParentID.Or(raw.ID)),
		ChildIDs:         toIDs[entity.ReiID](raw.ChildIDs),
		PafOfOneCauseIDs: toIDs[entity.CauseID](raw.PafOfOneCauseIDs),
		AffectedRiskIDs:  toIDs[entity.ReiID](raw.AffectedRiskIDs),
	}, nil
}

// ClassifyDistribution derives the exposure distribution of a risk from its
// exposure type. Custom and aggregate risks have no exposure type and take
// whatever categories, tmred and scalar their metadata carries.
func (r *Resolver) ClassifyDistribution(raw gbd.RawRisk) (Distribution, error) {
	fail := func(field, format string, args ...any) (Distribution, error) {
		return Distribution{}, diagnostic.Newf(diagnostic.CodeUnclassifiableDistribution,
			string(entity.KindRiskFactor), raw.ID, format, args...).WithField(field).WithRow(raw)
	}

	var d Distribution

	if raw.ExposureType.Valid {
		d.Name = strings.ReplaceAll(strings.TrimSpace(raw.ExposureType.V), " ", "_")
	}

	switch d.Name {
	case "normal", "lognormal", "ensemble":
		tmred := &entity.Tmred{Distribution: DrawsDistribution, Inverted: raw.InvExp.Or(false)}
		if raw.TmredDist.Valid {
			if !raw.InvExp.Valid {
				return fail("inv_exp", "tmred %q with unknown inversion", raw.TmredDist.V)
			}

			tmred = boundedTmred(raw)
		}

		scalar := raw.RRScalar
		d.Tmred, d.Scalar = tmred, &scalar

	case "dichotomous":
		d.Categories = []entity.Category{{Key: "cat1", Label: Exposed}, {Key: "cat2", Label: Unexposed}}

	case "ordered_polytomous", "unordered_polytomous":
		if raw.Categories == nil {
			override, ok := r.config.CategoryOverrides[raw.ID]
			if !ok {
				return fail("category_map", "%s risk without a category map", d.Name)
			}

			d.Categories = slices.Clone(override)

			break
		}

		cats, maxOrdinal, err := sortCategories(raw.Categories)
		if err != nil {
			return fail("category_map", "%v", err)
		}

		if !slices.Contains(r.config.ExplicitReferenceRisks, raw.ID) {
			cats = append(cats, entity.Category{Key: "cat" + strconv.Itoa(maxOrdinal+1), Label: Unexposed})
		}

		d.Categories = cats

	case "":
		if raw.Categories != nil {
			cats, _, err := sortCategories(raw.Categories)
			if err != nil {
				return fail("category_map", "%v", err)
			}

			d.Categories = cats
		}

		if raw.TmredDist.Valid {
			if !raw.InvExp.Valid {
				return fail("inv_exp", "tmred %q with unknown inversion", raw.TmredDist.V)
			}

			d.Tmred = boundedTmred(raw)
		}

		if raw.RRScalar.Valid {
			scalar := raw.RRScalar
			d.Scalar = &scalar
		}

	default:
		return fail("exposure_type", "unknown exposure type %q", raw.ExposureType.V)
	}

	if err := checkCategories(d.Categories); err != nil {
		return fail("category_map", "%v", err)
	}

	return d, nil
}

func boundedTmred(raw gbd.RawRisk) *entity.Tmred {
	lower, upper := raw.TmrelLower, raw.TmrelUpper

	return &entity.Tmred{
		Distribution: raw.TmredDist.V,
		Inverted:     raw.InvExp.V,
		Min:          &lower,
		Max:          &upper,
	}
}

// sortCategories orders a category map by the ordinal in its catN keys and
// returns the largest ordinal.
func sortCategories(raw []gbd.RawCategory) ([]entity.Category, int, error) {
	type ordered struct {
		n   int
		cat entity.Category
	}

	cats := make([]ordered, 0, len(raw))

	for _, c := range raw {
		n, err := categoryOrdinal(c.Key)
		if err != nil {
			return nil, 0, err
		}

		cats = append(cats, ordered{n: n, cat: entity.Category{Key: c.Key, Label: c.Label}})
	}

	slices.SortStableFunc(cats, func(a, b ordered) int { return a.n - b.n })

	out := make([]entity.Category, len(cats))
	maxOrdinal := 0

	for i, c := range cats {
		if i > 0 && c.n == cats[i-1].n {
			return nil, 0, fmt.Errorf("duplicate category %q", c.cat.Key)
		}

		out[i] = c.cat
		maxOrdinal = c.n
	}

	return out, maxOrdinal, nil
}

// checkCategories rejects categories numbered past the last category field,
// the synthetic reference category included.
func checkCategories(cats []entity.Category) error {
	for _, c := range cats {
		n, err := categoryOrdinal(c.Key)
		if err != nil {
			return err
		}

		if n > entity.MaxCategories {
			return fmt.Errorf("category %q past cat%d", c.Key, entity.MaxCategories)
		}
	}

	return nil
}

func categoryOrdinal(key string) (int, error) {
	digits, ok := strings.CutPrefix(key, "cat")

	n, err := strconv.Atoi(digits)
	if !ok || err != nil || n < 1 {
		return 0, fmt.Errorf("malformed category key %q", key)
	}

	return n, nil
}

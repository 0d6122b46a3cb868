package resolve

import (
	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
)

// DefaultCoverageGapDistribution applies to coverage gaps whose metadata
// names no distribution.
const DefaultCoverageGapDistribution = "dichotomous"

// CoverageGaps resolves coverage gap rows, which arrive ordered by name.
// Their position in that order stands in for the id when ordering.
func (r *Resolver) CoverageGaps(
	raw []gbd.RawCoverageGap,
	causes *entity.Collection[*entity.Cause],
	risks *entity.Collection[*entity.RiskFactor],
) (*entity.Collection[*entity.CoverageGap], error) {
	rawNames, ordinals := make([]string, len(raw)), make([]int, len(raw))
	for i, g := range raw {
		rawNames[i], ordinals[i] = g.Name, i
	}

	names, keep, err := r.names(entity.KindCoverageGap, rawNames, ordinals)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.CoverageGap, 0, len(keep))

	for _, i := range keep {
		g, err := coverageGap(raw[i], names[i], i)
		if err != nil {
			return nil, err
		}

		g.AffectedCauseIDs = toIDs[entity.CauseID](
			filterKnown(&r.diagnostics, g, "affected_causes", raw[i].AffectedCauseIDs, causes))
		g.AffectedRiskIDs = toIDs[entity.ReiID](
			filterKnown(&r.diagnostics, g, "affected_risk_factors", raw[i].AffectedRiskIDs, risks))
		out = append(out, g)
	}

	return collection(r, entity.KindCoverageGap, out)
}

func coverageGap(raw gbd.RawCoverageGap, name string, ordinal int) (*entity.CoverageGap, error) {
	dist := raw.Distribution.Or(DefaultCoverageGapDistribution)

	var levels []entity.Category

	switch {
	case raw.Levels != nil:
		cats, _, err := sortCategories(raw.Levels)
		if err != nil {
			return nil, diagnostic.Newf(diagnostic.CodeUnclassifiableDistribution, string(entity.KindCoverageGap),
				ordinal, "%v", err).WithField("levels").WithRow(raw)
		}

		levels = cats
	case dist == DefaultCoverageGapDistribution:
		levels = []entity.Category{{Key: "cat1", Label: Exposed}, {Key: "cat2", Label: Unexposed}}
	default:
		return nil, diagnostic.Newf(diagnostic.CodeUnclassifiableDistribution, string(entity.KindCoverageGap),
			ordinal, "%s coverage gap without levels", dist).WithField("levels").WithRow(raw)
	}

	if err := checkCategories(levels); err != nil {
		return nil, diagnostic.Newf(diagnostic.CodeUnclassifiableDistribution, string(entity.KindCoverageGap),
			ordinal, "%v", err).WithField("levels").WithRow(raw)
	}

	none := gbd.Unknown[int]()

	restrictions, err := RiskRestrictions(entity.KindCoverageGap, ordinal,
		raw.Male, raw.Female, raw.Yll, raw.Yld, none, none, none, none)
	if err != nil {
		return nil, err
	}

	g := &entity.CoverageGap{
		Name:         name,
		ID:           convert[int, entity.ReiID](raw.ReiID),
		Distribution: dist,
		Restrictions: restrictions,
		Levels:       levels,
		Ordinal:      ordinal,
	}

	if raw.DismodID.Valid || raw.Scale.Valid || raw.MaxRR.Valid {
		g.ExposureParameters = &entity.ExposureParameters{
			DismodID: convert[int, entity.MEID](raw.DismodID),
			Scale:    raw.Scale,
			MaxRR:    raw.MaxRR,
		}
	}

	return g, nil
}

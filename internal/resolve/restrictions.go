package resolve

import (
	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
)

// Defaults for cause age bounds missing from the metadata.
const (
	defaultAgeStart = 0.0
	defaultAgeEnd   = 95.0
)

// CauseRestrictions derives restrictions from a cause row. Sex and measure
// flags default to false, age bounds to the full 0-95 range. Age ids are
// only set for measures the cause is not excluded from.
func CauseRestrictions(raw gbd.RawCause, ages *AgeTable) (entity.Restrictions, error) {
	male := raw.Male.Or(false)
	female := raw.Female.Or(false)

	r := entity.Restrictions{
		MaleOnly:   !female,
		FemaleOnly: !male,
		YllOnly:    raw.YllOnly.Or(false),
		YldOnly:    raw.YldOnly.Or(false),
	}

	if err := r.Validate(); err != nil {
		return r, restrictionError(entity.KindCause, raw.ID, err).WithRow(raw)
	}

	var err error

	edge := func(field string, age gbd.Null[float64], def float64, lookup func(float64) (*int, error)) *int {
		if err != nil {
			return nil
		}

		v, lerr := lookup(age.Or(def))
		if lerr != nil {
			err = diagnostic.Newf(diagnostic.CodeMissingLookupEdge, string(entity.KindCause), raw.ID,
				"%v", lerr).WithField(field).WithRow(raw)
		}

		return v
	}

	if !r.YldOnly {
		r.YllAgeGroupIDStart = edge("yll_age_start", raw.YllAgeStart, defaultAgeStart, ages.Start)
		r.YllAgeGroupIDEnd = edge("yll_age_end", raw.YllAgeEnd, defaultAgeEnd, ages.End)
	}

	if !r.YllOnly {
		r.YldAgeGroupIDStart = edge("yld_age_start", raw.YldAgeStart, defaultAgeStart, ages.Start)
		r.YldAgeGroupIDEnd = edge("yld_age_end", raw.YldAgeEnd, defaultAgeEnd, ages.End)
	}

	return r, err
}

// RiskRestrictions derives restrictions from applicability flags: a risk
// is male only when it has no female flag, yll only when it has no yld
// flag, and so on. Age group ids are taken as given for each applicable
// measure.
func RiskRestrictions(kind entity.Kind, id int, male, female, yll, yld gbd.Null[bool],
	yllStart, yllEnd, yldStart, yldEnd gbd.Null[int],
) (entity.Restrictions, error) {
	r := entity.Restrictions{
		MaleOnly:   !female.Valid,
		FemaleOnly: !male.Valid,
		YllOnly:    !yld.Valid,
		YldOnly:    !yll.Valid,
	}

	if err := r.Validate(); err != nil {
		return r, restrictionError(kind, id, err)
	}

	if yll.Valid {
		r.YllAgeGroupIDStart = yllStart.Ptr()
		r.YllAgeGroupIDEnd = yllEnd.Ptr()
	}

	if yld.Valid {
		r.YldAgeGroupIDStart = yldStart.Ptr()
		r.YldAgeGroupIDEnd = yldEnd.Ptr()
	}

	return r, nil
}

func restrictionError(kind entity.Kind, id int, err error) *diagnostic.Error {
	return diagnostic.Newf(diagnostic.CodeUnclassifiableRestriction, string(kind), id, "%v", err)
}

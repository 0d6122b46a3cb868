package entity

import (
	"errors"

	"gbd-mapping-generator/internal/gbd"
)

// Restrictions limit the populations and measures an entity applies to.
type Restrictions struct {
	MaleOnly           bool
	FemaleOnly         bool
	YllOnly            bool
	YldOnly            bool
	YllAgeGroupIDStart *int
	YllAgeGroupIDEnd   *int
	YldAgeGroupIDStart *int
	YldAgeGroupIDEnd   *int
}

var (
	errBothSexes    = errors.New("restricted to both male only and female only")
	errBothMeasures = errors.New("restricted to both yll only and yld only")
)

// Validate rejects restrictions that exclude every population or measure.
func (r Restrictions) Validate() error {
	if r.MaleOnly && r.FemaleOnly {
		return errBothSexes
	}

	if r.YllOnly && r.YldOnly {
		return errBothMeasures
	}

	return nil
}

// Tmred is the theoretical minimum risk exposure distribution.
type Tmred struct {
	Distribution string
	Inverted     bool
	// Min and Max are nil when the distribution carries no bounds.
	Min *gbd.Null[float64]
	Max *gbd.Null[float64]
}

// Category is one level of a categorical exposure, e.g. cat1 "exposed".
type Category struct {
	Key   string
	Label string
}

// MaxCategories is the largest number of categories an exposure may have.
const MaxCategories = 149

// ExposureParameters scale the exposure of a coverage gap.
type ExposureParameters struct {
	DismodID MaybeMEID
	Scale    MaybeScalar
	MaxRR    MaybeScalar
}

// PafCalculationType is how population attributable fractions of a risk
// are computed.
type PafCalculationType string

const (
	PafAggregation PafCalculationType = "aggregation"
	PafCategorical PafCalculationType = "categorical"
	PafContinuous  PafCalculationType = "continuous"
	PafCustom      PafCalculationType = "custom"
	PafDirect      PafCalculationType = "direct"
)

// RiskDataFlags record which modelled quantities exist for a risk.
type RiskDataFlags struct {
	ExposureExists                           *bool
	ExposureSDExists                         *bool
	RelativeRiskExists                       *bool
	RelativeRiskInRange                      *bool
	PopulationAttributableFractionYllExists  *bool
	PopulationAttributableFractionYllInRange *bool
	PopulationAttributableFractionYldExists  *bool
	PopulationAttributableFractionYldInRange *bool
}

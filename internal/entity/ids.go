package entity

import "gbd-mapping-generator/internal/gbd"

// Kind is an entity kind.
type Kind string

const (
	KindCause       Kind = "cause"
	KindRiskFactor  Kind = "risk_factor"
	KindSequela     Kind = "sequela"
	KindEtiology    Kind = "etiology"
	KindCovariate   Kind = "covariate"
	KindCoverageGap Kind = "coverage_gap"
	KindHealthstate Kind = "healthstate"
)

// Typed GBD identifiers. An id is only meaningful within its kind.
type (
	CauseID       int
	ReiID         int
	SequelaID     int
	HealthstateID int
	CovariateID   int
	MEID          int
)

// Unknown-able ids.
type (
	MaybeMEID          = gbd.Null[MEID]
	MaybeHealthstateID = gbd.Null[HealthstateID]
	MaybeScalar        = gbd.Null[float64]
)

// Entity is implemented by every resolved entity.
type Entity interface {
	EntityName() string
	EntityKind() Kind
	// Key is the numeric id used for ordering and relationship lookup.
	Key() int
}

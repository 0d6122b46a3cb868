package entity

import "gbd-mapping-generator/internal/gbd"

// Healthstate is the disability state of a sequela. It belongs to exactly
// one sequela; both name and id may be unknown.
type Healthstate struct {
	Name gbd.Null[string]
	ID   MaybeHealthstateID
}

// Sequela is a consequence of a cause.
type Sequela struct {
	Name        string
	ID          SequelaID
	DismodID    MaybeMEID
	Healthstate Healthstate
	CauseID     gbd.Null[CauseID]
}

func (s *Sequela) EntityName() string { return s.Name }
func (s *Sequela) EntityKind() Kind   { return KindSequela }
func (s *Sequela) Key() int           { return int(s.ID) }

// Etiology is a pathogen or agent a cause can be attributed to.
type Etiology struct {
	Name string
	ID   ReiID
}

func (e *Etiology) EntityName() string { return e.Name }
func (e *Etiology) EntityKind() Kind   { return KindEtiology }
func (e *Etiology) Key() int           { return int(e.ID) }

// Cause is a node of the cause hierarchy.
type Cause struct {
	Name         string
	ID           CauseID
	DismodID     MaybeMEID
	MostDetailed bool
	Level        int
	Restrictions Restrictions

	Parent     *Cause
	SubCauses  []*Cause
	Sequelae   []*Sequela
	Etiologies []*Etiology

	// Raw relationship ids, consumed by linking.
	ParentID    CauseID
	ChildIDs    []CauseID
	EtiologyIDs []ReiID
}

func (c *Cause) EntityName() string { return c.Name }
func (c *Cause) EntityKind() Kind   { return KindCause }
func (c *Cause) Key() int           { return int(c.ID) }

// RiskFactor is a node of the risk hierarchy.
type RiskFactor struct {
	Name               string
	ID                 ReiID
	Level              int
	MostDetailed       bool
	Distribution       string
	PafCalculation     PafCalculationType
	Restrictions       Restrictions
	Categories         []Category
	Tmred              *Tmred
	RelativeRiskScalar *MaybeScalar
	Flags              RiskDataFlags

	Parent              *RiskFactor
	SubRiskFactors      []*RiskFactor
	AffectedCauses      []*Cause
	PafOfOneCauses      []*Cause
	AffectedRiskFactors []*RiskFactor

	// Raw relationship ids, consumed by linking.
	ParentID         ReiID
	ChildIDs         []ReiID
	AffectedCauseIDs []CauseID
	PafOfOneCauseIDs []CauseID
	AffectedRiskIDs  []ReiID
}

func (r *RiskFactor) EntityName() string { return r.Name }
func (r *RiskFactor) EntityKind() Kind   { return KindRiskFactor }
func (r *RiskFactor) Key() int           { return int(r.ID) }

// Covariate is a model covariate.
type Covariate struct {
	Name        string
	ID          CovariateID
	ByAge       bool
	BySex       bool
	Dichotomous *bool
}

func (c *Covariate) EntityName() string { return c.Name }
func (c *Covariate) EntityKind() Kind   { return KindCovariate }
func (c *Covariate) Key() int           { return int(c.ID) }

// CoverageGap is the absence of an intervention, modelled like a risk.
type CoverageGap struct {
	Name               string
	ID                 gbd.Null[ReiID]
	Distribution       string
	Restrictions       Restrictions
	Levels             []Category
	ExposureParameters *ExposureParameters

	AffectedCauses      []*Cause
	AffectedRiskFactors []*RiskFactor

	// Raw relationship ids, consumed by linking. Ordinal is the position
	// in the name-ordered input and stands in for the often unknown id.
	Ordinal          int
	AffectedCauseIDs []CauseID
	AffectedRiskIDs  []ReiID
}

func (g *CoverageGap) EntityName() string { return g.Name }
func (g *CoverageGap) EntityKind() Kind   { return KindCoverageGap }
func (g *CoverageGap) Key() int           { return g.Ordinal }

package gbd

// RawCause is one row of the cause hierarchy.
type RawCause struct {
	ID           int
	Name         string
	ParentID     Null[int]
	ChildIDs     []int
	MostDetailed Null[bool]
	Level        Null[int]
	Male         Null[bool]
	Female       Null[bool]
	YllOnly      Null[bool]
	YldOnly      Null[bool]
	// Age bounds in years.
	YllAgeStart Null[float64]
	YllAgeEnd   Null[float64]
	YldAgeStart Null[float64]
	YldAgeEnd   Null[float64]
}

// RawCauseME links a modelable entity to a cause.
type RawCauseME struct {
	MEID    int
	CauseID int
	Name    string
}

// RawSequela is one sequela row with its healthstate.
type RawSequela struct {
	ID              int
	Name            string
	MEID            Null[int]
	CauseID         Null[int]
	HealthstateID   Null[int]
	HealthstateName Null[string]
}

// RawEtiology is one etiology row.
type RawEtiology struct {
	ID           int
	Name         string
	MostDetailed Null[bool]
}

// RawCauseEtiology links an etiology to a cause.
type RawCauseEtiology struct {
	CauseID    int
	EtiologyID int
}

// RawCategory is one entry of a category map, e.g. cat1 -> "exposed".
type RawCategory struct {
	Key   string
	Label string
}

// RawRiskFlags are the data availability flags of a risk.
type RawRiskFlags struct {
	ExposureExists                           Null[bool]
	ExposureSDExists                         Null[bool]
	RelativeRiskExists                       Null[bool]
	RelativeRiskInRange                      Null[bool]
	PopulationAttributableFractionYllExists  Null[bool]
	PopulationAttributableFractionYllInRange Null[bool]
	PopulationAttributableFractionYldExists  Null[bool]
	PopulationAttributableFractionYldInRange Null[bool]
}

// RawRisk is one row of the risk hierarchy with its exposure metadata.
type RawRisk struct {
	ID              int
	Name            string
	ParentID        Null[int]
	ChildIDs        []int
	Level           Null[int]
	MostDetailed    Null[bool]
	CalculationType Null[int]
	ExposureType    Null[string]
	RRScalar        Null[float64]
	TmredDist       Null[string]
	TmrelLower      Null[float64]
	TmrelUpper      Null[float64]
	InvExp          Null[bool]
	// Sex and measure applicability; unknown means not applicable.
	Male   Null[bool]
	Female Null[bool]
	Yll    Null[bool]
	Yld    Null[bool]
	// Age bounds as age group ids.
	YllAgeGroupStart Null[int]
	YllAgeGroupEnd   Null[int]
	YldAgeGroupStart Null[int]
	YldAgeGroupEnd   Null[int]
	// Categories is nil when the risk has no category map.
	Categories       []RawCategory
	AffectedCauseIDs []int
	PafOfOneCauseIDs []int
	AffectedRiskIDs  []int
	Flags            RawRiskFlags
}

// RawCovariate is one covariate row.
type RawCovariate struct {
	ID          int
	Name        string
	ByAge       Null[bool]
	BySex       Null[bool]
	Dichotomous Null[bool]
}

// RawCoverageGap is one coverage gap with its levels and affected entities.
// Coverage gaps are keyed by name; ReiID is often unknown.
type RawCoverageGap struct {
	Name             string
	ReiID            Null[int]
	Distribution     Null[string]
	Male             Null[bool]
	Female           Null[bool]
	Yll              Null[bool]
	Yld              Null[bool]
	Levels           []RawCategory
	AffectedCauseIDs []int
	AffectedRiskIDs  []int
	DismodID         Null[int]
	Scale            Null[float64]
	MaxRR            Null[float64]
}

package schema

import (
	"fmt"
	"strings"

	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/match"
)

func entityFields(id Type) []Field {
	return []Field{
		{Name: "name", Type: Named("string")},
		{Name: "kind", Type: Named("string")},
		{Name: "gbd_id", Type: id},
	}
}

func withFields(base []Field, more ...Field) []Field {
	return append(base, more...)
}

// Healthstate is the record of a sequela's health state.
var Healthstate = Record{
	Name:       "Healthstate",
	Superclass: ModelableEntity,
	Doc:        "is a container for healthstate GBD ids and metadata.",
	Fields: []Field{
		{Name: "name", Type: Named(OrUnknown(TypeString))},
		{Name: "kind", Type: Named("string")},
		{Name: "gbd_id", Type: Named(OrUnknown(TypeHSID))},
	},
}

// Sequela is the sequela record.
var Sequela = Record{
	Name:       "Sequela",
	Superclass: ModelableEntity,
	Doc:        "is a container for sequela GBD ids and metadata.",
	Fields: withFields(entityFields(Named(TypeSID)),
		Field{Name: "dismod_id", Type: Named(OrUnknown(TypeMEID))},
		Field{Name: "healthstate", Type: PtrTo("Healthstate")},
	),
}

// Etiology is the etiology record.
var Etiology = Record{
	Name:       "Etiology",
	Superclass: ModelableEntity,
	Doc:        "is a container for etiology GBD ids and metadata.",
	Fields:     entityFields(Named(TypeREIID)),
}

// Cause is the cause record.
var Cause = Record{
	Name:       "Cause",
	Superclass: ModelableEntity,
	Doc:        "is a container for cause GBD ids and metadata.",
	Fields: withFields(entityFields(Named(TypeCID)),
		Field{Name: "me_id", Type: Named(OrUnknown(TypeMEID))},
		Field{Name: "most_detailed", Type: Named("bool")},
		Field{Name: "level", Type: Named("int")},
		Field{Name: "restrictions", Type: PtrTo("Restrictions")},
		Field{Name: "parent", Type: PtrTo("Cause"), Optional: true, Linked: true},
		Field{Name: "sub_causes", Type: SliceOf("Cause"), Optional: true, Linked: true},
		Field{Name: "sequelae", Type: SliceOf("Sequela"), Optional: true},
		Field{Name: "etiologies", Type: SliceOf("Etiology"), Optional: true},
	),
}

// RiskFactor is the risk factor record.
var RiskFactor = Record{
	Name:       "RiskFactor",
	Superclass: ModelableEntity,
	Doc:        "is a container for risk GBD ids and metadata.",
	Fields: withFields(entityFields(Named(TypeREIID)),
		Field{Name: "level", Type: Named("int")},
		Field{Name: "most_detailed", Type: Named("bool")},
		Field{Name: "paf_calculation_type", Type: Named("string")},
		Field{Name: "restrictions", Type: PtrTo("Restrictions")},
		Field{Name: "distribution", Type: Named("string"), Optional: true},
		Field{Name: "exposure_exists", Type: PtrTo("bool"), Optional: true},
		Field{Name: "exposure_sd_exists", Type: PtrTo("bool"), Optional: true},
		Field{Name: "rr_exists", Type: PtrTo("bool"), Optional: true},
		Field{Name: "rr_in_range", Type: PtrTo("bool"), Optional: true},
		Field{Name: "paf_yll_exists", Type: PtrTo("bool"), Optional: true},
		Field{Name: "paf_yll_in_range", Type: PtrTo("bool"), Optional: true},
		Field{Name: "paf_yld_exists", Type: PtrTo("bool"), Optional: true},
		Field{Name: "paf_yld_in_range", Type: PtrTo("bool"), Optional: true},
		Field{Name: "affected_causes", Type: SliceOf("Cause"), Optional: true},
		Field{Name: "paf_of_one_causes", Type: SliceOf("Cause"), Optional: true},
		Field{Name: "parent", Type: PtrTo("RiskFactor"), Optional: true, Linked: true},
		Field{Name: "sub_risk_factors", Type: SliceOf("RiskFactor"), Optional: true, Linked: true},
		Field{Name: "affected_risk_factors", Type: SliceOf("RiskFactor"), Optional: true, Linked: true},
		Field{Name: "categories", Type: PtrTo("Categories"), Optional: true},
		Field{Name: "tmred", Type: PtrTo("Tmred"), Optional: true},
		Field{Name: "rr_scalar", Type: Named(OrUnknown(TypeScalar)), Optional: true},
	),
}

// Covariate is the covariate record.
var Covariate = Record{
	Name:       "Covariate",
	Superclass: ModelableEntity,
	Doc:        "is a container for covariate GBD ids and metadata.",
	Fields: withFields(entityFields(Named(TypeCOVID)),
		Field{Name: "by_age", Type: Named("bool")},
		Field{Name: "by_sex", Type: Named("bool")},
		Field{Name: "dichotomous", Type: PtrTo("bool"), Optional: true},
	),
}

// CoverageGap is the coverage gap record.
var CoverageGap = Record{
	Name:       "CoverageGap",
	Superclass: ModelableEntity,
	Doc:        "is a container for coverage gap GBD ids and metadata.",
	Fields: withFields(entityFields(Named(OrUnknown(TypeREIID))),
		Field{Name: "distribution", Type: Named("string")},
		Field{Name: "restrictions", Type: PtrTo("Restrictions")},
		Field{Name: "levels", Type: PtrTo("Levels")},
		Field{Name: "exposure_parameters", Type: PtrTo("ExposureParameters"), Optional: true},
		Field{Name: "affected_causes", Type: SliceOf("Cause"), Optional: true},
		Field{Name: "affected_risk_factors", Type: SliceOf("RiskFactor"), Optional: true},
	),
}

// Kind describes how one entity kind is emitted.
type Kind struct {
	Kind entity.Kind
	// Record is the entity record; Extra are records declared alongside.
	Record Record
	Extra  []Record
	// Collection is the name of the collection record, e.g. "Causes".
	Collection string
	// Plural is the snake_case collection name, e.g. "risk_factors".
	Plural string
	// Needs lists the kinds whose collections the builder function takes.
	Needs []entity.Kind
}

// Kinds lists the emitted entity kinds in dependency order.
var Kinds = []Kind{
	{Kind: entity.KindEtiology, Record: Etiology, Collection: "Etiologies", Plural: "etiologies"},
	{
		Kind: entity.KindSequela, Record: Sequela, Extra: []Record{Healthstate},
		Collection: "Sequelae", Plural: "sequelae",
	},
	{
		Kind: entity.KindCause, Record: Cause, Collection: "Causes", Plural: "causes",
		Needs: []entity.Kind{entity.KindSequela, entity.KindEtiology},
	},
	{
		Kind: entity.KindRiskFactor, Record: RiskFactor, Collection: "RiskFactors", Plural: "risk_factors",
		Needs: []entity.Kind{entity.KindCause},
	},
	{Kind: entity.KindCovariate, Record: Covariate, Collection: "Covariates", Plural: "covariates"},
	{
		Kind: entity.KindCoverageGap, Record: CoverageGap, Collection: "CoverageGaps", Plural: "coverage_gaps",
		Needs: []entity.Kind{entity.KindCause, entity.KindRiskFactor},
	},
}

// ForKind returns the emission description of kind.
func ForKind(kind entity.Kind) (Kind, error) {
	for _, k := range Kinds {
		if k.Kind == kind {
			return k, nil
		}
	}

	return Kind{}, fmt.Errorf("no schema for kind %q", kind)
}

// CollectionRecord builds the collection record of k with one field per
// entity name, in the given order.
func (k Kind) CollectionRecord(names []string) Record {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Type: PtrTo(k.Record.Name), Ident: EntityIdent(n)}
	}

	return Record{
		Name:       k.Collection,
		Superclass: GbdRecord,
		Doc:        fmt.Sprintf("is a container for GBD %s.", strings.ReplaceAll(k.Plural, "_", " ")),
		Fields:     fields,
	}
}

// EntityIdent returns the collection field name of the entity called name.
func EntityIdent(name string) string {
	return Escape(match.ToGoIdent(name))
}

// Var returns the variable name of k's collection in generated code, e.g.
// "riskFactors".
func (k Kind) Var() string {
	id := match.ToGoIdent(k.Plural)
	return strings.ToLower(id[:1]) + id[1:]
}

// Module returns the template module of k for the given entity names.
func (k Kind) Module(names []string) Module {
	records := append([]Record{}, k.Extra...)
	records = append(records, k.Record, k.CollectionRecord(names))

	return Module{
		Kind:    string(k.Kind),
		Doc:     fmt.Sprintf("Template types for GBD %s.", strings.ReplaceAll(k.Plural, "_", " ")),
		Records: records,
	}
}

package schema

import "strconv"

// Names of the generated id and value types.
const (
	TypeCID      = "CID"
	TypeSID      = "SID"
	TypeHSID     = "HSID"
	TypeMEID     = "MEID"
	TypeREIID    = "REIID"
	TypeCOVID    = "COVID"
	TypeScalar   = "Scalar"
	TypeString   = "String"
	TypeUnknown  = "Unknown"
	UnknownValue = "UNKNOWN"
)

// IDType is a numeric id or value type of the generated package.
type IDType struct {
	Name       string
	Doc        string
	Underlying string
	// OrUnknown also declares a <Name>OrUnknown union with Unknown.
	OrUnknown bool
}

// IDTypes are declared in id.go, in order.
var IDTypes = []IDType{
	{Name: TypeMEID, Doc: "is a modelable entity id.", Underlying: "int", OrUnknown: true},
	{Name: TypeREIID, Doc: "is a risk-etiology-impairment id.", Underlying: "int", OrUnknown: true},
	{Name: TypeCID, Doc: "is a cause id.", Underlying: "int"},
	{Name: TypeSID, Doc: "is a sequela id.", Underlying: "int"},
	{Name: TypeCOVID, Doc: "is a covariate id.", Underlying: "int"},
	{Name: TypeHSID, Doc: "is a health state id.", Underlying: "int", OrUnknown: true},
	{Name: TypeScalar, Doc: "is a raw measure value.", Underlying: "float64", OrUnknown: true},
	{Name: TypeString, Doc: "is a name the GBD metadata may not provide.", Underlying: "string", OrUnknown: true},
}

// OrUnknown returns the name of the union of t and Unknown.
func OrUnknown(t string) string {
	return t + "OrUnknown"
}

// MaxCategories is the number of category fields of Categories and Levels.
const MaxCategories = 149

// Base records, shared by every kind.
var (
	Restrictions = Record{
		Name:       "Restrictions",
		Superclass: GbdRecord,
		Doc:        "is a container for information about sub-populations the entity describes.",
		Fields: []Field{
			{Name: "male_only", Type: Named("bool")},
			{Name: "female_only", Type: Named("bool")},
			{Name: "yll_only", Type: Named("bool")},
			{Name: "yld_only", Type: Named("bool")},
			{Name: "yll_age_group_id_start", Type: PtrTo("int"), Optional: true},
			{Name: "yll_age_group_id_end", Type: PtrTo("int"), Optional: true},
			{Name: "yld_age_group_id_start", Type: PtrTo("int"), Optional: true},
			{Name: "yld_age_group_id_end", Type: PtrTo("int"), Optional: true},
		},
	}

	Tmred = Record{
		Name:       "Tmred",
		Superclass: GbdRecord,
		Doc:        "is a container for theoretical minimum risk exposure distribution data.",
		Fields: []Field{
			{Name: "distribution", Type: Named("string")},
			{Name: "inverted", Type: Named("bool")},
			{Name: "min", Type: Named(OrUnknown(TypeScalar)), Optional: true},
			{Name: "max", Type: Named(OrUnknown(TypeScalar)), Optional: true},
		},
	}

	Categories = categoryRecord("Categories", "is a container for categorical risk exposure levels.")

	Levels = categoryRecord("Levels", "is a container for coverage gap exposure levels.")

	ExposureParameters = Record{
		Name:       "ExposureParameters",
		Superclass: GbdRecord,
		Doc:        "is a container for the parameters that scale a coverage gap exposure.",
		Fields: []Field{
			{Name: "dismod_id", Type: Named(OrUnknown(TypeMEID))},
			{Name: "scale", Type: Named(OrUnknown(TypeScalar))},
			{Name: "max_rr", Type: Named(OrUnknown(TypeScalar))},
		},
	}
)

func categoryRecord(name, doc string) Record {
	fields := make([]Field, MaxCategories)
	for i := range fields {
		fields[i] = Field{Name: CategoryKey(i + 1), Type: Named("string"), Optional: true}
	}

	return Record{Name: name, Superclass: GbdRecord, Doc: doc, Fields: fields}
}

// CategoryKey returns the key of the n-th category, e.g. "cat3".
func CategoryKey(n int) string {
	return "cat" + strconv.Itoa(n)
}

// Base is the module of shared records, emitted as base_template.go.
func Base() Module {
	return Module{
		Kind:    "base",
		Doc:     "Template types shared by every GBD entity kind.",
		Records: []Record{Restrictions, Tmred, Categories, Levels, ExposureParameters},
	}
}

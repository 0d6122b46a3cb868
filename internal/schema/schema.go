package schema

import (
	"errors"
	"fmt"
	"strings"

	"gbd-mapping-generator/internal/match"
)

// Superclasses of generated records.
const (
	// GbdRecord is the root of every record.
	GbdRecord = "GbdRecord"
	// ModelableEntity records describe a named GBD entity and start with
	// name, kind and gbd_id.
	ModelableEntity = "ModelableEntity"
)

// ModelableEntityFields are the leading fields of every ModelableEntity.
var ModelableEntityFields = []string{"name", "kind", "gbd_id"}

// Type is a Go type expression in the generated package.
type Type struct {
	Name      string
	IsPointer bool
	IsSlice   bool
	Elem      *Type
}

// Named returns the named type n.
func Named(n string) Type { return Type{Name: n} }

// PtrTo returns a pointer to the named type n.
func PtrTo(n string) Type { return Type{Name: n, IsPointer: true} }

// SliceOf returns a slice of pointers to the named type n.
func SliceOf(n string) Type {
	elem := PtrTo(n)
	return Type{IsSlice: true, Elem: &elem}
}

// String returns the type as written in Go source, e.g. "[]*Cause".
func (t Type) String() string {
	var sb strings.Builder

	if t.IsSlice {
		sb.WriteString("[]")

		if t.Elem != nil {
			sb.WriteString(t.Elem.String())
		}

		return sb.String()
	}

	if t.IsPointer {
		sb.WriteString("*")
	}

	sb.WriteString(t.Name)

	return sb.String()
}

// Base returns the innermost named type.
func (t Type) Base() string {
	if t.IsSlice && t.Elem != nil {
		return t.Elem.Base()
	}

	return t.Name
}

// Field is one field of a record.
type Field struct {
	// Name is the snake_case GBD name, also used in struct tags.
	Name string
	Type Type
	// Optional fields may be absent and are tagged omitempty.
	Optional bool
	// Linked fields refer to records of the same collection and are
	// assigned after every instance exists.
	Linked bool
	// Ident overrides the Go name derived from Name.
	Ident string
}

// GoName returns the Go name of f.
func (f Field) GoName() string {
	if f.Ident != "" {
		return f.Ident
	}

	return GoName(f.Name)
}

// Record is one generated struct type.
type Record struct {
	Name       string
	Superclass string
	Doc        string
	Fields     []Field
}

// Module is the set of records emitted into one template file.
type Module struct {
	// Kind is the file stem, e.g. "cause" for cause_template.go.
	Kind    string
	Doc     string
	Records []Record
}

// Reserved are method names of generated records; fields with the same
// Go name get a trailing underscore.
var Reserved = []string{"EntityKind", "EntityName", "Fields", "String", "Validate"}

var initialisms = map[string]string{"id": "ID", "me": "ME", "rr": "RR", "sd": "SD"}

// GoName returns the Go field name of a record field.
func GoName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if up, ok := initialisms[w]; ok {
			words[i] = up
		} else {
			words[i] = match.ToGoIdent(w)
		}
	}

	return Escape(strings.Join(words, ""))
}

// Escape appends an underscore to reserved identifiers.
func Escape(ident string) string {
	for _, r := range Reserved {
		if ident == r {
			return ident + "_"
		}
	}

	return ident
}

// Field returns the field with the given GBD name.
func (r Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// IsEntity reports whether r describes a named GBD entity.
func (r Record) IsEntity() bool {
	return r.Superclass == ModelableEntity
}

var (
	errNoName           = errors.New("record without name")
	errOptionalOrdering = errors.New("required field after optional field")
	errDuplicateField   = errors.New("duplicate field")
	errSuperclass       = errors.New("superclass fields missing")
)

// Validate checks that field names and Go names are unique, required
// fields come before optional ones and a ModelableEntity starts with its
// superclass fields.
func (r Record) Validate() error {
	if r.Name == "" {
		return errNoName
	}

	switch r.Superclass {
	case GbdRecord:
	case ModelableEntity:
		if len(r.Fields) < len(ModelableEntityFields) {
			return fmt.Errorf("%s: %w", r.Name, errSuperclass)
		}

		for i, name := range ModelableEntityFields {
			if r.Fields[i].Name != name {
				return fmt.Errorf("%s: field %d is %q, want %q: %w", r.Name, i, r.Fields[i].Name, name, errSuperclass)
			}
		}
	default:
		return fmt.Errorf("%s: unknown superclass %q", r.Name, r.Superclass)
	}

	names := make(map[string]string, len(r.Fields))
	optional := false

	for _, f := range r.Fields {
		goName := f.GoName()
		if prev, ok := names[goName]; ok {
			return fmt.Errorf("%s: %q and %q both become %s: %w", r.Name, prev, f.Name, goName, errDuplicateField)
		}

		names[goName] = f.Name

		if f.Optional {
			optional = true
		} else if optional {
			return fmt.Errorf("%s.%s: %w", r.Name, f.Name, errOptionalOrdering)
		}
	}

	return nil
}

// Validate validates every record of m.
func (m Module) Validate() error {
	seen := map[string]bool{}

	for _, r := range m.Records {
		if seen[r.Name] {
			return fmt.Errorf("module %s: record %s declared twice", m.Kind, r.Name)
		}

		seen[r.Name] = true

		if err := r.Validate(); err != nil {
			return fmt.Errorf("module %s: %w", m.Kind, err)
		}
	}

	return nil
}

// Record returns the record with the given name.
func (m Module) Record(name string) (Record, bool) {
	for _, r := range m.Records {
		if r.Name == name {
			return r, true
		}
	}

	return Record{}, false
}

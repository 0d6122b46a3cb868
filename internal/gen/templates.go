package gen

import (
	"bytes"
	"text/template"

	"gbd-mapping-generator/internal/schema"
)

type idTemplateData struct {
	Header  string
	Package string
	Types   []idTypeData
}

type idTypeData struct {
	Name       string
	Doc        string
	Underlying string
	OrUnknown  bool
}

var idTemplate = template.Must(template.New("id").Parse(`{{.Header}}
// Package {{.Package}} maps GBD entity names to their ids and metadata.
package {{.Package}}

import (
	"errors"
	"fmt"
	"strconv"
)
{{range .Types}}
// {{.Name}} {{.Doc}}
type {{.Name}} {{.Underlying}}

func (v {{.Name}}) String() string {
{{- if eq .Underlying "string"}}
	return string(v)
{{- else}}
	return "{{.Name}}(" + {{if eq .Underlying "int"}}strconv.Itoa(int(v)){{else}}strconv.FormatFloat(float64(v), 'g', -1, 64){{end}} + ")"
{{- end}}
}
{{end}}
// Unknown marks a value the GBD metadata does not provide.
type Unknown struct{}

// UNKNOWN is the Unknown value.
var UNKNOWN = Unknown{}

func (Unknown) String() string {
	return "UNKNOWN"
}

// ErrUnknownEntity is returned when a quantity is requested for an UNKNOWN value.
var ErrUnknownEntity = errors.New("unknown entity")
{{range .Types}}{{if .OrUnknown}}
// {{.Name}}OrUnknown is a {{.Name}} or UNKNOWN.
type {{.Name}}OrUnknown interface {
	fmt.Stringer
	is{{.Name}}OrUnknown()
}

func ({{.Name}}) is{{.Name}}OrUnknown() {}

func (Unknown) is{{.Name}}OrUnknown() {}
{{end}}{{end}}
// Known returns the value held by v, or ErrUnknownEntity when v is UNKNOWN.
func Known[T any](v fmt.Stringer) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: %v", ErrUnknownEntity, v)
	}

	return t, nil
}
`))

type baseTemplateData struct {
	Header  string
	Package string
	Records string
}

var baseTemplate = template.Must(template.New("base").Parse(`{{.Header}}
package {{.Package}}

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Field is one named field of a record.
type Field struct {
	Name  string
	Value any
}

// Record is implemented by every generated record.
type Record interface {
	// Fields returns the fields in declaration order.
	Fields() []Field
}

// ModelableEntity is a record describing a named GBD entity.
type ModelableEntity interface {
	Record
	EntityName() string
	EntityKind() string
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Get returns the value of the named field of r.
func Get(r Record, name string) (any, bool) {
	for _, f := range r.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// ToMap converts r to a map keyed by field name. Nested records become maps
// and lists of records become lists of maps. Nil, zero and empty fields are
// omitted. Each entity is expanded once; later references to it, including
// cyclic ones, are replaced by its name.
func ToMap(r Record) map[string]any {
	return toMap(r, map[Record]bool{})
}

func toMap(r Record, seen map[Record]bool) map[string]any {
	seen[r] = true
	out := map[string]any{}

	for _, f := range r.Fields() {
		v, ok := present(f.Value)
		if !ok {
			continue
		}

		if recs, ok := asRecords(v); ok {
			list := make([]any, len(recs))
			for i, rec := range recs {
				list[i] = nested(rec, seen)
			}

			out[f.Name] = list

			continue
		}

		if rec, ok := v.(Record); ok {
			out[f.Name] = nested(rec, seen)

			continue
		}

		out[f.Name] = v
	}

	return out
}

func nested(r Record, seen map[Record]bool) any {
	if e, ok := r.(ModelableEntity); ok && seen[r] {
		return e.EntityName()
	}

	return toMap(r, seen)
}

// Equal reports whether a and b are records of the same type with equal
// fields. Related entities are compared by kind and name.
func Equal(a, b Record) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	fa, fb := a.Fields(), b.Fields()
	for i := range fa {
		if !equalValue(fa[i].Value, fb[i].Value) {
			return false
		}
	}

	return true
}

func equalValue(a, b any) bool {
	ra, aok := asRecords(a)
	rb, bok := asRecords(b)

	if aok || bok {
		if len(ra) != len(rb) {
			return false
		}

		for i := range ra {
			if !equalRecord(ra[i], rb[i]) {
				return false
			}
		}

		return true
	}

	if x, ok := a.(Record); ok && !isNil(a) {
		y, ok := b.(Record)

		return ok && !isNil(b) && equalRecord(x, y)
	}

	return reflect.DeepEqual(deref(a), deref(b))
}

func equalRecord(a, b Record) bool {
	ea, aok := a.(ModelableEntity)
	eb, bok := b.(ModelableEntity)

	if aok && bok {
		return ea.EntityKind() == eb.EntityKind() && ea.EntityName() == eb.EntityName()
	}

	return Equal(a, b)
}

// Format returns the display form of r: its type and every set field, one
// per line, with related entities shown by name.
func Format(r Record) string {
	var b strings.Builder

	b.WriteString(reflect.Indirect(reflect.ValueOf(r)).Type().Name())
	b.WriteString("(")

	first := true

	for _, f := range r.Fields() {
		if f.Value == nil || isNil(f.Value) {
			continue
		}

		if !first {
			b.WriteString(",")
		}

		first = false

		b.WriteString("\n" + f.Name + "=" + display(deref(f.Value)))
	}

	b.WriteString(")")

	return b.String()
}

func display(v any) string {
	if e, ok := v.(ModelableEntity); ok {
		return e.EntityName()
	}

	if r, ok := v.(Record); ok {
		return Format(r)
	}

	if recs, ok := asRecords(v); ok {
		names := make([]string, len(recs))
		for i, r := range recs {
			names[i] = display(r)
		}

		return "[" + strings.Join(names, ", ") + "]"
	}

	switch s := v.(type) {
	case string:
		return strconv.Quote(s)
	case String:
		return strconv.Quote(string(s))
	}

	return fmt.Sprint(v)
}

// deref returns the value a pointer to a plain value points to.
func deref(v any) any {
	if _, ok := v.(Record); ok {
		return v
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}

	return v
}

// present dereferences v and reports whether it is set. Nil, zero and empty
// values are not; UNKNOWN is.
func present(v any) (any, bool) {
	if v == nil || isNil(v) {
		return nil, false
	}

	v = deref(v)
	if _, ok := v.(Unknown); ok {
		return v, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		return v, rv.Len() > 0
	}

	return v, !rv.IsZero()
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	default:
		return v == nil
	}
}

// asRecords returns the elements of v when it is a slice of records.
func asRecords(v any) ([]Record, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || !rv.Type().Elem().Implements(reflect.TypeFor[Record]()) {
		return nil, false
	}

	out := make([]Record, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface().(Record)
	}

	return out, true
}
{{.Records}}
// Validate reports restrictions that exclude every sex or every measure.
func (r *Restrictions) Validate() error {
	if r.MaleOnly && r.FemaleOnly {
		return errors.New("restricted to both male only and female only")
	}

	if r.YllOnly && r.YldOnly {
		return errors.New("restricted to both yll only and yld only")
	}

	return nil
}
`))

// EmitIDs renders id.go: the id types, Scalar and the UNKNOWN marker.
func (e *Emitter) EmitIDs() (GeneratedFile, error) {
	data := idTemplateData{Header: Header, Package: e.config.PackageName}
	for _, t := range schema.IDTypes {
		data.Types = append(data.Types, idTypeData{
			Name:       t.Name,
			Doc:        t.Doc,
			Underlying: t.Underlying,
			OrUnknown:  t.OrUnknown,
		})
	}

	var buf bytes.Buffer
	if err := idTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, emitError("id", "executing template: %v", err)
	}

	return e.format("id.go", buf.Bytes())
}

// EmitBase renders base_template.go: the record contract and the records
// shared by every kind.
func (e *Emitter) EmitBase() (GeneratedFile, error) {
	base := schema.Base()
	if err := base.Validate(); err != nil {
		return GeneratedFile{}, emitError(base.Kind, "%v", err)
	}

	data := baseTemplateData{
		Header:  Header,
		Package: e.config.PackageName,
		Records: renderRecords(base.Records),
	}

	var buf bytes.Buffer
	if err := baseTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, emitError(base.Kind, "executing template: %v", err)
	}

	return e.format(fileName(base.Kind, true), buf.Bytes())
}

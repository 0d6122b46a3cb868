package gen

import (
	"fmt"
	"strconv"
	"strings"

	"gbd-mapping-generator/internal/schema"
)

// EmitTemplate renders the record types of m into <kind>_template.go.
func (e *Emitter) EmitTemplate(m schema.Module) (GeneratedFile, error) {
	if err := m.Validate(); err != nil {
		return GeneratedFile{}, emitError(m.Kind, "%v", err)
	}

	var sb strings.Builder

	sb.WriteString(Header)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("package %s\n\n", e.config.PackageName))
	sb.WriteString(fmt.Sprintf("// %s\n", m.Doc))
	sb.WriteString(renderRecords(m.Records))

	return e.format(fileName(m.Kind, true), []byte(sb.String()))
}

func renderRecords(records []schema.Record) string {
	var sb strings.Builder

	for _, r := range records {
		sb.WriteString("\n")
		sb.WriteString(renderRecord(r))
	}

	return sb.String()
}

// renderRecord renders the struct of r, its superclass assertion and its
// methods.
func renderRecord(r schema.Record) string {
	var sb strings.Builder

	recv := receiver(r.Name)
	collection := hasIdents(r)

	sb.WriteString(fmt.Sprintf("// %s %s\n", r.Name, r.Doc))
	sb.WriteString(fmt.Sprintf("type %s struct {\n", r.Name))

	for _, f := range r.Fields {
		// Collection fields are named after entities and may be long, so
		// they carry no tag.
		if collection {
			sb.WriteString(fmt.Sprintf("\t%s %s\n", f.GoName(), f.Type))
			continue
		}

		sb.WriteString(fmt.Sprintf("\t%s %s `gbd:\"%s\"`\n", f.GoName(), f.Type, tag(f)))
	}

	sb.WriteString("}\n\n")

	iface := "Record"
	if r.IsEntity() {
		iface = schema.ModelableEntity
	}

	sb.WriteString(fmt.Sprintf("var _ %s = (*%s)(nil)\n\n", iface, r.Name))

	items := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		items[i] = fmt.Sprintf("{%s, %s.%s}", strconv.Quote(f.Name), recv, f.GoName())
	}

	sb.WriteString("// Fields returns the fields in declaration order.\n")
	sb.WriteString(fmt.Sprintf("func (%s *%s) Fields() []Field {\n", recv, r.Name))
	sb.WriteString(TextWrap("return []Field{", items, "}", LineWidth, 1))
	sb.WriteString("\n}\n\n")

	if r.IsEntity() {
		sb.WriteString(entityName(r, recv))
		sb.WriteString(fmt.Sprintf("func (%s *%s) EntityKind() string { return %s.Kind }\n\n", recv, r.Name, recv))
	}

	sb.WriteString(fmt.Sprintf("func (%s *%s) String() string { return Format(%s) }\n", recv, r.Name, recv))

	return sb.String()
}

// entityName renders the EntityName method. A name that may be UNKNOWN is
// held in an interface and read through its String method.
func entityName(r schema.Record, recv string) string {
	if f, ok := r.Field("name"); !ok || f.Type.String() == "string" {
		return fmt.Sprintf("func (%s *%s) EntityName() string { return %s.Name }\n\n", recv, r.Name, recv)
	}

	return fmt.Sprintf(`func (%[1]s *%[2]s) EntityName() string {
	if %[1]s.Name == nil {
		return ""
	}

	return %[1]s.Name.String()
}

`, recv, r.Name)
}

func tag(f schema.Field) string {
	if f.Optional {
		return f.Name + ",omitempty"
	}

	return f.Name
}

func hasIdents(r schema.Record) bool {
	for _, f := range r.Fields {
		if f.Ident != "" {
			return true
		}
	}

	return false
}

// receiver returns the receiver name of a type: its first letter, lowered.
func receiver(typeName string) string {
	if typeName == "" {
		return "r"
	}

	return strings.ToLower(typeName[:1])
}

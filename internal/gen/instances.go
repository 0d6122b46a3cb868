package gen

import (
	"fmt"
	"strings"

	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/schema"
)

// literal is a keyed composite literal of a record, fields in schema order.
type literal struct {
	typ    string
	fields []keyed
}

type keyed struct {
	key string
	val value
}

// instance is one entity of a collection: its literal and the linked
// fields assigned once every entity of the collection exists.
type instance struct {
	ident  string
	lit    *literal
	linked []keyed
}

// buildLiteral orders vals by the fields of rec. A value for a field rec
// does not declare, or a missing required field, is an error.
func buildLiteral(rec schema.Record, vals values) (*literal, error) {
	lit, linked, err := splitLiteral(rec, vals)
	if err != nil {
		return nil, err
	}

	lit.fields = append(lit.fields, linked...)

	return lit, nil
}

func splitLiteral(rec schema.Record, vals values) (*literal, []keyed, error) {
	for name := range vals {
		if _, ok := rec.Field(name); !ok {
			return nil, nil, fmt.Errorf("%s has no field %q", rec.Name, name)
		}
	}

	lit := &literal{typ: rec.Name}

	var linked []keyed

	for _, f := range rec.Fields {
		v, ok := vals[f.Name]
		if !ok {
			if !f.Optional {
				return nil, nil, fmt.Errorf("%s: missing required field %q", rec.Name, f.Name)
			}

			continue
		}

		k := keyed{key: f.GoName(), val: v}
		if f.Linked {
			linked = append(linked, k)
		} else {
			lit.fields = append(lit.fields, k)
		}
	}

	return lit, linked, nil
}

func collect[T entity.Entity](c *entity.Collection[T], rec schema.Record, fn func(T) (values, error)) ([]instance, error) {
	out := make([]instance, 0, c.Len())

	for _, e := range c.All() {
		vals, err := fn(e)
		if err != nil {
			return nil, emitError(string(e.EntityKind()), "%s: %v", e.EntityName(), err)
		}

		lit, linked, err := splitLiteral(rec, vals)
		if err != nil {
			return nil, emitError(string(e.EntityKind()), "%s: %v", e.EntityName(), err)
		}

		out = append(out, instance{ident: schema.EntityIdent(e.EntityName()), lit: lit, linked: linked})
	}

	return out, nil
}

func instances(kind entity.Kind, g *entity.Graph) ([]instance, error) {
	rec := kindOf(kind).Record

	switch kind {
	case entity.KindSequela:
		return collect(g.Sequelae, rec, sequelaValues)
	case entity.KindEtiology:
		return collect(g.Etiologies, rec, etiologyValues)
	case entity.KindCause:
		return collect(g.Causes, rec, causeValues)
	case entity.KindRiskFactor:
		return collect(g.RiskFactors, rec, riskValues)
	case entity.KindCovariate:
		return collect(g.Covariates, rec, covariateValues)
	case entity.KindCoverageGap:
		return collect(g.CoverageGaps, rec, coverageGapValues)
	default:
		return nil, emitError(string(kind), "no instances for kind")
	}
}

// EmitInstances renders <kind>.go: a Build function returning the
// collection of kind, with one literal per entity in collection order.
// Relationships within the collection are assigned after the literal.
func (e *Emitter) EmitInstances(kind entity.Kind, g *entity.Graph) (GeneratedFile, error) {
	k, err := schema.ForKind(kind)
	if err != nil {
		return GeneratedFile{}, emitError(string(kind), "%v", err)
	}

	insts, err := instances(kind, g)
	if err != nil {
		return GeneratedFile{}, err
	}

	params := make([]string, len(k.Needs))
	for i, need := range k.Needs {
		nk := kindOf(need)
		params[i] = fmt.Sprintf("%s *%s", nk.Var(), nk.Collection)
	}

	var sb strings.Builder

	sb.WriteString(Header)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("package %s\n\n", e.config.PackageName))
	sb.WriteString(fmt.Sprintf("// Build%s returns the GBD %s.\n", k.Collection, strings.ReplaceAll(k.Plural, "_", " ")))
	sb.WriteString(TextWrap(fmt.Sprintf("func Build%s(", k.Collection), params, fmt.Sprintf(") *%s {", k.Collection), LineWidth, 0))
	sb.WriteString("\n")

	if len(insts) == 0 {
		sb.WriteString(fmt.Sprintf("\treturn &%s{}\n}\n", k.Collection))

		return e.format(fileName(string(kind), false), []byte(sb.String()))
	}

	sb.WriteString(fmt.Sprintf("\t%s := &%s{\n", k.Var(), k.Collection))

	for _, inst := range insts {
		writeLiteral(&sb, inst.ident+": ", inst.lit, 2, ",")
	}

	sb.WriteString("\t}\n")

	var assigned bool

	for _, inst := range insts {
		for _, f := range inst.linked {
			if !assigned {
				sb.WriteString("\n")

				assigned = true
			}

			target := fmt.Sprintf("%s.%s.%s = ", k.Var(), inst.ident, f.key)
			if f.val.list != nil {
				sb.WriteString(TextWrap(target+"[]*"+f.val.list.typ+"{", f.val.list.refs, "}", LineWidth, 1))
			} else {
				sb.WriteString("\t" + target + f.val.expr)
			}

			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n\treturn %s\n}\n", k.Var()))

	return e.format(fileName(string(kind), false), []byte(sb.String()))
}

// writeLiteral writes prefix &Type{ ... } followed by suffix at the given
// indentation, one field per line. Keys are measured padded to the longest
// key of the literal, the alignment gofmt gives them.
func writeLiteral(sb *strings.Builder, prefix string, lit *literal, indent int, suffix string) {
	tabs := strings.Repeat("\t", indent)

	sb.WriteString(tabs + prefix + "&" + lit.typ + "{\n")

	width := 0
	for _, f := range lit.fields {
		width = max(width, len(f.key))
	}

	inner := tabs + "\t"

	for _, f := range lit.fields {
		key := f.key + ":" + strings.Repeat(" ", width-len(f.key)+1)

		switch {
		case f.val.lit != nil:
			writeLiteral(sb, f.key+": ", f.val.lit, indent+1, ",")
		case f.val.list != nil:
			sb.WriteString(TextWrap(key+"[]*"+f.val.list.typ+"{", f.val.list.refs, "},", LineWidth, indent+1))
			sb.WriteString("\n")
		default:
			sb.WriteString(inner + key + f.val.expr + ",\n")
		}
	}

	sb.WriteString(tabs + "}" + suffix + "\n")
}

package gen

import (
	"fmt"
	"math"
	"strconv"

	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/schema"
)

// value is one field value of an instance: a Go expression, a nested
// record literal or a list of references into a collection.
type value struct {
	expr string
	lit  *literal
	list *refList
}

// values maps GBD field names to the values an instance sets. Absent
// optional fields are not in the map.
type values map[string]value

type refList struct {
	typ  string
	refs []string
}

func str(s string) value { return value{expr: strconv.Quote(s)} }

func boolean(b bool) value { return value{expr: strconv.FormatBool(b)} }

func integer(n int) value { return value{expr: strconv.Itoa(n)} }

func id[T ~int](typ string, v T) value {
	return value{expr: fmt.Sprintf("%s(%d)", typ, int(v))}
}

func maybeID[T ~int](typ string, v gbd.Null[T]) value {
	n, ok := v.Get()
	if !ok {
		return value{expr: schema.UnknownValue}
	}

	return id(typ, n)
}

// maybeScalar renders a measure value. Values that have no Go literal are
// unknown.
func maybeScalar(v gbd.Null[float64]) value {
	f, ok := v.Get()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return value{expr: schema.UnknownValue}
	}

	return value{expr: fmt.Sprintf("%s(%s)", schema.TypeScalar, strconv.FormatFloat(f, 'g', -1, 64))}
}

func (v values) setPtrInt(name string, p *int) {
	if p != nil {
		v[name] = value{expr: fmt.Sprintf("Ptr(%d)", *p)}
	}
}

func (v values) setPtrBool(name string, p *bool) {
	if p != nil {
		v[name] = value{expr: fmt.Sprintf("Ptr(%t)", *p)}
	}
}

func (v values) setString(name, s string) {
	if s != "" {
		v[name] = str(s)
	}
}

func (v values) setRecord(name string, rec schema.Record, fields values) error {
	if len(fields) == 0 {
		return nil
	}

	lit, err := buildLiteral(rec, fields)
	if err != nil {
		return err
	}

	v[name] = value{lit: lit}

	return nil
}

// setRefs sets a list of references to entities of collection k.
func setRefs[T entity.Entity](v values, name string, k schema.Kind, items []T) {
	if len(items) == 0 {
		return
	}

	refs := make([]string, len(items))
	for i, item := range items {
		refs[i] = ref(k, item)
	}

	v[name] = value{list: &refList{typ: k.Record.Name, refs: refs}}
}

func setRef[T entity.Entity](v values, name string, k schema.Kind, item T, ok bool) {
	if ok {
		v[name] = value{expr: ref(k, item)}
	}
}

// ref returns the expression naming e in the collection variable of k,
// e.g. "causes.Measles".
func ref[T entity.Entity](k schema.Kind, e T) string {
	return k.Var() + "." + schema.EntityIdent(e.EntityName())
}

func kindOf(kind entity.Kind) schema.Kind {
	k, err := schema.ForKind(kind)
	if err != nil {
		panic(err)
	}

	return k
}

func entityValues[T entity.Entity](e T, gbdID value) values {
	return values{
		"name":   str(e.EntityName()),
		"kind":   str(string(e.EntityKind())),
		"gbd_id": gbdID,
	}
}

func restrictionValues(r entity.Restrictions) values {
	v := values{
		"male_only":   boolean(r.MaleOnly),
		"female_only": boolean(r.FemaleOnly),
		"yll_only":    boolean(r.YllOnly),
		"yld_only":    boolean(r.YldOnly),
	}
	v.setPtrInt("yll_age_group_id_start", r.YllAgeGroupIDStart)
	v.setPtrInt("yll_age_group_id_end", r.YllAgeGroupIDEnd)
	v.setPtrInt("yld_age_group_id_start", r.YldAgeGroupIDStart)
	v.setPtrInt("yld_age_group_id_end", r.YldAgeGroupIDEnd)

	return v
}

func restrictions(r entity.Restrictions) (value, error) {
	lit, err := buildLiteral(schema.Restrictions, restrictionValues(r))
	if err != nil {
		return value{}, err
	}

	return value{lit: lit}, nil
}

func categoryValues(cats []entity.Category) values {
	v := values{}
	for _, c := range cats {
		v[c.Key] = str(c.Label)
	}

	return v
}

// maybeString renders a name of the String type, or UNKNOWN.
func maybeString(v gbd.Null[string]) value {
	s, ok := v.Get()
	if !ok {
		return value{expr: schema.UnknownValue}
	}

	return value{expr: fmt.Sprintf("%s(%s)", schema.TypeString, strconv.Quote(s))}
}

func healthstateValues(h entity.Healthstate) values {
	return values{
		"name":   maybeString(h.Name),
		"kind":   str(string(entity.KindHealthstate)),
		"gbd_id": maybeID(schema.TypeHSID, h.ID),
	}
}

func sequelaValues(s *entity.Sequela) (values, error) {
	v := entityValues(s, id(schema.TypeSID, s.ID))
	v["dismod_id"] = maybeID(schema.TypeMEID, s.DismodID)

	err := v.setRecord("healthstate", schema.Healthstate, healthstateValues(s.Healthstate))

	return v, err
}

func etiologyValues(e *entity.Etiology) (values, error) {
	return entityValues(e, id(schema.TypeREIID, e.ID)), nil
}

func causeValues(c *entity.Cause) (values, error) {
	v := entityValues(c, id(schema.TypeCID, c.ID))
	v["me_id"] = maybeID(schema.TypeMEID, c.DismodID)
	v["most_detailed"] = boolean(c.MostDetailed)
	v["level"] = integer(c.Level)

	r, err := restrictions(c.Restrictions)
	if err != nil {
		return nil, err
	}

	v["restrictions"] = r

	causes := kindOf(entity.KindCause)
	setRef(v, "parent", causes, c.Parent, c.Parent != nil)
	setRefs(v, "sub_causes", causes, c.SubCauses)
	setRefs(v, "sequelae", kindOf(entity.KindSequela), c.Sequelae)
	setRefs(v, "etiologies", kindOf(entity.KindEtiology), c.Etiologies)

	return v, nil
}

func riskValues(r *entity.RiskFactor) (values, error) {
	v := entityValues(r, id(schema.TypeREIID, r.ID))
	v["level"] = integer(r.Level)
	v["most_detailed"] = boolean(r.MostDetailed)
	v["paf_calculation_type"] = str(string(r.PafCalculation))

	res, err := restrictions(r.Restrictions)
	if err != nil {
		return nil, err
	}

	v["restrictions"] = res
	v.setString("distribution", r.Distribution)

	f := r.Flags
	v.setPtrBool("exposure_exists", f.ExposureExists)
	v.setPtrBool("exposure_sd_exists", f.ExposureSDExists)
	v.setPtrBool("rr_exists", f.RelativeRiskExists)
	v.setPtrBool("rr_in_range", f.RelativeRiskInRange)
	v.setPtrBool("paf_yll_exists", f.PopulationAttributableFractionYllExists)
	v.setPtrBool("paf_yll_in_range", f.PopulationAttributableFractionYllInRange)
	v.setPtrBool("paf_yld_exists", f.PopulationAttributableFractionYldExists)
	v.setPtrBool("paf_yld_in_range", f.PopulationAttributableFractionYldInRange)

	causes := kindOf(entity.KindCause)
	risks := kindOf(entity.KindRiskFactor)
	setRefs(v, "affected_causes", causes, r.AffectedCauses)
	setRefs(v, "paf_of_one_causes", causes, r.PafOfOneCauses)
	setRef(v, "parent", risks, r.Parent, r.Parent != nil)
	setRefs(v, "sub_risk_factors", risks, r.SubRiskFactors)
	setRefs(v, "affected_risk_factors", risks, r.AffectedRiskFactors)

	if err := v.setRecord("categories", schema.Categories, categoryValues(r.Categories)); err != nil {
		return nil, err
	}

	if t := r.Tmred; t != nil {
		tv := values{"distribution": str(t.Distribution), "inverted": boolean(t.Inverted)}
		if t.Min != nil {
			tv["min"] = maybeScalar(*t.Min)
		}

		if t.Max != nil {
			tv["max"] = maybeScalar(*t.Max)
		}

		if err := v.setRecord("tmred", schema.Tmred, tv); err != nil {
			return nil, err
		}
	}

	if r.RelativeRiskScalar != nil {
		v["rr_scalar"] = maybeScalar(*r.RelativeRiskScalar)
	}

	return v, nil
}

func covariateValues(c *entity.Covariate) (values, error) {
	v := entityValues(c, id(schema.TypeCOVID, c.ID))
	v["by_age"] = boolean(c.ByAge)
	v["by_sex"] = boolean(c.BySex)
	v.setPtrBool("dichotomous", c.Dichotomous)

	return v, nil
}

func coverageGapValues(g *entity.CoverageGap) (values, error) {
	v := entityValues(g, maybeID(schema.TypeREIID, g.ID))
	v["distribution"] = str(g.Distribution)

	res, err := restrictions(g.Restrictions)
	if err != nil {
		return nil, err
	}

	v["restrictions"] = res

	if err := v.setRecord("levels", schema.Levels, categoryValues(g.Levels)); err != nil {
		return nil, err
	}

	if p := g.ExposureParameters; p != nil {
		pv := values{
			"dismod_id": maybeID(schema.TypeMEID, p.DismodID),
			"scale":     maybeScalar(p.Scale),
			"max_rr":    maybeScalar(p.MaxRR),
		}
		if err := v.setRecord("exposure_parameters", schema.ExposureParameters, pv); err != nil {
			return nil, err
		}
	}

	setRefs(v, "affected_causes", kindOf(entity.KindCause), g.AffectedCauses)
	setRefs(v, "affected_risk_factors", kindOf(entity.KindRiskFactor), g.AffectedRiskFactors)

	return v, nil
}

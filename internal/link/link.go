package link

import (
	"fmt"

	"gbd-mapping-generator/internal/entity"
)

// Link resolves every relationship id in g into a reference. Kinds absent
// from g are skipped, as are relationships into them.
func Link(g *entity.Graph) error {
	causes, err := index(entity.KindCause, g.Causes)
	if err != nil {
		return err
	}

	risks, err := index(entity.KindRiskFactor, g.RiskFactors)
	if err != nil {
		return err
	}

	etiologies, err := index(entity.KindEtiology, g.Etiologies)
	if err != nil {
		return err
	}

	if g.Causes != nil {
		if err := linkCauses(g, causes, etiologies); err != nil {
			return err
		}
	}

	if g.RiskFactors != nil {
		if err := linkRisks(g, causes, risks); err != nil {
			return err
		}
	}

	for _, gap := range g.CoverageGaps.All() {
		if gap.AffectedCauses, err = Refs(causes, gap, "affected_causes", gap.AffectedCauseIDs); err != nil {
			return err
		}

		if gap.AffectedRiskFactors, err = Refs(risks, gap, "affected_risk_factors", gap.AffectedRiskIDs); err != nil {
			return err
		}
	}

	return nil
}

var causeHierarchy = Hierarchy[*entity.Cause]{
	Kind:     entity.KindCause,
	ParentID: func(c *entity.Cause) int { return int(c.ParentID) },
	ChildIDs: func(c *entity.Cause) []int { return ints(c.ChildIDs) },
	SetParent: func(c, p *entity.Cause) {
		c.Parent = p
	},
	SetChildren: func(c *entity.Cause, children []*entity.Cause) {
		c.SubCauses = children
	},
}

var riskHierarchy = Hierarchy[*entity.RiskFactor]{
	Kind:     entity.KindRiskFactor,
	ParentID: func(r *entity.RiskFactor) int { return int(r.ParentID) },
	ChildIDs: func(r *entity.RiskFactor) []int { return ints(r.ChildIDs) },
	SetParent: func(r, p *entity.RiskFactor) {
		r.Parent = p
	},
	SetChildren: func(r *entity.RiskFactor, children []*entity.RiskFactor) {
		r.SubRiskFactors = children
	},
}

func linkCauses(g *entity.Graph, causes *Index[*entity.Cause], etiologies *Index[*entity.Etiology]) error {
	nodes := g.Causes.All()

	if err := LinkHierarchy(causes, nodes, causeHierarchy); err != nil {
		return err
	}

	for _, c := range nodes {
		c.Sequelae = nil
	}

	for _, s := range g.Sequelae.All() {
		id, ok := s.CauseID.Get()
		if !ok {
			continue
		}

		c, ok := causes.Get(int(id))
		if !ok {
			return broken(s, "cause_id", "%s", causes.missing(int(id)))
		}

		c.Sequelae = append(c.Sequelae, s)
	}

	if g.Etiologies != nil {
		var err error

		for _, c := range nodes {
			if c.Etiologies, err = Refs(etiologies, c, "etiologies", c.EtiologyIDs); err != nil {
				return err
			}
		}
	}

	return VerifyInverse(nodes,
		func(c *entity.Cause) (*entity.Cause, bool) { return c.Parent, c.Parent != nil },
		func(c *entity.Cause) []*entity.Cause { return c.SubCauses })
}

func linkRisks(g *entity.Graph, causes *Index[*entity.Cause], risks *Index[*entity.RiskFactor]) error {
	nodes := g.RiskFactors.All()

	if err := LinkHierarchy(risks, nodes, riskHierarchy); err != nil {
		return err
	}

	var err error

	for _, r := range nodes {
		if g.Causes != nil {
			if r.AffectedCauses, err = Refs(causes, r, "affected_causes", r.AffectedCauseIDs); err != nil {
				return err
			}

			if r.PafOfOneCauses, err = Refs(causes, r, "paf_of_one_causes", r.PafOfOneCauseIDs); err != nil {
				return err
			}
		}

		if r.AffectedRiskFactors, err = Refs(risks, r, "affected_risk_factors", r.AffectedRiskIDs); err != nil {
			return err
		}
	}

	if err := VerifyInverse(nodes,
		func(r *entity.RiskFactor) (*entity.RiskFactor, bool) { return r.Parent, r.Parent != nil },
		func(r *entity.RiskFactor) []*entity.RiskFactor { return r.SubRiskFactors }); err != nil {
		return fmt.Errorf("risk hierarchy: %w", err)
	}

	return nil
}

func ints[ID ~int](ids []ID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}

	return out
}

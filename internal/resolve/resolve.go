package resolve

import (
	"context"
	"fmt"
	"slices"

	"gbd-mapping-generator/internal/common"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
)

// Kinds lists the resolvable kinds in dependency order.
var Kinds = []entity.Kind{
	entity.KindSequela,
	entity.KindEtiology,
	entity.KindCause,
	entity.KindRiskFactor,
	entity.KindCovariate,
	entity.KindCoverageGap,
}

var requires = map[entity.Kind][]entity.Kind{
	entity.KindCause:       {entity.KindSequela, entity.KindEtiology},
	entity.KindRiskFactor:  {entity.KindCause},
	entity.KindCoverageGap: {entity.KindCause, entity.KindRiskFactor},
}

var tables = map[entity.Kind][]string{
	entity.KindSequela:     {gbd.TableSequela},
	entity.KindEtiology:    {gbd.TableEtiology},
	entity.KindCause:       {gbd.TableCause, gbd.TableModelableEntityCause, gbd.TableCauseEtiology},
	entity.KindRiskFactor:  {gbd.TableRisk, gbd.TableRiskCategory, gbd.TableCauseRisk, gbd.TablePafOfOne, gbd.TableMediation},
	entity.KindCovariate:   {gbd.TableCovariate},
	entity.KindCoverageGap: {gbd.TableCoverageGap, gbd.TableCoverageGapLevel, gbd.TableCoverageGapCause, gbd.TableCoverageGapRisk},
}

// Requires returns the kinds that must be resolved before kind.
func Requires(kind entity.Kind) []entity.Kind {
	return requires[kind]
}

// Closure extends kinds with everything they require and returns the
// result in dependency order.
func Closure(kinds []entity.Kind) ([]entity.Kind, error) {
	want := map[entity.Kind]bool{}

	var add func(k entity.Kind) error

	add = func(k entity.Kind) error {
		if !slices.Contains(Kinds, k) {
			return fmt.Errorf("unknown entity kind %q", k)
		}

		if want[k] {
			return nil
		}

		want[k] = true

		for _, dep := range requires[k] {
			if err := add(dep); err != nil {
				return err
			}
		}

		return nil
	}

	for _, k := range kinds {
		if err := add(k); err != nil {
			return nil, err
		}
	}

	order, err := common.TopoSort(len(Kinds), func(i int) []int {
		var deps []int
		for _, dep := range requires[Kinds[i]] {
			deps = append(deps, slices.Index(Kinds, dep))
		}

		return deps
	})
	if err != nil {
		return nil, err
	}

	out := make([]entity.Kind, 0, len(want))

	for _, i := range order {
		if want[Kinds[i]] {
			out = append(out, Kinds[i])
		}
	}

	return out, nil
}

// Resolve fetches the metadata of kinds and their requirements up front,
// then resolves every kind in dependency order. The first failure aborts
// the run.
func (r *Resolver) Resolve(ctx context.Context, adapter *gbd.Adapter, kinds []entity.Kind) (*entity.Graph, error) {
	order, err := Closure(kinds)
	if err != nil {
		return nil, err
	}

	for _, k := range order {
		if err := adapter.Prefetch(ctx, tables[k]...); err != nil {
			return nil, err
		}
	}

	g := &entity.Graph{}

	for _, k := range order {
		if err := r.resolveKind(ctx, adapter, k, g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (r *Resolver) resolveKind(ctx context.Context, a *gbd.Adapter, kind entity.Kind, g *entity.Graph) error {
	var err error

	switch kind {
	case entity.KindSequela:
		var raw []gbd.RawSequela
		if raw, err = a.Sequelae(ctx); err == nil {
			g.Sequelae, err = r.Sequelae(raw)
		}
	case entity.KindEtiology:
		var raw []gbd.RawEtiology
		if raw, err = a.Etiologies(ctx, gbd.Filter{MostDetailedOnly: true}); err == nil {
			g.Etiologies, err = r.Etiologies(raw)
		}
	case entity.KindCause:
		g.Causes, err = r.fetchCauses(ctx, a, g.Etiologies)
	case entity.KindRiskFactor:
		var raw []gbd.RawRisk
		if raw, err = a.Risks(ctx); err == nil {
			g.RiskFactors, err = r.RiskFactors(raw, g.Causes)
		}
	case entity.KindCovariate:
		var raw []gbd.RawCovariate
		if raw, err = a.Covariates(ctx); err == nil {
			g.Covariates, err = r.Covariates(raw)
		}
	case entity.KindCoverageGap:
		var raw []gbd.RawCoverageGap
		if raw, err = a.CoverageGaps(ctx); err == nil {
			g.CoverageGaps, err = r.CoverageGaps(raw, g.Causes, g.RiskFactors)
		}
	}

	if err != nil {
		return fmt.Errorf("resolve %s: %w", kind, err)
	}

	return nil
}

func (r *Resolver) fetchCauses(
	ctx context.Context, a *gbd.Adapter, etiologies *entity.Collection[*entity.Etiology],
) (*entity.Collection[*entity.Cause], error) {
	raw, err := a.Causes(ctx)
	if err != nil {
		return nil, err
	}

	mes, err := a.CauseModelableEntities(ctx)
	if err != nil {
		return nil, err
	}

	links, err := a.CauseEtiologies(ctx)
	if err != nil {
		return nil, err
	}

	return r.Causes(raw, mes, links, etiologies)
}

package resolve

import (
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/match"
)

// Sequelae resolves sequela rows. A healthstate whose name or id is
// missing keeps the unknown marker for that field.
func (r *Resolver) Sequelae(raw []gbd.RawSequela) (*entity.Collection[*entity.Sequela], error) {
	rawNames, ids := make([]string, len(raw)), make([]int, len(raw))
	for i, s := range raw {
		rawNames[i], ids[i] = s.Name, s.ID
	}

	names, keep, err := r.names(entity.KindSequela, rawNames, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Sequela, 0, len(keep))

	for _, i := range keep {
		s := raw[i]

		hs := entity.Healthstate{ID: convert[int, entity.HealthstateID](s.HealthstateID)}
		if s.HealthstateName.Valid {
			hs.Name = gbd.Known(match.CleanName(s.HealthstateName.V))
		}

		out = append(out, &entity.Sequela{
			Name:        names[i],
			ID:          entity.SequelaID(s.ID),
			DismodID:    convert[int, entity.MEID](s.MEID),
			Healthstate: hs,
			CauseID:     convert[int, entity.CauseID](s.CauseID),
		})
	}

	return collection(r, entity.KindSequela, out)
}

// Etiologies resolves etiology rows.
func (r *Resolver) Etiologies(raw []gbd.RawEtiology) (*entity.Collection[*entity.Etiology], error) {
	rawNames, ids := make([]string, len(raw)), make([]int, len(raw))
	for i, e := range raw {
		rawNames[i], ids[i] = e.Name, e.ID
	}

	names, keep, err := r.names(entity.KindEtiology, rawNames, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Etiology, 0, len(keep))
	for _, i := range keep {
		out = append(out, &entity.Etiology{Name: names[i], ID: entity.ReiID(raw[i].ID)})
	}

	return collection(r, entity.KindEtiology, out)
}

// Covariates resolves covariate rows. Unknown by-age and by-sex flags read
// as false; an unknown dichotomous flag stays absent.
func (r *Resolver) Covariates(raw []gbd.RawCovariate) (*entity.Collection[*entity.Covariate], error) {
	rawNames, ids := make([]string, len(raw)), make([]int, len(raw))
	for i, c := range raw {
		rawNames[i], ids[i] = c.Name, c.ID
	}

	names, keep, err := r.names(entity.KindCovariate, rawNames, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Covariate, 0, len(keep))

	for _, i := range keep {
		c := raw[i]
		out = append(out, &entity.Covariate{
			Name:        names[i],
			ID:          entity.CovariateID(c.ID),
			ByAge:       c.ByAge.Or(false),
			BySex:       c.BySex.Or(false),
			Dichotomous: c.Dichotomous.Ptr(),
		})
	}

	return collection(r, entity.KindCovariate, out)
}

func convert[From ~int, To ~int](n gbd.Null[From]) gbd.Null[To] {
	if !n.Valid {
		return gbd.Unknown[To]()
	}

	return gbd.Known(To(n.V))
}

package resolve

import (
	"fmt"

	"gbd-mapping-generator/internal/diagnostic"
	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
	"gbd-mapping-generator/internal/match"
)

// Causes resolves cause rows. The dismod id is the modelable entity whose
// normalized name equals the cause name, lowest ME id first. Etiology ids
// are restricted to the resolved etiologies.
func (r *Resolver) Causes(
	raw []gbd.RawCause,
	mes []gbd.RawCauseME,
	links []gbd.RawCauseEtiology,
	etiologies *entity.Collection[*entity.Etiology],
) (*entity.Collection[*entity.Cause], error) {
	rawNames, ids := make([]string, len(raw)), make([]int, len(raw))
	for i, c := range raw {
		rawNames[i], ids[i] = c.Name, c.ID
	}

	names, keep, err := r.names(entity.KindCause, rawNames, ids)
	if err != nil {
		return nil, err
	}

	dismod := causeMEs(mes)
	etiologyIDs := map[int][]entity.ReiID{}

	for _, l := range links {
		if _, ok := etiologies.ByKey(l.EtiologyID); ok {
			etiologyIDs[l.CauseID] = append(etiologyIDs[l.CauseID], entity.ReiID(l.EtiologyID))
		}
	}

	out := make([]*entity.Cause, 0, len(keep))

	for _, i := range keep {
		c := raw[i]

		restrictions, err := CauseRestrictions(c, r.config.Ages)
		if err != nil {
			return nil, err
		}

		cause := &entity.Cause{
			Name:         names[i],
			ID:           entity.CauseID(c.ID),
			DismodID:     gbd.Unknown[entity.MEID](),
			MostDetailed: c.MostDetailed.Or(false),
			Level:        c.Level.Or(0),
			Restrictions: restrictions,
			ParentID:     entity.CauseID(c.ParentID.Or(c.ID)),
			ChildIDs:     toIDs[entity.CauseID](c.ChildIDs),
			EtiologyIDs:  etiologyIDs[c.ID],
		}

		if me, ok := dismod[names[i]]; ok {
			cause.DismodID = gbd.Known(entity.MEID(me))
		}

		out = append(out, cause)
	}

	return collection(r, entity.KindCause, out)
}

// causeMEs indexes modelable entity ids by normalized name. mes arrive in
// ascending ME id order so the first match wins.
func causeMEs(mes []gbd.RawCauseME) map[string]int {
	out := make(map[string]int, len(mes))

	for _, me := range mes {
		name := match.CleanName(me.Name)
		if _, seen := out[name]; !seen {
			out[name] = me.MEID
		}
	}

	return out
}

// filterKnown keeps the ids present in known, recording a warning for
// each one dropped.
func filterKnown[T entity.Entity](
	d *diagnostic.Diagnostics, owner entity.Entity, field string, ids []int, known *entity.Collection[T],
) []int {
	var out []int

	for _, id := range ids {
		if _, ok := known.ByKey(id); !ok {
			msg := fmt.Sprintf("%s: unknown %s id %d skipped", field, known.Kind(), id)
			if name, dropped := known.Dropped(id); dropped {
				msg = fmt.Sprintf("%s: %s id %d skipped, dropped as a duplicate of %q", field, known.Kind(), id, name)
			}

			d.AddWarning(diagnostic.CodeBrokenRelationship, msg, string(owner.EntityKind()), owner.EntityName())

			continue
		}

		out = append(out, id)
	}

	return out
}

func toIDs[To ~int](ids []int) []To {
	if ids == nil {
		return nil
	}

	out := make([]To, len(ids))
	for i, id := range ids {
		out[i] = To(id)
	}

	return out
}

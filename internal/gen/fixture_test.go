package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gbd-mapping-generator/internal/entity"
	"gbd-mapping-generator/internal/gbd"
)

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

// testGraph returns a small linked graph. Measles has enough sequelae to
// need wrapping.
func testGraph(t *testing.T) *entity.Graph {
	t.Helper()

	rotavirus := &entity.Etiology{Name: "rotavirus", ID: 181}

	var sequelae []*entity.Sequela

	for i := range 12 {
		sequelae = append(sequelae, &entity.Sequela{
			Name:     fmt.Sprintf("measles_with_severe_complication_number_%d", i+1),
			ID:       entity.SequelaID(1000 + i),
			DismodID: gbd.Known(entity.MEID(2000 + i)),
			Healthstate: entity.Healthstate{
				Name: gbd.Known("infectious_disease_acute_episode_severe"),
				ID:   gbd.Known(entity.HealthstateID(300)),
			},
			CauseID: gbd.Known(entity.CauseID(341)),
		})
	}

	sequelae = append(sequelae, &entity.Sequela{
		Name:        "diarrhea_unknown_state",
		ID:          2,
		DismodID:    gbd.Unknown[entity.MEID](),
		Healthstate: entity.Healthstate{Name: gbd.Unknown[string](), ID: gbd.Unknown[entity.HealthstateID]()},
		CauseID:     gbd.Known(entity.CauseID(302)),
	})

	all := &entity.Cause{
		Name:         "all_causes",
		ID:           294,
		DismodID:     gbd.Unknown[entity.MEID](),
		Restrictions: entity.Restrictions{YllAgeGroupIDStart: intPtr(2), YllAgeGroupIDEnd: intPtr(235)},
	}
	diarrhea := &entity.Cause{
		Name:         "diarrheal_diseases",
		ID:           302,
		DismodID:     gbd.Known(entity.MEID(1181)),
		MostDetailed: true,
		Level:        1,
		Restrictions: entity.Restrictions{YldOnly: false, YllAgeGroupIDStart: intPtr(2)},
		Sequelae:     sequelae[12:],
		Etiologies:   []*entity.Etiology{rotavirus},
	}
	measles := &entity.Cause{
		Name:         "measles",
		ID:           341,
		DismodID:     gbd.Known(entity.MEID(1436)),
		MostDetailed: true,
		Level:        1,
		Restrictions: entity.Restrictions{MaleOnly: true},
		Sequelae:     sequelae[:12],
	}

	diarrhea.Parent, measles.Parent = all, all
	all.SubCauses = []*entity.Cause{diarrhea, measles}

	water := &entity.RiskFactor{
		Name:           "unsafe_water_source",
		ID:             83,
		Level:          1,
		MostDetailed:   true,
		Distribution:   "polytomous",
		PafCalculation: entity.PafCategorical,
		Categories: []entity.Category{
			{Key: "cat1", Label: "unimproved"},
			{Key: "cat2", Label: "improved"},
			{Key: "cat3", Label: "unexposed"},
		},
		Flags:          entity.RiskDataFlags{ExposureExists: boolPtr(true), RelativeRiskExists: boolPtr(false)},
		AffectedCauses: []*entity.Cause{diarrhea},
	}
	sbp := &entity.RiskFactor{
		Name:           "high_systolic_blood_pressure",
		ID:             107,
		Level:          1,
		Distribution:   "normal",
		PafCalculation: entity.PafContinuous,
		Restrictions:   entity.Restrictions{YllAgeGroupIDStart: intPtr(10), YldAgeGroupIDStart: intPtr(10)},
		Tmred: &entity.Tmred{
			Distribution: "uniform",
			Min:          &gbd.Null[float64]{V: 110, Valid: true},
			Max:          &gbd.Null[float64]{},
		},
		RelativeRiskScalar: &gbd.Null[float64]{V: 10, Valid: true},
	}
	allRisks := &entity.RiskFactor{
		Name:           "all_risk_factors",
		ID:             169,
		PafCalculation: entity.PafAggregation,
	}

	water.Parent, sbp.Parent = allRisks, allRisks
	allRisks.SubRiskFactors = []*entity.RiskFactor{water, sbp}
	water.AffectedRiskFactors = []*entity.RiskFactor{sbp}

	gap := &entity.CoverageGap{
		Name:         "lack_of_vitamin_a_fortification",
		ID:           gbd.Unknown[entity.ReiID](),
		Distribution: "dichotomous",
		Levels:       []entity.Category{{Key: "cat1", Label: "exposed"}, {Key: "cat2", Label: "unexposed"}},
		ExposureParameters: &entity.ExposureParameters{
			DismodID: gbd.Known(entity.MEID(10524)),
			Scale:    gbd.Known(0.1),
			MaxRR:    gbd.Unknown[float64](),
		},
		AffectedCauses:      []*entity.Cause{measles, diarrhea},
		AffectedRiskFactors: []*entity.RiskFactor{water},
	}

	covariates := []*entity.Covariate{
		{Name: "sdi", ID: 881},
		{Name: "smoking_prevalence", ID: 282, ByAge: true, BySex: true, Dichotomous: boolPtr(false)},
	}

	return &entity.Graph{
		Sequelae:     mustCollection(t, entity.KindSequela, sequelae),
		Etiologies:   mustCollection(t, entity.KindEtiology, []*entity.Etiology{rotavirus}),
		Causes:       mustCollection(t, entity.KindCause, []*entity.Cause{all, diarrhea, measles}),
		RiskFactors:  mustCollection(t, entity.KindRiskFactor, []*entity.RiskFactor{water, sbp, allRisks}),
		Covariates:   mustCollection(t, entity.KindCovariate, covariates),
		CoverageGaps: mustCollection(t, entity.KindCoverageGap, []*entity.CoverageGap{gap}),
	}
}

func mustCollection[T entity.Entity](t *testing.T, kind entity.Kind, items []T) *entity.Collection[T] {
	t.Helper()

	c, err := entity.NewCollection(kind, items)
	require.NoError(t, err)

	return c
}

package match

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func TestCleanName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Separators
		{"Diarrheal diseases", "diarrheal_diseases"},
		{"HIV/AIDS - Drug-susceptible Tuberculosis", "hiv_aids_drug_susceptible_tuberculosis"},
		{"Tuberculosis – extensively drug-resistant", "tuberculosis_extensively_drug_resistant"},
		{"Liver cancer due to hepatitis B", "liver_cancer_due_to_hepatitis_b"},
		{"Syphilis, Chlamydia", "syphilis_chlamydia"},
		{"a = b", "a_b"},

		// Symbols
		{"Alzheimer's disease", "alzheimers_disease"},
		{"Alzheimer’s disease", "alzheimers_disease"},
		{"Hemoglobin < 10", "hemoglobin_less_than_10"},
		{"Systolic blood pressure > 140", "systolic_blood_pressure_greater_than_140"},
		{"Age 80+", "age_80_and_up"},
		{"Lag distributed income per capita (I$)", "lag_distributed_income_per_capita_income"},
		{"Proportion of population 100%", "proportion_of_population_100_percent"},
		{"Hemoglobin 90th percentile", "hemoglobin_ninetieth_percentile"},
		{"Mean BMI * 2", "mean_bmi_x_2"},
		{"Exposure: indoor; outdoor #1", "exposure_indoor_outdoor_1"},
		{"Drug & alcohol use", "drug_and_alcohol_use"},
		{"Cumulative 10 year risk", "cumulative_ten_year_risk"},
		{"Deaths per year.", "deaths_per_year"},
		{"Ambient particulate matter pollution (PM2.5)", "ambient_particulate_matter_pollution_pm_2_5"},

		// Diacritics and stray characters
		{"Ménière's disease", "menieres_disease"},
		{"Sjögren syndrome", "sjogren_syndrome"},
		{"Dr. Seuss [test]", "dr_seuss_test"},

		// Leading numerals
		{"2nd hand smoke", "second_hand_smoke"},
		{"10 year survival", "ten_year_survival"},
		{"21 hydroxylase deficiency", "twenty_one_hydroxylase_deficiency"},
		{"3x dose", "three_x_dose"},
		{"100th percentile", "one_hundredth_percentile"},
		{"1st", "first"},

		// Degenerate input
		{"", Unnamed},
		{"'''", Unnamed},
		{"  trailing  ", "trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := CleanName(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Regexp(t, identPattern, got)
		})
	}
}

func TestCleanEntityList_PreservesOrder(t *testing.T) {
	raw := []string{"Measles", "All causes", "Measles"}
	assert.Equal(t, []string{"measles", "all_causes", "measles"}, CleanEntityList(raw))
}

func TestCleanEntityList_Idempotent(t *testing.T) {
	raw := []string{"HIV/AIDS", "Zinc deficiency", "2nd hand smoke", "PM2.5"}
	once := CleanEntityList(raw)
	assert.Equal(t, once, CleanEntityList(once))
}

func TestSpellNumber(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "zero"},
		{7, "seven"},
		{19, "nineteen"},
		{40, "forty"},
		{95, "ninety_five"},
		{100, "one_hundred"},
		{235, "two_hundred_thirty_five"},
		{2019, "two_thousand_nineteen"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, spellNumber(tt.n))
	}
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "twentieth", ordinal("twenty"))
	assert.Equal(t, "twenty_second", ordinal("twenty_two"))
	assert.Equal(t, "eleventh", ordinal("eleven"))
	assert.Equal(t, "twelfth", ordinal("twelve"))
}

func TestToGoIdent(t *testing.T) {
	assert.Equal(t, "DiarrhealDiseases", ToGoIdent("diarrheal_diseases"))
	assert.Equal(t, "AmbientParticulateMatterPollutionPm25", ToGoIdent("ambient_particulate_matter_pollution_pm_2_5"))
	assert.Equal(t, "A", ToGoIdent("a"))
}

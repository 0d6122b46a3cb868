package resolve

import (
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// AgeEdge maps an age in years to the age group starting there and the
// age group ending there. A nil id means no group ends (or starts) at that
// age.
type AgeEdge struct {
	Age   float64 `yaml:"age"`
	Start *int    `yaml:"start"`
	End   *int    `yaml:"end"`
}

// AgeTable discretizes restriction ages into age group ids.
type AgeTable struct {
	Name  string    `yaml:"name"`
	Edges []AgeEdge `yaml:"edges"`
}

func id(n int) *int { return &n }

// DefaultAgeTable is the GBD 2019 age group table.
func DefaultAgeTable() *AgeTable {
	return &AgeTable{
		Name: "gbd_2019",
		Edges: []AgeEdge{
			{Age: 0, Start: id(2)},
			{Age: 0.01, Start: id(3), End: id(2)},
			{Age: 0.1, Start: id(4), End: id(3)},
			{Age: 1, Start: id(5), End: id(4)},
			{Age: 5, Start: id(6), End: id(5)},
			{Age: 10, Start: id(7), End: id(6)},
			{Age: 15, Start: id(8), End: id(7)},
			{Age: 20, Start: id(9), End: id(8)},
			{Age: 30, Start: id(11), End: id(10)},
			{Age: 40, Start: id(13), End: id(12)},
			{Age: 45, Start: id(14), End: id(13)},
			{Age: 50, Start: id(15), End: id(14)},
			{Age: 55, Start: id(16), End: id(15)},
			{Age: 60, Start: id(17), End: id(16)},
			{Age: 65, Start: id(18), End: id(17)},
			{Age: 95, Start: id(235), End: id(235)},
		},
	}
}

// LoadAgeTable reads an age table from a YAML file.
func LoadAgeTable(path string) (*AgeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading age table: %w", err)
	}

	var t AgeTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing age table %s: %w", path, err)
	}

	if len(t.Edges) == 0 {
		return nil, fmt.Errorf("age table %s has no edges", path)
	}

	return &t, nil
}

// Ages in metadata are stored with limited precision.
const ageTolerance = 1e-6

func (t *AgeTable) find(age float64) (AgeEdge, bool) {
	i := slices.IndexFunc(t.Edges, func(e AgeEdge) bool {
		return math.Abs(e.Age-age) < ageTolerance
	})
	if i < 0 {
		return AgeEdge{}, false
	}

	return t.Edges[i], true
}

// Start returns the age group id starting at age.
func (t *AgeTable) Start(age float64) (*int, error) {
	e, ok := t.find(age)
	if !ok {
		return nil, fmt.Errorf("no age group starts at %g in table %s", age, t.Name)
	}

	return e.Start, nil
}

// End returns the age group id ending at age.
func (t *AgeTable) End(age float64) (*int, error) {
	e, ok := t.find(age)
	if !ok {
		return nil, fmt.Errorf("no age group ends at %g in table %s", age, t.Name)
	}

	return e.End, nil
}

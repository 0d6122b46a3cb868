package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_OrderAndLookup(t *testing.T) {
	c, err := NewCollection(KindCause, []*Cause{
		{Name: "diarrheal_diseases", ID: 302},
		{Name: "all_causes", ID: 294},
		{Name: "communicable_diseases", ID: 295},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"all_causes", "communicable_diseases", "diarrheal_diseases"}, c.Names())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, KindCause, c.Kind())

	got, ok := c.Get("diarrheal_diseases")
	require.True(t, ok)
	assert.Equal(t, CauseID(302), got.ID)

	_, ok = c.Get("measles")
	assert.False(t, ok)
}

func TestCollection_DuplicateName(t *testing.T) {
	_, err := NewCollection(KindCovariate, []*Covariate{
		{Name: "age", ID: 1},
		{Name: "age", ID: 2},
	})
	assert.ErrorContains(t, err, `covariate name "age" used by ids 1 and 2`)
}

func TestCollection_Nil(t *testing.T) {
	var c *Collection[*Cause]
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())

	_, ok := c.Get("x")
	assert.False(t, ok)

	g := &Graph{}
	assert.Equal(t, 0, g.Len())
}

func TestRestrictions_Validate(t *testing.T) {
	assert.NoError(t, Restrictions{MaleOnly: true, YllOnly: true}.Validate())
	assert.Error(t, Restrictions{MaleOnly: true, FemaleOnly: true}.Validate())
	assert.Error(t, Restrictions{YllOnly: true, YldOnly: true}.Validate())
}

func TestCollection_Dropped(t *testing.T) {
	c, err := NewCollection(KindRiskFactor, []*RiskFactor{{Name: "unsafe_water_source", ID: 83}})
	require.NoError(t, err)

	_, ok := c.Dropped(84)
	assert.False(t, ok)

	c.Drop(84, "unsafe_water_source")

	name, ok := c.Dropped(84)
	require.True(t, ok)
	assert.Equal(t, "unsafe_water_source", name)

	_, ok = c.ByKey(84)
	assert.False(t, ok)

	var missing *Collection[*Cause]
	_, ok = missing.Dropped(1)
	assert.False(t, ok)
}

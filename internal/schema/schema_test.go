package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbd-mapping-generator/internal/entity"
)

func TestGoName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"gbd_id", "GbdID"},
		{"me_id", "MEID"},
		{"max_rr", "MaxRR"},
		{"exposure_sd_exists", "ExposureSDExists"},
		{"yll_age_group_id_start", "YllAgeGroupIDStart"},
		{"fields", "Fields_"},
		{"cat12", "Cat12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GoName(tt.name))
		})
	}
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "CID", Named("CID").String())
	assert.Equal(t, "*Restrictions", PtrTo("Restrictions").String())
	assert.Equal(t, "[]*Cause", SliceOf("Cause").String())
	assert.Equal(t, "Cause", SliceOf("Cause").Base())
}

func TestBuiltinModulesValidate(t *testing.T) {
	require.NoError(t, Base().Validate())

	for _, k := range Kinds {
		t.Run(string(k.Kind), func(t *testing.T) {
			m := k.Module([]string{"first_entity", "second_entity"})
			require.NoError(t, m.Validate())

			coll, ok := m.Record(k.Collection)
			require.True(t, ok)
			assert.Equal(t, "FirstEntity", coll.Fields[0].GoName())
			assert.Equal(t, "*"+k.Record.Name, coll.Fields[0].Type.String())
		})
	}
}

func TestRecord_ValidateOrdering(t *testing.T) {
	r := Record{
		Name:       "Bad",
		Superclass: GbdRecord,
		Fields: []Field{
			{Name: "a", Type: PtrTo("int"), Optional: true},
			{Name: "b", Type: Named("int")},
		},
	}
	assert.ErrorIs(t, r.Validate(), errOptionalOrdering)
}

func TestRecord_ValidateSuperclass(t *testing.T) {
	r := Record{Name: "Bad", Superclass: ModelableEntity, Fields: []Field{
		{Name: "kind", Type: Named("string")},
		{Name: "name", Type: Named("string")},
		{Name: "gbd_id", Type: Named("CID")},
	}}
	assert.ErrorIs(t, r.Validate(), errSuperclass)

	r.Superclass = "Entity"
	assert.Error(t, r.Validate())
}

func TestCollectionRecord_NameCollision(t *testing.T) {
	k, err := ForKind(entity.KindCause)
	require.NoError(t, err)

	// Distinct snake_case names with one Go spelling.
	coll := k.CollectionRecord([]string{"a_1b", "a1b"})
	assert.ErrorIs(t, coll.Validate(), errDuplicateField)

	coll = k.CollectionRecord([]string{"string"})
	assert.Equal(t, "String_", coll.Fields[0].GoName())
}

func TestForKind_Unknown(t *testing.T) {
	_, err := ForKind(entity.KindHealthstate)
	assert.Error(t, err)
}

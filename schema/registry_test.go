package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		schemas []*CollectionSchema
		wantErr error
	}{
		{
			name:    "empty registry",
			schemas: nil,
		},
		{
			name: "valid schemas",
			schemas: []*CollectionSchema{
				{Name: "a_collection", Fields: map[string]FieldType{"x": FieldString}},
				{Name: "b_collection", Fields: map[string]FieldType{"y": FieldNumber}},
			},
		},
		{
			name:    "missing name",
			schemas: []*CollectionSchema{{Fields: map[string]FieldType{"x": FieldString}}},
			wantErr: ErrEmptyName,
		},
		{
			name: "duplicate name",
			schemas: []*CollectionSchema{
				{Name: "a_collection"},
				{Name: "a_collection"},
			},
			wantErr: ErrDuplicateSchema,
		},
		{
			name: "bad field type",
			schemas: []*CollectionSchema{
				{Name: "a_collection", Fields: map[string]FieldType{"x": "date"}},
			},
			wantErr: ErrInvalidFieldType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.schemas...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRegistryLookupIsTotal(t *testing.T) {
	reg, err := NewRegistry(&CollectionSchema{
		Name:   "policy_collection",
		Fields: map[string]FieldType{"region": FieldString},
		Hint:   "policies",
	})
	require.NoError(t, err)

	known := reg.Lookup("policy_collection")
	assert.False(t, known.Empty())
	assert.Equal(t, "policies", reg.HintFor("policy_collection"))

	// Unknown collections get the empty schema, never nil or an error.
	unknown := reg.Lookup("never_registered_collection")
	require.NotNil(t, unknown)
	assert.True(t, unknown.Empty())
	assert.Empty(t, reg.HintFor("never_registered_collection"))
}

func TestNormalizeValue(t *testing.T) {
	reg, err := NewRegistry(&CollectionSchema{
		Name:   "policy_collection",
		Fields: map[string]FieldType{"region": FieldString},
		Normalizers: map[string]map[string]string{
			"region": {"New York": "NY"},
		},
	})
	require.NoError(t, err)
	s := reg.Lookup("policy_collection")

	assert.Equal(t, "NY", s.NormalizeValue("region", "New York"))
	assert.Equal(t, "NY", s.NormalizeValue("region", "new york"))
	assert.Equal(t, "NY", s.NormalizeValue("region", "  NEW YORK  "))
	// Already-canonical and unmapped values pass through.
	assert.Equal(t, "NY", s.NormalizeValue("region", "NY"))
	assert.Equal(t, "Vermont", s.NormalizeValue("region", "Vermont"))
	// Fields without a normalizer table pass through.
	assert.Equal(t, "anything", s.NormalizeValue("other", "anything"))
}

func TestFieldNamesSorted(t *testing.T) {
	s := &CollectionSchema{
		Name: "x_collection",
		Fields: map[string]FieldType{
			"zeta":  FieldString,
			"alpha": FieldNumber,
			"mid":   FieldString,
		},
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.FieldNames())
}

func TestBuiltinSchemasRegister(t *testing.T) {
	reg, err := NewRegistry(Builtin()...)
	require.NoError(t, err)
	assert.Contains(t, reg.Collections(), "policy_collection")
	assert.Equal(t, "NY", reg.Lookup("policy_collection").NormalizeValue("region", "New York"))
}

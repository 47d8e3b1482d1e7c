package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("sightings")
	require.NoError(t, err)
	assert.Equal(t, VariantSightings, v)

	v, err = ParseVariant("reportings")
	require.NoError(t, err)
	assert.Equal(t, VariantReportings, v)

	_, err = ParseVariant("strandings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strandings")
}

func TestObservation_Field(t *testing.T) {
	obs := Observation{"block": "North", "district": nil}

	assert.Equal(t, "North", obs.Field("block", ""))
	assert.Equal(t, "fallback", obs.Field("district", "fallback"), "null value falls back to default")
	assert.Equal(t, "fallback", obs.Field("missing", "fallback"))
	assert.Nil(t, obs.Field("missing", nil))
}

func TestAsStrings(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected []string
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"legacy scalar", "River", []string{"River"}},
		{"list", []any{"River", "Estuary"}, []string{"River", "Estuary"}},
		{"list with junk", []any{"River", 7, nil, "Creek"}, []string{"River", "Creek"}},
		{"non-string scalar", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AsStrings(tt.value))
		})
	}
}

func TestParseBatch(t *testing.T) {
	t.Run("result key", func(t *testing.T) {
		obs, err := ParseBatch([]byte(`{"result":[{"block":"A"},{"block":"B"}]}`))
		require.NoError(t, err)
		require.Len(t, obs, 2)
		assert.Equal(t, "A", obs[0].Field("block", ""))
	})

	t.Run("data key", func(t *testing.T) {
		obs, err := ParseBatch([]byte(`{"data":[{"block":"A"}]}`))
		require.NoError(t, err)
		assert.Len(t, obs, 1)
	})

	t.Run("result wins over data", func(t *testing.T) {
		obs, err := ParseBatch([]byte(`{"result":[{"block":"A"}],"data":[{"block":"B"},{"block":"C"}]}`))
		require.NoError(t, err)
		require.Len(t, obs, 1)
		assert.Equal(t, "A", obs[0].Field("block", ""))
	})

	t.Run("bare array", func(t *testing.T) {
		obs, err := ParseBatch([]byte(`[{"block":"A"}]`))
		require.NoError(t, err)
		assert.Len(t, obs, 1)
	})

	t.Run("single object becomes one-element batch", func(t *testing.T) {
		obs, err := ParseBatch([]byte(`{"block":"A"}`))
		require.NoError(t, err)
		require.Len(t, obs, 1)
		assert.Equal(t, "A", obs[0].Field("block", ""))
	})

	t.Run("empty array", func(t *testing.T) {
		obs, err := ParseBatch([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, obs)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseBatch([]byte(`{invalid`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON format")
	})

	t.Run("scalar payload", func(t *testing.T) {
		_, err := ParseBatch([]byte(`42`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "object or array")
	})

	t.Run("non-object element", func(t *testing.T) {
		_, err := ParseBatch([]byte(`[{"block":"A"}, 7]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "observation 1")
	})
}

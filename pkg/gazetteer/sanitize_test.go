package gazetteer_test

import (
	"math"
	"testing"

	"github.com/placenames/pndb/pkg/gazetteer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	rec, err := gazetteer.ParseRow(londonRow())
	require.NoError(t, err)

	res, ok := gazetteer.Sanitize(rec)
	assert.True(t, ok)
	assert.Equal(t, "London", res["name"])
	assert.Equal(t, uint64(7556900), res["population"])
	assert.Equal(t, int32(25), res["elevation"])
}

func TestSanitizeDropsValues(t *testing.T) {
	tests := []struct {
		msg string
		key string
		val any
	}{
		{"nil value", "timezone", nil},
		{"NaN value", "dem", math.NaN()},
		{"zero population", "population", uint64(0)},
		{"negative elevation", "elevation", int32(-3)},
		{"zero elevation", "elevation", int32(0)},
	}

	for _, v := range tests {
		rec, err := gazetteer.ParseRow(londonRow())
		require.NoError(t, err, v.msg)
		rec[v.key] = v.val

		res, ok := gazetteer.Sanitize(rec)
		assert.True(t, ok, v.msg)
		_, has := res[v.key]
		assert.False(t, has, v.msg)
	}
}

func TestSanitizeKeepsNegativeDem(t *testing.T) {
	rec, err := gazetteer.ParseRow(londonRow())
	require.NoError(t, err)
	rec["dem"] = int32(-402) // Dead Sea shore is below sea level

	res, ok := gazetteer.Sanitize(rec)
	assert.True(t, ok)
	assert.Equal(t, int32(-402), res["dem"])
}

func TestSanitizeRejectsMissingCoordinates(t *testing.T) {
	tests := []struct {
		msg string
		key string
		val any
	}{
		{"missing latitude", "latitude", nil},
		{"missing longitude", "longitude", nil},
		{"NaN latitude", "latitude", math.NaN()},
		{"infinite longitude", "longitude", math.Inf(1)},
	}

	for _, v := range tests {
		rec, err := gazetteer.ParseRow(londonRow())
		require.NoError(t, err, v.msg)
		if v.val == nil {
			delete(rec, v.key)
		} else {
			rec[v.key] = v.val
		}

		_, ok := gazetteer.Sanitize(rec)
		assert.False(t, ok, v.msg)
	}
}

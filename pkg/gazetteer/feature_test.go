package gazetteer_test

import (
	"testing"

	"github.com/placenames/pndb/pkg/gazetteer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeatures(t *testing.T) {
	good, err := gazetteer.ParseRow(londonRow())
	require.NoError(t, err)

	badRow := londonRow()
	badRow[4] = "" // no latitude
	bad, err := gazetteer.ParseRow(badRow)
	require.NoError(t, err)

	feats := gazetteer.BuildFeatures([]gazetteer.Record{good, bad})
	require.Len(t, feats, 1)

	f := feats[0]
	t.Run("geometry holds lon/lat in WGS84", func(t *testing.T) {
		require.NotNil(t, f.Geometry)
		assert.Equal(t, -0.12574, f.Geometry.X())
		assert.Equal(t, 51.50853, f.Geometry.Y())
		assert.Equal(t, 4326, f.Geometry.SRID())
	})

	t.Run("coordinates moved out of properties", func(t *testing.T) {
		_, has := f.Properties["latitude"]
		assert.False(t, has)
		_, has = f.Properties["longitude"]
		assert.False(t, has)
	})

	t.Run("name and description", func(t *testing.T) {
		assert.Equal(t, "London", f.Name())
		assert.Equal(t, "Londres, Londinium", f.Description())
	})
}

func TestBuildFeaturesEmptyBatch(t *testing.T) {
	feats := gazetteer.BuildFeatures(nil)
	assert.Empty(t, feats)
}

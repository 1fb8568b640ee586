package iostore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/twpayne/go-geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeGeometry(t *testing.T) {
	point := geom.NewPointFlat(geom.XY, []float64{-0.12574, 51.50853})
	point.SetSRID(4326)

	data, err := encodeGeometry(point)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	g := doc["geometry"]
	require.NotNil(t, g)
	assert.Equal(t, "Point", g["type"])
	assert.Equal(t,
		[]any{-0.12574, 51.50853}, g["coordinates"])
}

func TestEncodeMetadata(t *testing.T) {
	meta := map[string]any{
		"geonameid":         uint32(2643743),
		"name":              "London",
		"alternatenames":    []string{"Londres"},
		"modification_date": time.Date(2011, 3, 3, 0, 0, 0, 0, time.UTC),
	}

	data, err := encodeMetadata(meta)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "London", doc["name"])
	assert.Equal(t, float64(2643743), doc["geonameid"])
	assert.Equal(t, []any{"Londres"}, doc["alternatenames"])
	assert.Equal(t, "2011-03-03T00:00:00Z", doc["modification_date"])
}

func TestSQLiteStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.sqlite")
	st, err := NewSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	user, err := st.EnsureUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Login)

	t.Run("ensure is idempotent", func(t *testing.T) {
		again, err := st.EnsureUser(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)
	})

	coll, err := st.EnsureCollection(ctx, "gazetteer", "test data", user)
	require.NoError(t, err)
	folder, err := st.EnsureFolder(ctx, coll, "geonames", "", user)
	require.NoError(t, err)
	assert.Equal(t, coll.ID, folder.CollectionID)

	item, err := st.CreateItem(ctx, folder, "London", "Londres", user)
	require.NoError(t, err)

	meta := map[string]any{"name": "London", "country_code": "GB"}
	require.NoError(t, st.SetItemMetadata(ctx, item, meta))

	point := geom.NewPointFlat(geom.XY, []float64{-0.12574, 51.50853})
	point.SetSRID(4326)
	require.NoError(t, st.SetItemGeometry(ctx, item, point))

	t.Run("reopening keeps data", func(t *testing.T) {
		require.NoError(t, st.Close())
		st2, err := NewSQLite(path)
		require.NoError(t, err)
		defer st2.Close()

		same, err := st2.EnsureUser(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, user.ID, same.ID)
	})
}

package iostore

import (
	"encoding/json"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// encodeMetadata serializes the sanitized record properties to JSON
// for the item's meta column.
func encodeMetadata(meta map[string]any) ([]byte, error) {
	return json.Marshal(meta)
}

// encodeGeometry serializes a point under the well-known geospatial
// field shape: {"geometry": <GeoJSON geometry>}.
func encodeGeometry(point *geom.Point) ([]byte, error) {
	raw, err := geojson.Marshal(point)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{
		"geometry": raw,
	})
}

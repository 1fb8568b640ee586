package gazetteer

import (
	"log/slog"
	"strings"

	"github.com/twpayne/go-geom"
)

// Feature is a geospatial point feature: a lon/lat geometry paired
// with the sanitized record as its properties. Longitude and latitude
// are popped out of the properties so they do not duplicate into the
// properties bag.
type Feature struct {
	Geometry   *geom.Point
	Properties Record
}

// Name returns the feature's display name.
func (f *Feature) Name() string {
	s, _ := f.Properties["name"].(string)
	return s
}

// Description builds the item description from the comma-joined
// alternate names.
func (f *Feature) Description() string {
	names, _ := f.Properties["alternatenames"].([]string)
	return strings.Join(names, ", ")
}

// buildFeature wraps one sanitized record into a Feature. The record
// must contain finite longitude and latitude.
func buildFeature(rec Record) Feature {
	lon := rec["longitude"].(float64)
	lat := rec["latitude"].(float64)
	delete(rec, "longitude")
	delete(rec, "latitude")

	return Feature{
		Geometry:   geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(4326),
		Properties: rec,
	}
}

// BuildFeatures sanitizes a batch of records and converts the valid
// ones into features. Records without usable coordinates are logged
// and excluded; the result may be shorter than the input and the rest
// of the batch always proceeds.
func BuildFeatures(recs []Record) []Feature {
	res := make([]Feature, 0, len(recs))
	for _, raw := range recs {
		rec, ok := Sanitize(raw)
		if !ok {
			slog.Warn("Invalid geometry, skipping record",
				"geonameid", rec["geonameid"],
				"name", rec["name"])
			continue
		}
		res = append(res, buildFeature(rec))
	}
	return res
}

// Package gazetteer provides the pure domain logic of the geonames
// import pipeline: the fixed column schema of the dump, per-column
// type coercion, record sanitization and point-feature construction.
// The package performs no I/O.
package gazetteer

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the tab-separated geonames dump, in file order.
// Trailing columns beyond this schema are ignored.
var Columns = []string{
	"geonameid",
	"name",
	"asciiname",
	"alternatenames",
	"latitude",
	"longitude",
	"feature_class",
	"feature_code",
	"country_code",
	"cc2",
	"admin1_code",
	"admin2_code",
	"admin3_code",
	"admin4_code",
	"population",
	"elevation",
	"dem",
	"timezone",
	"modification_date",
}

var (
	// ErrShortRow reports a row with fewer fields than the schema.
	ErrShortRow = errors.New("gazetteer: row has too few columns")
	// ErrBadID reports an unparseable geonameid field.
	ErrBadID = errors.New("gazetteer: malformed geonameid")
)

// Record is one gazetteer row keyed by column name. Values carry the
// coerced types produced by ParseRow: uint32 id, float64 coordinates,
// uint64/int32 nullable numbers, []string list fields, time.Time
// dates and plain strings otherwise.
type Record map[string]any

// ParseRow converts one raw tab-split row into a Record, applying the
// per-column type rules. Absent, empty and unparseable optional
// values produce no key at all; only a short row or a malformed
// geonameid rejects the whole row.
func ParseRow(fields []string) (Record, error) {
	if len(fields) < len(Columns) {
		return nil, ErrShortRow
	}

	rec := make(Record, len(Columns))
	for i, col := range Columns {
		val := fields[i]

		switch col {
		case "geonameid":
			id, err := strconv.ParseUint(strings.TrimSpace(val), 10, 32)
			if err != nil {
				return nil, ErrBadID
			}
			rec[col] = uint32(id)
		case "latitude", "longitude":
			if f, ok := parseFinite(val); ok {
				rec[col] = f
			}
		case "population":
			if n, ok := parseCount(val); ok {
				rec[col] = n
			}
		case "elevation", "dem":
			if n, ok := parseMeters(val); ok {
				rec[col] = n
			}
		case "alternatenames", "cc2":
			rec[col] = splitList(val)
		case "modification_date":
			if val == "" {
				continue
			}
			if t, err := time.Parse("2006-01-02", val); err == nil {
				rec[col] = t
			} else {
				rec[col] = val
			}
		default:
			if val != "" {
				rec[col] = val
			}
		}
	}

	return rec, nil
}

// parseFinite parses a coordinate, rejecting empty values, parse
// failures, NaN and infinities.
func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseCount implements the "value or null" converter for the
// population column.
func parseCount(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return uint64(f), true
}

// parseMeters implements the "value or null" converter for the
// elevation and dem columns.
func parseMeters(s string) (int32, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int32(f), true
}

// splitList converts a comma-separated field into an ordered list.
// An empty field yields an empty, non-nil list.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

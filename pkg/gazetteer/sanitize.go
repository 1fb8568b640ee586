package gazetteer

import (
	"math"
)

// Sanitize returns a cleaned copy of a record: values that are nil or
// NaN are dropped, and population or elevation values that are not
// positive are treated as "not sensible" and dropped as well. The
// second return value is false when the record lacks a finite
// latitude or longitude after cleaning; such records must not become
// features.
func Sanitize(rec Record) (Record, bool) {
	res := make(Record, len(rec))
	for _, col := range Columns {
		val, has := rec[col]
		if !has || val == nil {
			continue
		}
		if f, isFloat := val.(float64); isFloat && math.IsNaN(f) {
			continue
		}
		switch col {
		case "population":
			if n, isNum := val.(uint64); isNum && n == 0 {
				continue
			}
		case "elevation":
			if n, isNum := val.(int32); isNum && n <= 0 {
				continue
			}
		}
		res[col] = val
	}

	if !hasCoordinate(res, "latitude") || !hasCoordinate(res, "longitude") {
		return res, false
	}
	return res, true
}

func hasCoordinate(rec Record, col string) bool {
	f, ok := rec[col].(float64)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

package gazetteer_test

import (
	"testing"
	"time"

	"github.com/placenames/pndb/pkg/gazetteer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// londonRow returns a realistic allCountries.txt row, tab-split.
func londonRow() []string {
	return []string{
		"2643743",            // geonameid
		"London",             // name
		"London",             // asciiname
		"Londres,Londinium",  // alternatenames
		"51.50853",           // latitude
		"-0.12574",           // longitude
		"P",                  // feature_class
		"PPLC",               // feature_code
		"GB",                 // country_code
		"GB,IE",              // cc2
		"ENG",                // admin1_code
		"GLA",                // admin2_code
		"",                   // admin3_code
		"",                   // admin4_code
		"7556900",            // population
		"25",                 // elevation
		"25",                 // dem
		"Europe/London",      // timezone
		"2011-03-03",         // modification_date
	}
}

func TestParseRow(t *testing.T) {
	rec, err := gazetteer.ParseRow(londonRow())
	require.NoError(t, err)

	t.Run("coerces column types", func(t *testing.T) {
		assert.Equal(t, uint32(2643743), rec["geonameid"])
		assert.Equal(t, "London", rec["name"])
		assert.Equal(t, 51.50853, rec["latitude"])
		assert.Equal(t, -0.12574, rec["longitude"])
		assert.Equal(t, uint64(7556900), rec["population"])
		assert.Equal(t, int32(25), rec["elevation"])
		assert.Equal(t, int32(25), rec["dem"])
	})

	t.Run("splits list columns", func(t *testing.T) {
		assert.Equal(t,
			[]string{"Londres", "Londinium"}, rec["alternatenames"])
		assert.Equal(t, []string{"GB", "IE"}, rec["cc2"])
	})

	t.Run("parses the modification date", func(t *testing.T) {
		want := time.Date(2011, 3, 3, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, rec["modification_date"])
	})

	t.Run("omits empty fields", func(t *testing.T) {
		_, has := rec["admin3_code"]
		assert.False(t, has)
		_, has = rec["admin4_code"]
		assert.False(t, has)
	})
}

func TestParseRowRejects(t *testing.T) {
	t.Run("short row", func(t *testing.T) {
		_, err := gazetteer.ParseRow(londonRow()[:10])
		assert.ErrorIs(t, err, gazetteer.ErrShortRow)
	})

	t.Run("malformed geonameid", func(t *testing.T) {
		row := londonRow()
		row[0] = "not-a-number"
		_, err := gazetteer.ParseRow(row)
		assert.ErrorIs(t, err, gazetteer.ErrBadID)
	})
}

func TestParseRowOptionalValues(t *testing.T) {
	tests := []struct {
		msg   string
		col   int
		val   string
		key   string
		inRec bool
	}{
		{"unparseable latitude dropped", 4, "abc", "latitude", false},
		{"empty longitude dropped", 5, "", "longitude", false},
		{"negative population dropped", 14, "-5", "population", false},
		{"empty elevation dropped", 15, "", "elevation", false},
		{"zero population kept as value", 14, "0", "population", true},
	}

	for _, v := range tests {
		row := londonRow()
		row[v.col] = v.val
		rec, err := gazetteer.ParseRow(row)
		require.NoError(t, err, v.msg)
		_, has := rec[v.key]
		assert.Equal(t, v.inRec, has, v.msg)
	}
}

func TestParseRowEmptyLists(t *testing.T) {
	row := londonRow()
	row[3] = ""
	row[9] = ""
	rec, err := gazetteer.ParseRow(row)
	require.NoError(t, err)

	// empty list columns stay present as empty lists
	assert.Equal(t, []string{}, rec["alternatenames"])
	assert.Equal(t, []string{}, rec["cc2"])
}

func TestParseRowBadDate(t *testing.T) {
	row := londonRow()
	row[18] = "03/03/2011"
	rec, err := gazetteer.ParseRow(row)
	require.NoError(t, err)

	// unparseable dates survive as raw strings
	assert.Equal(t, "03/03/2011", rec["modification_date"])
}

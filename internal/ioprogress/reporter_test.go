package ioprogress

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubClock returns queued times in order, repeating the last one.
func stubClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestNewBindsStderr(t *testing.T) {
	r := New()
	assert.Same(t, os.Stderr, r.w)
}

func TestReportNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, false)

	r.Report(50, 100, "Importing", "")
	r.Done()

	assert.Empty(t, buf.String())
}

func TestReportUnknownTotal(t *testing.T) {
	tests := []struct {
		msg   string
		total int64
	}{
		{"zero total", 0},
		{"negative total", -1},
	}

	for _, v := range tests {
		var buf bytes.Buffer
		r := NewWithWriter(&buf, true)
		r.Report(50, v.total, "Downloading", "b")
		assert.Contains(t, buf.String(), "Downloading: unknown size", v.msg)
	}
}

func TestReportPercent(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		msg    string
		count  int64
		total  int64
		expect string
	}{
		{"half way", 50, 100, "50.0%"},
		{"rounded to one decimal", 333, 1000, "33.3%"},
		{"clamped above total", 250, 100, "100.9%"},
		{"exactly complete", 100, 100, "100.0%"},
	}

	for _, v := range tests {
		var buf bytes.Buffer
		r := NewWithWriter(&buf, true)
		r.now = stubClock(t0)
		r.Report(v.count, v.total, "Importing", "")
		assert.Contains(t, buf.String(), v.expect, v.msg)
	}
}

func TestReportRate(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)

	var buf bytes.Buffer
	r := NewWithWriter(&buf, true)
	// first call starts the session, second is one second in
	r.now = stubClock(t0, t0, t1)

	r.Report(1, 4096, "Importing", "lines")
	buf.Reset()
	r.Report(2048, 4096, "Importing", "lines")

	assert.Contains(t, buf.String(), "(2.0Klines/s)")
}

func TestReportNoUnitOmitsRate(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithWriter(&buf, true)

	r.Report(50, 100, "Importing", "")

	// with an empty unit the line carries no throughput
	assert.Contains(t, buf.String(), "50.0%")
	assert.NotContains(t, buf.String(), "/s)")
}

func TestReportRateUnit(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)

	var buf bytes.Buffer
	r := NewWithWriter(&buf, true)
	r.now = stubClock(t0, t0, t1)

	r.Report(1, 100, "Downloading", "b")
	buf.Reset()
	r.Report(3*1024*1024, 100*1024*1024, "Downloading", "b")

	assert.Contains(t, buf.String(), "(3.0Mb/s)")
}

func TestDoneResetsSession(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	r := NewWithWriter(&buf, true)
	r.now = stubClock(t0)

	r.Report(10, 100, "Importing", "")
	r.Done()
	assert.True(t, r.start.IsZero())
	assert.Contains(t, buf.String(), "\n")
}

// Package ioprogress renders single-line progress reports on a
// terminal. When stdout is not a tty every call is a no-op, so
// redirected and scripted runs stay clean.
package ioprogress

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// binary rate prefixes, each step is a division by 1024.
var ratePrefixes = []string{"", "K", "M", "G", "T", "P", "E", "Z"}

// Reporter writes carriage-return progress lines to a terminal. The
// zero value is not usable; use New or NewWithWriter.
type Reporter struct {
	w           io.Writer
	interactive bool

	// now is swappable for tests.
	now func() time.Time

	// start marks the beginning of the current reporting session.
	// Zero means idle; the first Report of a session sets it, and
	// Done resets it so throughput never averages across sessions.
	start time.Time
}

// New creates a Reporter bound to stderr. It is interactive only
// when stderr is a terminal.
func New() *Reporter {
	return &Reporter{
		w:           os.Stderr,
		interactive: isatty.IsTerminal(os.Stderr.Fd()),
		now:         time.Now,
	}
}

// NewWithWriter creates a Reporter with explicit destination and
// interactivity, for tests and for callers that render somewhere
// other than stdout.
func NewWithWriter(w io.Writer, interactive bool) *Reporter {
	return &Reporter{w: w, interactive: interactive, now: time.Now}
}

// Report renders one progress line. count is the number of units
// processed so far, total the expected final number. When total is
// unknown (zero or negative) the line says so instead of showing a
// bogus percentage. The percentage is clamped to [0, 100.9] so a
// wrong total estimate cannot produce absurd output. A throughput
// suffix is appended only when a unit is given; with an empty unit
// the line is percent-only.
func (r *Reporter) Report(count, total int64, message, unit string) {
	if !r.interactive {
		return
	}
	if r.start.IsZero() {
		r.start = r.now()
	}
	if total <= 0 {
		fmt.Fprintf(r.w, "\r%s: unknown size", message)
		return
	}

	pct := math.Round(1000*float64(count)/float64(total)) / 10
	if pct < 0 {
		pct = 0
	}
	if pct > 100.9 {
		pct = 100.9
	}

	if unit == "" {
		fmt.Fprintf(r.w, "\r%s: %4.1f%%", message, pct)
		return
	}
	fmt.Fprintf(r.w, "\r%s: %4.1f%% (%s/s)",
		message, pct, r.rate(count, unit))
}

// Done ends the current reporting session: the throughput clock is
// reset and the progress line is finalized with a newline.
func (r *Reporter) Done() {
	if !r.interactive {
		return
	}
	r.start = time.Time{}
	fmt.Fprintln(r.w)
}

// rate formats session throughput with binary prefixes: 2560 units
// per second becomes "2.5K<unit>".
func (r *Reporter) rate(count int64, unit string) string {
	elapsed := r.now().Sub(r.start).Seconds()
	var speed float64
	if elapsed > 0 {
		speed = float64(count) / elapsed
	}

	for _, prefix := range ratePrefixes {
		if speed < 1024 {
			return fmt.Sprintf("%3.1f%s%s", speed, prefix, unit)
		}
		speed /= 1024
	}
	return fmt.Sprintf("%3.1fY%s", speed, unit)
}

// Package ephemtime converts between ephemeris time (seconds past the J2000
// epoch) and calendar representations, and defines the time-unit constants
// the rest of the simulation works in.
package ephemtime

import (
	"fmt"
	"strings"
	"time"
)

// Time-unit constants, in seconds unless noted.
const (
	SecondsPerMinute = 60.0
	SecondsPerHour   = 3600.0
	SecondsPerDay    = 86400.0
	HoursPerDay      = 24.0
)

// j2000 is the J2000 reference epoch: 2000-01-01 12:00:00. The simulation
// treats its timescale as an idealised uniform TDB-like scale, so no
// leap-second or relativistic corrections apply.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// parse layouts accepted for kernel timestamps, tried in order.
var layouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02-15:04:05.000",
	"2006-01-02-15:04:05",
}

// Parse converts a kernel calendar timestamp into ephemeris seconds past
// J2000. Accepted forms include "2000-01-01T00:00:00" and the same with a
// '-' date/time separator or fractional seconds.
func Parse(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Sub(j2000).Seconds(), nil
		}
	}
	return 0, fmt.Errorf("unrecognised epoch timestamp %q", s)
}

// Calendar renders an ephemeris time as a human-readable calendar string,
// e.g. "2000-JAN-01 00:00:00.000". Sub-millisecond detail is truncated;
// callers wanting round-to-nearest add half a millisecond first.
func Calendar(et float64) string {
	t := j2000.Add(time.Duration(et * float64(time.Second)))
	return strings.ToUpper(t.Format("2006-Jan-02 15:04:05.000"))
}

package ephemtime

import (
	"math"
	"testing"
)

func TestParse_J2000Noon(t *testing.T) {
	et, err := Parse("2000-01-01T12:00:00")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if et != 0 {
		t.Errorf("J2000 noon should be et=0, got %g", et)
	}
}

func TestParse_MidnightBeforeJ2000(t *testing.T) {
	et, err := Parse("2000-01-01T00:00:00")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if et != -12*SecondsPerHour {
		t.Errorf("midnight of 2000-01-01 should be et=-43200, got %g", et)
	}
}

func TestParse_DashSeparatorAndFraction(t *testing.T) {
	et, err := Parse("2000-01-02-12:00:00.500")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if math.Abs(et-(SecondsPerDay+0.5)) > 1e-9 {
		t.Errorf("et = %g, want %g", et, SecondsPerDay+0.5)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("not-a-timestamp"); err == nil {
		t.Fatal("expected an error for a malformed timestamp")
	}
}

func TestCalendar_RoundTrip(t *testing.T) {
	if got := Calendar(0); got != "2000-JAN-01 12:00:00.000" {
		t.Errorf("Calendar(0) = %q", got)
	}
	if got := Calendar(-12 * SecondsPerHour); got != "2000-JAN-01 00:00:00.000" {
		t.Errorf("Calendar(-43200) = %q", got)
	}
}

func TestUnitConstants(t *testing.T) {
	if SecondsPerHour != 60*SecondsPerMinute {
		t.Error("hour is not 60 minutes")
	}
	if SecondsPerDay != HoursPerDay*SecondsPerHour {
		t.Error("day is not 24 hours")
	}
}

package hours

import (
	"testing"
	"time"
)

// bogota builds an instant at the given local wall-clock time in the
// reference zone.
func bogota(hour, minute int) time.Time {
	return time.Date(2026, time.March, 14, hour, minute, 0, 0, referenceZone)
}

func TestEvaluate_MissingHours(t *testing.T) {
	now := bogota(12, 0)

	cases := []struct {
		name    string
		opening string
		closing string
	}{
		{"both empty", "", ""},
		{"closing empty", "09:00", ""},
		{"opening empty", "", "18:00"},
		{"opening malformed", "9am", "18:00"},
		{"closing malformed", "09:00", "veinte"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.opening, tc.closing, now); got != StatusClosed {
				t.Fatalf("Evaluate(%q, %q) = %q; want %q", tc.opening, tc.closing, got, StatusClosed)
			}
		})
	}
}

func TestEvaluate_SameDayWindow(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"before opening", bogota(8, 59), StatusClosed},
		{"at opening", bogota(9, 0), StatusOpen},
		{"mid window", bogota(13, 30), StatusOpen},
		{"just before threshold", bogota(17, 29), StatusOpen},
		{"threshold boundary", bogota(17, 30), StatusClosing},
		{"last minute", bogota(17, 59), StatusClosing},
		{"at closing", bogota(18, 0), StatusClosed},
		{"after closing", bogota(22, 0), StatusClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate("09:00", "18:00", tc.now); got != tc.want {
				t.Fatalf("Evaluate(09:00, 18:00, %s) = %q; want %q", tc.now.Format("15:04"), got, tc.want)
			}
		})
	}
}

func TestEvaluate_OvernightWindow(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"afternoon before opening", bogota(15, 0), StatusClosed},
		{"at opening", bogota(18, 0), StatusOpen},
		{"late evening", bogota(20, 0), StatusOpen},
		{"closing soon before midnight", bogota(23, 30), StatusClosing},
		{"at midnight close", bogota(0, 0), StatusClosed},
		{"past midnight", bogota(0, 30), StatusClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate("18:00", "00:00", tc.now); got != tc.want {
				t.Fatalf("Evaluate(18:00, 00:00, %s) = %q; want %q", tc.now.Format("15:04"), got, tc.want)
			}
		})
	}
}

func TestEvaluate_OvernightWindowSpansMidnight(t *testing.T) {
	// Open 22:00, close 02:00: both sides of midnight count as open.
	if got := Evaluate("22:00", "02:00", bogota(23, 0)); got != StatusOpen {
		t.Fatalf("before midnight: %q", got)
	}
	if got := Evaluate("22:00", "02:00", bogota(1, 0)); got != StatusOpen {
		t.Fatalf("after midnight: %q", got)
	}
	if got := Evaluate("22:00", "02:00", bogota(1, 45)); got != StatusClosing {
		t.Fatalf("closing soon after midnight: %q", got)
	}
	if got := Evaluate("22:00", "02:00", bogota(3, 0)); got != StatusClosed {
		t.Fatalf("after close: %q", got)
	}
}

func TestEvaluate_ConvertsToReferenceZone(t *testing.T) {
	// 22:00 UTC is 17:00 in Bogota; a naive UTC comparison would report closed.
	utcNow := time.Date(2026, time.March, 14, 22, 0, 0, 0, time.UTC)
	if got := Evaluate("09:00", "18:00", utcNow); got != StatusOpen {
		t.Fatalf("Evaluate with UTC now = %q; want %q", got, StatusOpen)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	now := bogota(12, 15)
	first := Evaluate("09:00", "18:00", now)
	for i := 0; i < 10; i++ {
		if got := Evaluate("09:00", "18:00", now); got != first {
			t.Fatalf("call %d = %q; want %q", i, got, first)
		}
	}
}

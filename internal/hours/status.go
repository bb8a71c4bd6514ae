// internal/hours/status.go
package hours

import (
	"strings"
	"time"
)

// Status is the derived open/closed state of a business. It is computed fresh
// on every read and never persisted.
type Status string

const (
	StatusOpen    Status = "open"
	StatusClosing Status = "closing"
	StatusClosed  Status = "closed"
)

// A business inside its open window reports "closing" during the final
// closingSoonMinutes of the window.
const closingSoonMinutes = 30

const minutesPerDay = 24 * 60

// All hour comparisons happen in Colombia local time regardless of where the
// server runs or what zone the caller's timestamp carries.
var referenceZone = loadReferenceZone()

func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		// Bogota is UTC-5 year round, no daylight saving.
		return time.FixedZone("-05", -5*60*60)
	}
	return loc
}

// Evaluate reports whether a business is open, closing soon, or closed at the
// given instant. openingTime and closingTime are "HH:MM" strings in Colombia
// local time; a business with either missing or malformed is always closed.
// The open window is half-open: inclusive of the opening minute, exclusive of
// the closing minute. A closing time at or before the opening time denotes a
// window that crosses midnight (open 16:00, close 00:00).
func Evaluate(openingTime, closingTime string, now time.Time) Status {
	openMin, ok := minuteOfDay(openingTime)
	if !ok {
		return StatusClosed
	}
	closeMin, ok := minuteOfDay(closingTime)
	if !ok {
		return StatusClosed
	}

	local := now.In(referenceZone)
	current := local.Hour()*60 + local.Minute()

	if !inWindow(current, openMin, closeMin) {
		return StatusClosed
	}
	remaining := (closeMin - current + minutesPerDay) % minutesPerDay
	if remaining <= closingSoonMinutes {
		return StatusClosing
	}
	return StatusOpen
}

func inWindow(current, openMin, closeMin int) bool {
	if closeMin <= openMin {
		return current >= openMin || current < closeMin
	}
	return current >= openMin && current < closeMin
}

func minuteOfDay(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

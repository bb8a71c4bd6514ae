// internal/ingest/hours.go
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// HourBias resolves an hour token written without an am/pm marker. The source
// listings never agree on a convention, so the resolution is a dataset-level
// policy rather than hidden logic. closing reports whether the token came from
// the closing clause of the range.
type HourBias func(hour int, closing bool) int

// EveningBias is the default policy for the source dataset, which is dominated
// by afternoon and evening food businesses: bare hours 1-11 are read as PM, a
// bare 12 in the opening clause is noon, a bare 12 in the closing clause is
// midnight ("cierra a las 12"), and 24 normalizes to 0. An explicit am/pm
// marker in the input always wins over the bias.
func EveningBias(hour int, closing bool) int {
	switch {
	case hour >= 1 && hour <= 11:
		return hour + 12
	case hour == 12 && closing:
		return 0
	case hour == 24:
		return 0
	}
	return hour
}

// MorningBias reads bare hours literally, for zones whose listings are
// dominated by morning businesses.
func MorningBias(hour int, closing bool) int {
	if hour == 24 {
		return 0
	}
	return hour
}

// Range separators in source order of meaning: "5 a 11" (to), "12 y 30" style
// joins of split schedules (and), plain dashes.
var rangeSeparators = []string{" a ", " y ", "-"}

// ParseHoursRange converts a free-text hour range such as "5 a 11",
// "6:00 PM A 12" or "10 am a 8:30" into a normalized ("HH:MM", "HH:MM") pair
// using EveningBias. This is a best-effort heuristic for batch import, not a
// grammar: input that does not split into at least two clauses yields empty
// strings, and a clause whose hour token is not numeric degrades to "00:00".
// Split schedules joined by "y" collapse to the first window; the raw display
// text is stored separately so nothing is lost at the record level.
func ParseHoursRange(raw string) (open, close string) {
	return ParseHoursRangeWith(raw, EveningBias)
}

// ParseHoursRangeWith is ParseHoursRange with an explicit bias policy.
func ParseHoursRangeWith(raw string, bias HourBias) (open, close string) {
	s := strings.ToLower(strings.TrimSpace(raw))
	clauses := splitClauses(s)
	if len(clauses) < 2 {
		return "", ""
	}
	return parseClause(clauses[0], false, bias), parseClause(clauses[1], true, bias)
}

func splitClauses(s string) []string {
	parts := []string{s}
	for _, sep := range rangeSeparators {
		next := make([]string, 0, len(parts))
		for _, part := range parts {
			next = append(next, strings.Split(part, sep)...)
		}
		parts = next
	}
	return parts
}

// parseClause normalizes a single clause ("5", "8:30", "10 am", "6:00 pm") to
// "HH:MM". An unparseable hour degrades to "00:00" without failing the range.
func parseClause(raw string, closing bool, bias HourBias) string {
	raw = strings.TrimSpace(raw)
	marker := strings.ReplaceAll(raw, ".", "")
	isPM := strings.Contains(marker, "pm")
	isAM := strings.Contains(marker, "am")

	clean := strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || r == '.' {
			return -1
		}
		return r
	}, raw))

	hourToken, minuteToken, _ := strings.Cut(clean, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourToken))
	if err != nil {
		return "00:00"
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minuteToken))
	if err != nil {
		minute = 0
	}

	switch {
	case isPM:
		if hour < 12 {
			hour += 12
		}
	case isAM:
		if hour == 12 {
			hour = 0
		}
	default:
		hour = bias(hour, closing)
	}

	return fmt.Sprintf("%02d:%02d", hour%24, minute)
}

// internal/ingest/coordinates.go
package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Degree-minute-second pair with hemispheres, e.g. 4°31'17.8"N 75°41'20.5"W.
var dmsPattern = regexp.MustCompile(`(\d+)°(\d+)'([\d.]+)"([NS])\s*(\d+)°(\d+)'([\d.]+)"([EW])`)

// ParseCoordinates converts a degrees-minutes-seconds location string into
// decimal degrees rounded to six places, returned as strings to match the
// stored column type. Empty input, shortened map URLs (which would need a
// network fetch to resolve) and anything that does not match the DMS pattern
// yield empty strings.
func ParseCoordinates(raw string) (lat, lon string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	if strings.Contains(raw, "http") {
		return "", ""
	}

	match := dmsPattern.FindStringSubmatch(raw)
	if match == nil {
		return "", ""
	}

	latVal := dmsToDecimal(match[1], match[2], match[3])
	if match[4] == "S" {
		latVal = -latVal
	}
	lonVal := dmsToDecimal(match[5], match[6], match[7])
	if match[8] == "W" {
		lonVal = -lonVal
	}

	return strconv.FormatFloat(latVal, 'f', 6, 64), strconv.FormatFloat(lonVal, 'f', 6, 64)
}

func dmsToDecimal(degrees, minutes, seconds string) float64 {
	d, _ := strconv.ParseFloat(degrees, 64)
	m, _ := strconv.ParseFloat(minutes, 64)
	s, _ := strconv.ParseFloat(seconds, 64)
	return d + m/60 + s/3600
}

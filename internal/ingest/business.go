// internal/ingest/business.go
package ingest

import (
	"fmt"

	"github.com/terrario-app/terrario/internal/models"
)

// BusinessFromRecord normalizes one source-table row into a directory entry.
// The free-text hours stay on the record as the display string; the parsed
// pair feeds status evaluation. Rows without images get empty URLs and the
// frontend falls back to category defaults.
func BusinessFromRecord(rec RawBusinessRecord, zone string) models.Business {
	open, close := ParseHoursRange(rec.Hours)
	lat, lon := ParseCoordinates(rec.Location)

	business := models.Business{
		Name:         rec.Name,
		Category:     rec.Category,
		Specialty:    rec.Category,
		DeliveryTime: rec.DeliveryTime,
		Hours:        rec.Hours,
		OpeningTime:  open,
		ClosingTime:  close,
		Distances:    distanceMap(rec),
		Keywords:     []string{},
		Description:  fmt.Sprintf("%s - %s", rec.Name, rec.Category),
		Gallery:      []string{},
		Latitude:     lat,
		Longitude:    lon,
		WhatsApp:     NormalizeWhatsApp(rec.WhatsApp),
		IsNearby:     true,
		Zone:         zone,
	}
	if rec.Keywords != "" {
		business.Keywords = append(business.Keywords, rec.Keywords)
	}
	business.Normalize()
	return business
}

func distanceMap(rec RawBusinessRecord) map[string]string {
	distances := map[string]string{
		"walking":    "",
		"motorcycle": "",
		"car":        "",
	}
	if rec.WalkMinutes != "" {
		distances["walking"] = rec.WalkMinutes + " min"
	}
	if rec.MotoMinutes != "" {
		distances["motorcycle"] = rec.MotoMinutes + " min"
	}
	if rec.CarMinutes != "" {
		distances["car"] = rec.CarMinutes + " min"
	}
	return distances
}

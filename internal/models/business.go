// internal/models/business.go
package models

import (
	"fmt"
	"time"

	"github.com/terrario-app/terrario/internal/hours"
)

// Business is a directory entry. The JSON field names match what the frontend
// consumed from the first version of the API: deliveryTime stayed camelCase,
// everything else is snake_case. Status is derived from opening_time and
// closing_time on every read; the stored status column is legacy and ignored.
type Business struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	Specialty      string            `json:"specialty"`
	DeliveryTime   string            `json:"deliveryTime"`
	Image          string            `json:"image"`
	Logo           string            `json:"logo"`
	Hours          string            `json:"hours"`
	OpeningTime    string            `json:"opening_time"`
	ClosingTime    string            `json:"closing_time"`
	Status         hours.Status      `json:"status"`
	Distances      map[string]string `json:"distances"`
	Keywords       []string          `json:"keywords"`
	Description    string            `json:"description"`
	Gallery        []string          `json:"gallery"`
	Latitude       string            `json:"latitude"`
	Longitude      string            `json:"longitude"`
	WhatsApp       string            `json:"whatsapp"`
	IsPopular      bool              `json:"is_popular"`
	IsNearby       bool              `json:"is_nearby"`
	PaymentMethods map[string]bool   `json:"payment_methods"`
	Zone           string            `json:"zone"`
}

// Validate enforces record invariants before a write. Hours must be declared
// as a pair: either both opening_time and closing_time are valid "HH:MM"
// strings or both are empty.
func (b *Business) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	if (b.OpeningTime == "") != (b.ClosingTime == "") {
		return fmt.Errorf("opening_time and closing_time must be set together")
	}
	if b.OpeningTime != "" {
		if err := validateTimeOfDay(b.OpeningTime, "opening_time"); err != nil {
			return err
		}
		if err := validateTimeOfDay(b.ClosingTime, "closing_time"); err != nil {
			return err
		}
	}
	return nil
}

func validateTimeOfDay(value, field string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("%s must be in HH:MM format", field)
	}
	return nil
}

// Normalize fills the collection fields clients are allowed to omit so the
// stored JSON columns never hold SQL NULLs.
func (b *Business) Normalize() {
	if b.Distances == nil {
		b.Distances = map[string]string{}
	}
	if b.Keywords == nil {
		b.Keywords = []string{}
	}
	if b.Gallery == nil {
		b.Gallery = []string{}
	}
	if b.PaymentMethods == nil {
		b.PaymentMethods = map[string]bool{}
	}
}

// internal/ingest/phone.go
package ingest

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Listings write local mobile numbers without a country code.
const defaultPhoneRegion = "CO"

// NormalizeWhatsApp formats a contact number as E.164 ("3232851699" becomes
// "+573232851699"). Numbers that do not parse or validate pass through
// unchanged; a bad number should not block a row, same policy as the hour and
// coordinate parsers.
func NormalizeWhatsApp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return raw
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

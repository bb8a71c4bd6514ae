package ingest

import "testing"

func TestBusinessFromRecord(t *testing.T) {
	rec := RawBusinessRecord{
		Name:         "TROPIWINGS",
		Category:     "ALITAS & COSTILLAS",
		Hours:        "5 a 11",
		DeliveryTime: "30",
		WalkMinutes:  "1",
		MotoMinutes:  "1",
		CarMinutes:   "2",
		Location:     `4°31'17.8"N 75°41'20.5"W`,
		WhatsApp:     "3232851699",
		Keywords:     "Alitas",
	}

	b := BusinessFromRecord(rec, "Las Acacias")

	if b.Name != "TROPIWINGS" || b.Category != "ALITAS & COSTILLAS" {
		t.Fatalf("identity fields: %+v", b)
	}
	if b.Specialty != b.Category {
		t.Fatalf("specialty: %q", b.Specialty)
	}
	if b.Hours != "5 a 11" {
		t.Fatalf("display hours: %q", b.Hours)
	}
	if b.OpeningTime != "17:00" || b.ClosingTime != "23:00" {
		t.Fatalf("parsed hours: %q-%q", b.OpeningTime, b.ClosingTime)
	}
	if b.Latitude != "4.521611" || b.Longitude != "-75.689028" {
		t.Fatalf("coordinates: %q, %q", b.Latitude, b.Longitude)
	}
	if b.WhatsApp != "+573232851699" {
		t.Fatalf("whatsapp: %q", b.WhatsApp)
	}
	if b.Distances["walking"] != "1 min" || b.Distances["car"] != "2 min" {
		t.Fatalf("distances: %+v", b.Distances)
	}
	if len(b.Keywords) != 1 || b.Keywords[0] != "Alitas" {
		t.Fatalf("keywords: %+v", b.Keywords)
	}
	if b.Description != "TROPIWINGS - ALITAS & COSTILLAS" {
		t.Fatalf("description: %q", b.Description)
	}
	if !b.IsNearby || b.IsPopular {
		t.Fatalf("flags: nearby=%v popular=%v", b.IsNearby, b.IsPopular)
	}
	if b.Zone != "Las Acacias" {
		t.Fatalf("zone: %q", b.Zone)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("mapped record should validate: %v", err)
	}
}

func TestBusinessFromRecord_NoHoursNoLocation(t *testing.T) {
	b := BusinessFromRecord(RawBusinessRecord{Name: "ARA", Category: "SUPERMERCADO"}, "Las Acacias")

	if b.OpeningTime != "" || b.ClosingTime != "" {
		t.Fatalf("hours should stay empty: %q-%q", b.OpeningTime, b.ClosingTime)
	}
	if b.Latitude != "" || b.Longitude != "" {
		t.Fatalf("coordinates should stay empty: %q, %q", b.Latitude, b.Longitude)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("record without hours should validate: %v", err)
	}
}

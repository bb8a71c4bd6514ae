package ingest

import (
	"strings"
	"testing"
)

const sampleTable = `ZONA LAS ACACIAS

| # | NOMBRE DEL ESTABLECIMIENTO | CATEGORIA | HORARIO | TIEMPO | A PIE | MOTO | CARRO | UBICACION | WHATSAPP | PALABRAS CLAVE | TIENE LOGO | TIENE FOTOS |
|---|---|---|---|---|---|---|---|---|---|---|---|---|
| 1 | TROPIWINGS | ALITAS & COSTILLAS | 5 a 11 | 30 | 1 | 1 | 1 | 4°31'17.8"N 75°41'20.5"W | 3232851699 | Alitas | | |
| 2 | LA ARROCERIA | ARROZ | 10 am a 8:30 | 50 | 1 | 1 | 1 | https://maps.app.goo.gl/xyz | 3105063420 | Arroz | | |
| 3 | ROW TOO SHORT |
nota suelta sin barra
`

func TestReadTable(t *testing.T) {
	records, skipped, err := ReadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d; want 1", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d; want 2", len(records))
	}

	first := records[0]
	if first.Name != "TROPIWINGS" {
		t.Fatalf("name: %q", first.Name)
	}
	if first.Category != "ALITAS & COSTILLAS" {
		t.Fatalf("category: %q", first.Category)
	}
	if first.Hours != "5 a 11" {
		t.Fatalf("hours: %q", first.Hours)
	}
	if first.Location != `4°31'17.8"N 75°41'20.5"W` {
		t.Fatalf("location: %q", first.Location)
	}
	if first.WhatsApp != "3232851699" {
		t.Fatalf("whatsapp: %q", first.WhatsApp)
	}

	if records[1].Name != "LA ARROCERIA" {
		t.Fatalf("second name: %q", records[1].Name)
	}
}

func TestReadTable_Empty(t *testing.T) {
	records, skipped, err := ReadTable(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(records) != 0 || skipped != 0 {
		t.Fatalf("records = %d, skipped = %d; want 0, 0", len(records), skipped)
	}
}

// internal/ingest/table.go
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// The source table carries one business per row:
// | # | NOMBRE DEL ESTABLECIMIENTO | CATEGORIA | HORARIO | TIEMPO | A PIE | MOTO | CARRO | UBICACION | WHATSAPP | PALABRAS CLAVE | TIENE LOGO | TIENE FOTOS |
const (
	colName = iota + 2
	colCategory
	colHours
	colDeliveryTime
	colWalkMinutes
	colMotoMinutes
	colCarMinutes
	colLocation
	colWhatsApp
	colKeywords
	colHasLogo
	colHasPhotos
)

// Rows with fewer delimited columns than this are skipped individually.
const minTableColumns = 10

const tableHeaderMarker = "NOMBRE DEL ESTABLECIMIENTO"

// RawBusinessRecord is one row of the source table before normalization. The
// hours and location fields are free text; they exist only during import.
type RawBusinessRecord struct {
	Name         string
	Category     string
	Hours        string
	DeliveryTime string
	WalkMinutes  string
	MotoMinutes  string
	CarMinutes   string
	Location     string
	WhatsApp     string
	Keywords     string
	HasLogo      string
	HasPhotos    string
}

// ReadTable parses the pipe-delimited source table. Only lines starting with
// "|" are considered; the header row and "---" separator rows are excluded by
// content. Malformed rows are dropped without aborting the batch; skipped
// reports how many.
func ReadTable(r io.Reader) (records []RawBusinessRecord, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if strings.Contains(line, "---") || strings.Contains(line, tableHeaderMarker) {
			continue
		}

		cols := strings.Split(line, "|")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}
		if len(cols) < minTableColumns {
			skipped++
			continue
		}

		records = append(records, RawBusinessRecord{
			Name:         col(cols, colName),
			Category:     col(cols, colCategory),
			Hours:        col(cols, colHours),
			DeliveryTime: col(cols, colDeliveryTime),
			WalkMinutes:  col(cols, colWalkMinutes),
			MotoMinutes:  col(cols, colMotoMinutes),
			CarMinutes:   col(cols, colCarMinutes),
			Location:     col(cols, colLocation),
			WhatsApp:     col(cols, colWhatsApp),
			Keywords:     col(cols, colKeywords),
			HasLogo:      col(cols, colHasLogo),
			HasPhotos:    col(cols, colHasPhotos),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read source table: %w", err)
	}
	return records, skipped, nil
}

func col(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return cols[i]
}

// cmd/tools/seedimport/main.go
//
// One-shot batch import: reads the pipe-delimited source table, normalizes
// hours, coordinates and contact numbers, and replaces the businesses table.
// Parsing is best effort; the output is meant to be spot-checked by whoever
// runs the import.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/terrario-app/terrario/internal/config"
	"github.com/terrario-app/terrario/internal/db"
	"github.com/terrario-app/terrario/internal/ingest"
	"github.com/terrario-app/terrario/internal/models"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		dataPath   = flag.String("data", "", "Path to source table (overrides config)")
		zone       = flag.String("zone", "", "Zone assigned to imported businesses (overrides config)")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dataPath == "" {
		*dataPath = cfg.Seed.DataFile
	}
	if *dataPath == "" {
		log.Fatal().Msg("No data file: set -data or seed.data_file in config")
	}
	if *zone == "" {
		*zone = cfg.Seed.DefaultZone
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	file, err := os.Open(*dataPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dataPath).Msg("Failed to open data file")
	}
	defer file.Close()

	records, skipped, err := ingest.ReadTable(file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read data file")
	}
	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("Skipped malformed rows")
	}

	imported := make([]models.Business, 0, len(records))
	for _, rec := range records {
		business := ingest.BusinessFromRecord(rec, *zone)
		if err := business.Validate(); err != nil {
			log.Warn().Err(err).Str("name", rec.Name).Msg("Skipping invalid record")
			continue
		}
		if business.OpeningTime == "" {
			log.Info().Str("name", rec.Name).Str("hours", rec.Hours).Msg("No parseable hours; business will always report closed")
		}
		imported = append(imported, business)
	}

	if err := database.ReplaceAllBusinesses(context.Background(), imported); err != nil {
		log.Fatal().Err(err).Msg("Failed to write businesses")
	}

	log.Info().
		Int("imported", len(imported)).
		Int("skipped", skipped+len(records)-len(imported)).
		Msg("Import complete")
}

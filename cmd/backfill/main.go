// Command backfill replays every stored scan through the extraction engine.
// Run it after changing engine keyword sets so existing scans pick up the
// new extraction behavior without a re-upload.
// Usage: go run ./cmd/backfill [-status failed] [-concurrency 4]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"invoscan/internal/config"
	"invoscan/internal/domain"
	"invoscan/internal/engine"
	"invoscan/internal/ocr"
	"invoscan/internal/port"
	"invoscan/internal/repository/postgres"
	"invoscan/internal/service"
	s3storage "invoscan/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	statusFilter := flag.String("status", "", "only re-extract scans with this status (pending, extracted, failed)")
	concurrency := flag.Int("concurrency", 4, "number of scans processed in parallel")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	scanRepo := postgres.NewScanRepo(db)

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	sources := map[domain.OCRBackend]port.LineSource{
		domain.OCRBackendTesseract: ocr.NewTesseract(&cfg.OCR),
		domain.OCRBackendPDFText:   ocr.NewPDFText(cfg.OCR.MaxPages),
	}

	eng := engine.New(engineConfig(cfg.Engine))
	scanSvc := service.NewScanService(scanRepo, s3Client, sources, eng, &cfg.S3,
		domain.OCRBackend(cfg.OCR.Backend))

	ctx := context.Background()
	scans, err := scanRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing scans: %w", err)
	}

	var ids []uuid.UUID
	for i := range scans {
		if *statusFilter != "" && string(scans[i].Status) != *statusFilter {
			continue
		}
		ids = append(ids, scans[i].ID)
	}
	if len(ids) == 0 {
		log.Printf("Backfill complete: no scans matched")
		return nil
	}

	worker := service.NewReextractWorker(scanSvc, service.ReextractConfig{
		Concurrency: *concurrency,
	})
	completed := worker.Run(ctx, ids)

	log.Printf("Backfill complete: %d/%d scans re-extracted", completed, len(ids))
	return nil
}

func engineConfig(cfg config.EngineConfig) engine.Config {
	return engine.Config{
		DateWindow:    cfg.DateWindow,
		AddressStart:  cfg.AddressStart,
		AddressStop:   cfg.AddressStop,
		StreetWords:   cfg.StreetWords,
		CityWords:     cfg.CityWords,
		CountryMarker: cfg.CountryMarker,
		NoisePrefixes: cfg.NoisePrefixes,
		NoisePhrases:  cfg.NoisePhrases,
		Watermarks:    cfg.Watermarks,
	}
}

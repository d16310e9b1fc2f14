package main

import (
	"fmt"
	"log"

	"invoscan/internal/config"
	"invoscan/internal/domain"
	"invoscan/internal/email/noop"
	"invoscan/internal/email/ses"
	"invoscan/internal/engine"
	"invoscan/internal/handler"
	"invoscan/internal/ocr"
	"invoscan/internal/port"
	"invoscan/internal/repository/postgres"
	"invoscan/internal/router"
	"invoscan/internal/service"
	s3storage "invoscan/internal/storage/s3"
	"invoscan/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	scanRepo := postgres.NewScanRepo(db)

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var sender port.EmailSender
	if cfg.Email.Provider == "ses" {
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		sender = noop.NewNoopSender()
	}

	sources := map[domain.OCRBackend]port.LineSource{
		domain.OCRBackendTesseract: ocr.NewTesseract(&cfg.OCR),
		domain.OCRBackendPDFText:   ocr.NewPDFText(cfg.OCR.MaxPages),
	}

	// Initialize services
	eng := engine.New(engineConfig(cfg.Engine))
	authSvc := service.NewAuthService(cfg.Auth)
	scanSvc := service.NewScanService(scanRepo, s3Client, sources, eng, &cfg.S3,
		domain.OCRBackend(cfg.OCR.Backend))
	exportSvc := service.NewExportService(scanRepo, sender)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	scanH := handler.NewScanHandler(scanSvc, validator.NewEngine(validator.Default()))
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, scanH, exportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

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

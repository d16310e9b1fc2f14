// Command extract runs the OCR and extraction pipeline over a single local
// document and prints the resulting invoice record as JSON. No database or
// object storage is touched; useful for tuning keyword sets against sample
// invoices.
// Usage: go run ./cmd/extract [-backend tesseract] [-lines] invoice.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"invoscan/internal/config"
	"invoscan/internal/domain"
	"invoscan/internal/engine"
	"invoscan/internal/ocr"
	"invoscan/internal/port"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	backend := flag.String("backend", "", "ocr backend: tesseract or pdftext (defaults to configuration)")
	showLines := flag.Bool("lines", false, "print the recognized lines instead of the extracted record")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: extract [-backend tesseract|pdftext] [-lines] <document>")
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		return fmt.Errorf("cannot determine content type of %s", path)
	}

	selected := domain.OCRBackend(cfg.OCR.Backend)
	if *backend != "" {
		selected = domain.OCRBackend(*backend)
	}
	if !domain.ValidOCRBackends[selected] {
		return domain.ErrInvalidOCRBackend
	}

	var source port.LineSource
	switch selected {
	case domain.OCRBackendPDFText:
		source = ocr.NewPDFText(cfg.OCR.MaxPages)
	default:
		source = ocr.NewTesseract(&cfg.OCR)
	}

	lines, err := source.Lines(context.Background(), doc, contentType)
	if err != nil {
		return fmt.Errorf("recognizing %s: %w", path, err)
	}

	if *showLines {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	eng := engine.New(engineConfig(cfg.Engine))
	record := eng.Extract(lines)

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	fmt.Println(string(out))
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

package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"invoscan/internal/config"
	"invoscan/internal/domain"
)

// Tesseract is a LineSource that rasterizes PDFs with pdftoppm and
// recognizes text with the tesseract CLI. Images are recognized directly.
type Tesseract struct {
	cfg    *config.OCRConfig
	runner Runner
}

// NewTesseract creates a tesseract-backed LineSource.
func NewTesseract(cfg *config.OCRConfig) *Tesseract {
	return &Tesseract{cfg: cfg, runner: execRunner{}}
}

// NewTesseractWithRunner creates a Tesseract with a custom command runner
// (for testing).
func NewTesseractWithRunner(cfg *config.OCRConfig, r Runner) *Tesseract {
	return &Tesseract{cfg: cfg, runner: r}
}

// Name implements port.LineSource.
func (t *Tesseract) Name() string { return string(domain.OCRBackendTesseract) }

// Lines implements port.LineSource. PDF documents are rendered to one PNG
// per page before recognition; pages are processed in order so line order
// approximates reading order across the document.
func (t *Tesseract) Lines(ctx context.Context, doc []byte, contentType string) ([]string, error) {
	tmpDir, err := os.MkdirTemp("", "invoscan-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	if contentType == "application/pdf" {
		return t.pdfLines(ctx, tmpDir, doc)
	}
	return t.imageLines(ctx, tmpDir, doc)
}

func (t *Tesseract) pdfLines(ctx context.Context, tmpDir string, doc []byte) ([]string, error) {
	src := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(src, doc, 0o600); err != nil {
		return nil, fmt.Errorf("writing temp pdf: %w", err)
	}

	// pdftoppm -r <dpi> -png doc.pdf <tmp>/page
	prefix := filepath.Join(tmpDir, "page")
	if _, errb, err := t.runner.Run(ctx, t.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", t.cfg.DPI), "-png", src, prefix); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	// pdftoppm names pages page-1.png, page-2.png, ...
	pages, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(pages)
	if t.cfg.MaxPages > 0 && len(pages) > t.cfg.MaxPages {
		pages = pages[:t.cfg.MaxPages]
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm rendered no pages: %w", domain.ErrOCRFailed)
	}

	var lines []string
	for _, page := range pages {
		pageLines, err := t.recognize(ctx, page)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pageLines...)
	}
	return lines, nil
}

func (t *Tesseract) imageLines(ctx context.Context, tmpDir string, doc []byte) ([]string, error) {
	src := filepath.Join(tmpDir, "doc.png")
	if err := os.WriteFile(src, doc, 0o600); err != nil {
		return nil, fmt.Errorf("writing temp image: %w", err)
	}
	return t.recognize(ctx, src)
}

// recognize optionally enhances the page image, then runs
// tesseract <img> stdout -l <lang>.
func (t *Tesseract) recognize(ctx context.Context, imgPath string) ([]string, error) {
	if t.cfg.Enhance {
		if err := enhanceForOCR(imgPath); err != nil {
			// Enhancement is best-effort; fall back to the raw image.
			fmt.Printf("warning: image enhancement failed for %s: %v\n", filepath.Base(imgPath), err)
		}
	}

	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, imgPath, "stdout", "-l", t.cfg.Lang)
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return splitLines(string(out)), nil
}

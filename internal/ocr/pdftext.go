package ocr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"invoscan/internal/domain"
)

// PDFText pulls lines from a PDF's embedded text layer without rasterizing.
// It only works on digitally generated PDFs; scanned PDFs have no text layer
// and need the tesseract backend instead.
type PDFText struct {
	maxPages int
}

func NewPDFText(maxPages int) *PDFText {
	if maxPages <= 0 {
		maxPages = 10
	}
	return &PDFText{maxPages: maxPages}
}

func (p *PDFText) Name() string { return string(domain.OCRBackendPDFText) }

func (p *PDFText) Lines(ctx context.Context, doc []byte, contentType string) ([]string, error) {
	if contentType != "application/pdf" {
		return nil, fmt.Errorf("%w: %s backend only reads PDFs", domain.ErrUnsupportedFileType, p.Name())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening pdf: %v", domain.ErrOCRFailed, err)
	}

	var lines []string
	numPages := r.NumPage()
	if numPages > p.maxPages {
		numPages = p.maxPages
	}
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: reading page %d: %v", domain.ErrOCRFailed, pageNum, err)
		}
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: pdf has no text layer", domain.ErrOCRFailed)
	}
	return lines, nil
}

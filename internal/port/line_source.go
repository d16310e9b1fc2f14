package port

import "context"

// LineSource abstracts the upstream document-to-text collaborator: given a
// document, it yields an ordered sequence of text lines approximating reading
// order (top-to-bottom, left-to-right within OCR accuracy). No bounding-box,
// font, or confidence metadata crosses this boundary; line order is the only
// structural signal the extraction engine consumes.
type LineSource interface {
	// Lines recognizes the document and returns its raw text lines. The
	// slice may be empty; emptiness is a valid result, not an error.
	Lines(ctx context.Context, doc []byte, contentType string) ([]string, error)

	// Name identifies the backend for persistence and diagnostics.
	Name() string
}

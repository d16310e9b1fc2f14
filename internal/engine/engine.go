// Package engine turns an ordered sequence of OCR-recognized text lines from
// a scanned invoice into a structured InvoiceRecord. Fields are located by
// keyword anchors, line proximity, and token-shape matching; there is no
// layout metadata. Every extractor is total over its input: missing, garbled,
// or keyword-absent text yields nil fields, never an error.
package engine

import (
	"strings"

	"invoscan/internal/domain"
)

// Config holds the tunable heuristics of the extraction pipeline. Keyword
// sets are matched as case-insensitive substrings so locale or vendor
// variants can be swapped without touching the scanning logic.
type Config struct {
	// DateWindow bounds the anchor-window date search (anchor line excluded).
	DateWindow int

	// Address capture keyword sets.
	AddressStart  []string
	AddressStop   []string
	StreetWords   []string
	CityWords     []string
	CountryMarker string

	// Item description noise filters.
	NoisePrefixes []string
	NoisePhrases  []string
	Watermarks    []string

	// Layout decides numeric-token roles within an item group.
	Layout ItemLayout
}

// DefaultConfig returns the keyword sets tuned for Australian supplier
// invoices.
func DefaultConfig() Config {
	return Config{
		DateWindow:    6,
		AddressStart:  []string{"level", "suite", "elizabeth"},
		AddressStop:   []string{"customer", "payment", "invoice", "amount", "description", "quantity"},
		StreetWords:   []string{"st", "street", "road", "rd", "ave", "avenue"},
		CityWords:     []string{"melbourne", "sydney", "brisbane", "perth", "adelaide", "hobart"},
		CountryMarker: "australia",
		NoisePrefixes: []string{"item", "description", "quantity", "gst", "amount"},
		NoisePhrases:  []string{"amount aud"},
		Watermarks:    []string{"tixperts-"},
		Layout:        FourTokenLayout{},
	}
}

// Engine is a stateless invoice field extractor. It is safe for concurrent
// use: extraction holds no mutable state between documents.
type Engine struct {
	cfg Config
}

// New creates an Engine, filling any zero-valued Config fields from
// DefaultConfig.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.DateWindow <= 0 {
		cfg.DateWindow = def.DateWindow
	}
	if cfg.AddressStart == nil {
		cfg.AddressStart = def.AddressStart
	}
	if cfg.AddressStop == nil {
		cfg.AddressStop = def.AddressStop
	}
	if cfg.StreetWords == nil {
		cfg.StreetWords = def.StreetWords
	}
	if cfg.CityWords == nil {
		cfg.CityWords = def.CityWords
	}
	if cfg.CountryMarker == "" {
		cfg.CountryMarker = def.CountryMarker
	}
	if cfg.NoisePrefixes == nil {
		cfg.NoisePrefixes = def.NoisePrefixes
	}
	if cfg.NoisePhrases == nil {
		cfg.NoisePhrases = def.NoisePhrases
	}
	if cfg.Watermarks == nil {
		cfg.Watermarks = def.Watermarks
	}
	if cfg.Layout == nil {
		cfg.Layout = def.Layout
	}
	return &Engine{cfg: cfg}
}

// Extract runs the full pipeline over raw OCR lines and assembles the
// InvoiceRecord. Extraction order matters only where noted: items must
// precede totals (per-item GST percent feeds the reconciler), and the due
// date must be resolved before payment terms copy it.
func (e *Engine) Extract(raw []string) *domain.InvoiceRecord {
	lines := Normalize(raw)
	full := strings.Join(lines, " ")

	rec := &domain.InvoiceRecord{Items: []domain.LineItem{}}

	rec.InvoiceDetails.InvoiceNumber = invoiceNumber(full)
	rec.InvoiceDetails.InvoiceDate = e.findDateNear(lines, "invoice date")
	rec.InvoiceDetails.DueDate = dueDate(full)

	rec.Supplier.Name = supplierName(lines)
	rec.Supplier.Address = e.extractAddress(lines)
	rec.Supplier.ABN = extractABN(full)

	rec.Customer.Name = customerName(lines)

	rec.Items = e.extractItems(lines)
	rec.Totals = e.reconcileTotals(lines, full, rec.Items)

	// Payment terms are propagated, never extracted independently.
	rec.PaymentTerms.AmountDue = rec.Totals.Total
	rec.PaymentTerms.DueDate = rec.InvoiceDetails.DueDate

	return rec
}

// containsAny reports whether low (already lowercased) contains any of the
// given substrings.
func containsAny(low string, words []string) bool {
	for _, w := range words {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

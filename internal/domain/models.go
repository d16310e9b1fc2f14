package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InvoiceRecord is the structured result of running the extraction engine
// over a document's OCR lines. Every leaf field is optional: a value that
// could not be located is nil, never an error.
type InvoiceRecord struct {
	InvoiceDetails InvoiceDetails `json:"invoice_details"`
	Supplier       Supplier       `json:"supplier"`
	Customer       Customer       `json:"customer"`
	Items          []LineItem     `json:"items"`
	Totals         Totals         `json:"totals"`
	PaymentTerms   PaymentTerms   `json:"payment_terms"`
}

// InvoiceDetails holds the invoice's own identifying fields.
type InvoiceDetails struct {
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"`
	DueDate       *string `json:"due_date"`
}

// Supplier holds the issuing business's identity.
type Supplier struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	ABN     *string `json:"abn"`
}

// Customer holds the billed party's identity.
type Customer struct {
	Name *string `json:"name"`
}

// LineItem is a single itemized charge. Quantity and price fields keep the
// raw matched strings: OCR-sourced digits may carry artifacts that downstream
// consumers need to see in their original form.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	GSTPercent  *string `json:"gst_percent"`
	LineTotal   string  `json:"line_total"`
}

// Totals holds the reconciled document-level amounts.
type Totals struct {
	Total      *float64 `json:"total"`
	GSTAmount  *float64 `json:"gst_amount"`
	GSTPercent *string  `json:"gst_percent"`
	Subtotal   *float64 `json:"subtotal"`
}

// PaymentTerms is populated by propagation from totals and invoice details,
// never extracted independently.
type PaymentTerms struct {
	AmountDue *float64 `json:"amount_due"`
	DueDate   *string  `json:"due_date"`
}

// Scan represents one processed document: the uploaded file's metadata, the
// OCR lines it produced, and the extraction result.
type Scan struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	FileName     string          `db:"file_name" json:"file_name"`
	OriginalName string          `db:"original_name" json:"original_name"`
	FileType     FileType        `db:"file_type" json:"file_type"`
	FileSize     int64           `db:"file_size" json:"file_size"`
	ContentType  string          `db:"content_type" json:"content_type"`
	S3Bucket     string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string          `db:"s3_key" json:"s3_key"`
	OCRBackend   OCRBackend      `db:"ocr_backend" json:"ocr_backend"`
	Status       ScanStatus      `db:"status" json:"status"`
	RawLines     json.RawMessage `db:"raw_lines" json:"raw_lines,omitempty"`
	Record       json.RawMessage `db:"record" json:"record,omitempty"`
	ScanError    string          `db:"scan_error" json:"scan_error,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Lines decodes the stored raw OCR lines.
func (s *Scan) Lines() ([]string, error) {
	if len(s.RawLines) == 0 {
		return nil, nil
	}
	var lines []string
	if err := json.Unmarshal(s.RawLines, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ExtractedRecord decodes the stored extraction result, or nil if the scan
// has not produced one.
func (s *Scan) ExtractedRecord() (*InvoiceRecord, error) {
	if len(s.Record) == 0 {
		return nil, nil
	}
	var rec InvoiceRecord
	if err := json.Unmarshal(s.Record, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

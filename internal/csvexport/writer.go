package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row. One row per scan; line items are
// summarized as a count since CSV is a flat format.
var Columns = []string{
	"File Name",
	"Scan Status",
	"OCR Backend",
	"Invoice Number",
	"Invoice Date",
	"Due Date",
	"Supplier Name",
	"Supplier ABN",
	"Supplier Address",
	"Customer Name",
	"Subtotal",
	"GST Amount",
	"GST Percent",
	"Total",
	"Amount Due",
	"Line Item Count",
	"Scan Error",
	"Created At",
}

// Writer wraps csv.Writer for exporting scans as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteScans converts a batch of scans to CSV rows and writes them.
func (w *Writer) WriteScans(scans []domain.Scan) error {
	for i := range scans {
		row := ScanToRow(&scans[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// ScanToRow converts a single scan to a row matching Columns. Scans without
// an extracted record keep their metadata columns and leave the invoice
// columns empty.
func ScanToRow(scan *domain.Scan) []string {
	row := make([]string, len(Columns))

	row[0] = scan.OriginalName
	row[1] = string(scan.Status)
	row[2] = string(scan.OCRBackend)
	row[16] = scan.ScanError
	row[17] = scan.CreatedAt.Format(time.RFC3339)

	rec, err := scan.ExtractedRecord()
	if err != nil || rec == nil {
		return row
	}

	row[3] = strValue(rec.InvoiceDetails.InvoiceNumber)
	row[4] = strValue(rec.InvoiceDetails.InvoiceDate)
	row[5] = strValue(rec.InvoiceDetails.DueDate)
	row[6] = strValue(rec.Supplier.Name)
	row[7] = strValue(rec.Supplier.ABN)
	row[8] = strValue(rec.Supplier.Address)
	row[9] = strValue(rec.Customer.Name)
	row[10] = moneyValue(rec.Totals.Subtotal)
	row[11] = moneyValue(rec.Totals.GSTAmount)
	row[12] = strValue(rec.Totals.GSTPercent)
	row[13] = moneyValue(rec.Totals.Total)
	row[14] = moneyValue(rec.PaymentTerms.AmountDue)
	row[15] = strconv.Itoa(len(rec.Items))

	return row
}

func strValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func moneyValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an export name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, dated filename for Content-Disposition.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}

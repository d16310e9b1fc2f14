package csvexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoscan/internal/domain"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func extractedScan(t *testing.T) domain.Scan {
	t.Helper()
	rec := domain.InvoiceRecord{
		InvoiceDetails: domain.InvoiceDetails{
			InvoiceNumber: strp("AB.123-45.INV-6789"),
			InvoiceDate:   strp("02 Jan 2025"),
			DueDate:       strp("16 Jan 2025"),
		},
		Supplier: domain.Supplier{
			Name:    strp("Acme Widgets T/A Widget World"),
			Address: strp("Level 2, 10 Elizabeth Street, Melbourne"),
			ABN:     strp("12345678901"),
		},
		Customer: domain.Customer{Name: strp("John Citizen")},
		Items: []domain.LineItem{
			{Description: "Widget", Quantity: "3", UnitPrice: "25.00", LineTotal: "75.00"},
			{Description: "Gadget", Quantity: "1", UnitPrice: "7.50", LineTotal: "7.50"},
		},
		Totals: domain.Totals{
			Total:     f64p(82.50),
			GSTAmount: f64p(7.50),
			Subtotal:  f64p(75.00),
		},
		PaymentTerms: domain.PaymentTerms{
			AmountDue: f64p(82.50),
			DueDate:   strp("16 Jan 2025"),
		},
	}
	recordJSON, err := json.Marshal(rec)
	require.NoError(t, err)

	return domain.Scan{
		ID:           uuid.New(),
		OriginalName: "acme-invoice.pdf",
		OCRBackend:   domain.OCRBackendTesseract,
		Status:       domain.ScanStatusExtracted,
		Record:       recordJSON,
		CreatedAt:    time.Date(2025, 1, 14, 8, 0, 0, 0, time.UTC),
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, len(Columns))
	assert.Equal(t, "File Name", row[0])
	assert.Equal(t, "Invoice Number", row[3])
	assert.Equal(t, "Created At", row[17])
}

func TestWriteScans_Extracted(t *testing.T) {
	scan := extractedScan(t)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteScans([]domain.Scan{scan}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, len(Columns))
	assert.Equal(t, "acme-invoice.pdf", row[0])
	assert.Equal(t, "extracted", row[1])
	assert.Equal(t, "tesseract", row[2])
	assert.Equal(t, "AB.123-45.INV-6789", row[3])
	assert.Equal(t, "02 Jan 2025", row[4])
	assert.Equal(t, "16 Jan 2025", row[5])
	assert.Equal(t, "Acme Widgets T/A Widget World", row[6])
	assert.Equal(t, "12345678901", row[7])
	assert.Equal(t, "Level 2, 10 Elizabeth Street, Melbourne", row[8])
	assert.Equal(t, "John Citizen", row[9])
	assert.Equal(t, "75.00", row[10])
	assert.Equal(t, "7.50", row[11])
	assert.Equal(t, "", row[12])
	assert.Equal(t, "82.50", row[13])
	assert.Equal(t, "82.50", row[14])
	assert.Equal(t, "2", row[15])
	assert.Equal(t, "", row[16])
	assert.Equal(t, "2025-01-14T08:00:00Z", row[17])
}

func TestWriteScans_Failed(t *testing.T) {
	scan := domain.Scan{
		ID:           uuid.New(),
		OriginalName: "blurry.png",
		OCRBackend:   domain.OCRBackendTesseract,
		Status:       domain.ScanStatusFailed,
		ScanError:    "tesseract: exit status 1",
		CreatedAt:    time.Date(2025, 1, 14, 8, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteScans([]domain.Scan{scan}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "blurry.png", row[0])
	assert.Equal(t, "failed", row[1])
	// Invoice columns stay empty when extraction never produced a record.
	for i := 3; i <= 15; i++ {
		assert.Empty(t, row[i], "column %d should be empty for failed scan", i)
	}
	assert.Equal(t, "tesseract: exit status 1", row[16])
}

func TestWriteScans_MalformedRecordJSON(t *testing.T) {
	scan := domain.Scan{
		ID:           uuid.New(),
		OriginalName: "bad.pdf",
		Status:       domain.ScanStatusExtracted,
		Record:       json.RawMessage(`{invalid json`),
		CreatedAt:    time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteScans([]domain.Scan{scan}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "bad.pdf", row[0])
	for i := 3; i <= 15; i++ {
		assert.Empty(t, row[i], "column %d should be empty for malformed JSON", i)
	}
}

func TestWriteScans_MonetaryFormatting(t *testing.T) {
	rec := domain.InvoiceRecord{
		Totals: domain.Totals{
			Total:     f64p(1000),
			GSTAmount: f64p(0.1),
			Subtotal:  f64p(999.999),
		},
	}
	recordJSON, err := json.Marshal(rec)
	require.NoError(t, err)

	scan := domain.Scan{
		OriginalName: "money.pdf",
		Status:       domain.ScanStatusExtracted,
		Record:       recordJSON,
		CreatedAt:    time.Now(),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteScans([]domain.Scan{scan}))
	w.Flush()

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "1000.00", row[10])
	assert.Equal(t, "0.10", row[11])
	assert.Equal(t, "1000.00", row[13])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Q3 Supplier Invoices", "Q3_Supplier_Invoices"},
		{"special chars", "FY 2024-25 / Q3 (Oct–Dec)", "FY_2024-25_Q3_Oct_Dec"},
		{"hyphens and underscores preserved", "my-export_2025", "my-export_2025"},
		{"consecutive underscores collapsed", "test___export", "test_export"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "scans_"+today+".csv", BuildFilename("scans", "csv"))
	assert.Equal(t, "scans_"+today+".xlsx", BuildFilename("scans", "xlsx"))
}

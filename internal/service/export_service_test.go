package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invoscan/internal/csvexport"
	"invoscan/internal/domain"
	"invoscan/internal/service"
	"invoscan/mocks"
)

func exportScans(t *testing.T) []domain.Scan {
	t.Helper()
	num := "AB.123-45.INV-6789"
	total := 82.50
	gst := "10%"
	rec := domain.InvoiceRecord{
		InvoiceDetails: domain.InvoiceDetails{InvoiceNumber: &num},
		Items: []domain.LineItem{
			{Description: "Widget", Quantity: "3", UnitPrice: "25.00", GSTPercent: &gst, LineTotal: "75.00"},
		},
		Totals: domain.Totals{Total: &total},
	}
	recordJSON, err := json.Marshal(rec)
	require.NoError(t, err)

	return []domain.Scan{
		{
			ID:           uuid.New(),
			OriginalName: "one.pdf",
			OCRBackend:   domain.OCRBackendTesseract,
			Status:       domain.ScanStatusExtracted,
			Record:       recordJSON,
			CreatedAt:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           uuid.New(),
			OriginalName: "two.png",
			OCRBackend:   domain.OCRBackendTesseract,
			Status:       domain.ScanStatusFailed,
			ScanError:    "tesseract: exit status 1",
			CreatedAt:    time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportService_ExportCSV(t *testing.T) {
	repo := new(mocks.MockScanRepo)
	svc := service.NewExportService(repo, new(mocks.MockEmailSender))

	repo.On("ListAll", mock.Anything).Return(exportScans(t), nil)

	var buf bytes.Buffer
	rows, err := svc.ExportCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, csvexport.BOM))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, csvexport.BOM)))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows
	assert.Equal(t, "File Name", records[0][0])
	assert.Equal(t, "one.pdf", records[1][0])
	assert.Equal(t, "AB.123-45.INV-6789", records[1][3])
	assert.Equal(t, "failed", records[2][1])
}

func TestExportService_ExportCSV_RepoError(t *testing.T) {
	repo := new(mocks.MockScanRepo)
	svc := service.NewExportService(repo, new(mocks.MockEmailSender))

	repo.On("ListAll", mock.Anything).Return(nil, assert.AnError)

	var buf bytes.Buffer
	_, err := svc.ExportCSV(context.Background(), &buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestExportService_ExportXLSX(t *testing.T) {
	repo := new(mocks.MockScanRepo)
	svc := service.NewExportService(repo, new(mocks.MockEmailSender))

	repo.On("ListAll", mock.Anything).Return(exportScans(t), nil)

	buf, rows, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetRows("Scans")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "File Name", got[0][0])
	assert.Equal(t, "one.pdf", got[1][0])
	assert.Equal(t, "82.50", got[1][13])

	items, err := f.GetRows("Line Items")
	require.NoError(t, err)
	require.Len(t, items, 2) // header + one item from the extracted scan
	assert.Equal(t, "Widget", items[1][2])
	assert.Equal(t, "75.00", items[1][6])
}

func TestExportService_EmailCSV(t *testing.T) {
	repo := new(mocks.MockScanRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewExportService(repo, sender)

	repo.On("ListAll", mock.Anything).Return(exportScans(t), nil)
	sender.On("SendExport", mock.Anything, "finance@example.com",
		"Invoice scan export (2 scans)", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.EmailCSV(context.Background(), "finance@example.com"))
	sender.AssertExpectations(t)
}

func TestExportService_EmailCSV_SendFailure(t *testing.T) {
	repo := new(mocks.MockScanRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewExportService(repo, sender)

	repo.On("ListAll", mock.Anything).Return(exportScans(t), nil)
	sender.On("SendExport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	err := svc.EmailCSV(context.Background(), "finance@example.com")
	assert.Error(t, err)
}

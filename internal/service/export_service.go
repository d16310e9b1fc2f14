package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"invoscan/internal/csvexport"
	"invoscan/internal/domain"
	"invoscan/internal/port"
)

// ExportService flattens stored scans into spreadsheet formats.
type ExportService interface {
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
	ExportXLSX(ctx context.Context) (*bytes.Buffer, int, error)
	EmailCSV(ctx context.Context, toEmail string) error
}

type exportService struct {
	repo   port.ScanRepository
	sender port.EmailSender
}

// NewExportService creates a new ExportService implementation.
func NewExportService(repo port.ScanRepository, sender port.EmailSender) ExportService {
	return &exportService{repo: repo, sender: sender}
}

// ExportCSV streams every scan as a CSV document, BOM first so Excel opens
// it with the right encoding. Returns the number of data rows written.
func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	scans, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing scans: %w", err)
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return 0, fmt.Errorf("writing BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteScans(scans); err != nil {
		return 0, fmt.Errorf("writing rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}
	return len(scans), nil
}

// ExportXLSX builds a workbook with a scan sheet matching the CSV columns
// and a second sheet listing every extracted line item.
func (s *exportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, int, error) {
	scans, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("listing scans: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Scans"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, 0, fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(csvexport.Columns))
	for i, col := range csvexport.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, 0, fmt.Errorf("writing header row: %w", err)
	}

	for i := range scans {
		row := csvexport.ScanToRow(&scans[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, 0, fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, 0, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := writeItemsSheet(f, scans); err != nil {
		return nil, 0, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf, len(scans), nil
}

func writeItemsSheet(f *excelize.File, scans []domain.Scan) error {
	const sheet = "Line Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating items sheet: %w", err)
	}

	header := []interface{}{
		"File Name", "Invoice Number", "Description", "Quantity",
		"Unit Price", "GST Percent", "Line Total",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing items header: %w", err)
	}

	rowNum := 2
	for i := range scans {
		rec, err := scans[i].ExtractedRecord()
		if err != nil || rec == nil {
			continue
		}
		invoiceNum := ""
		if rec.InvoiceDetails.InvoiceNumber != nil {
			invoiceNum = *rec.InvoiceDetails.InvoiceNumber
		}
		for _, item := range rec.Items {
			gst := ""
			if item.GSTPercent != nil {
				gst = *item.GSTPercent
			}
			row := []interface{}{
				scans[i].OriginalName, invoiceNum, item.Description,
				item.Quantity, item.UnitPrice, gst, item.LineTotal,
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return fmt.Errorf("computing items cell name: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("writing items row %d: %w", rowNum, err)
			}
			rowNum++
		}
	}
	return nil
}

// EmailCSV builds the CSV export and mails it inline. Exports are small
// enough for a text body; anything bigger should use the download endpoints.
func (s *exportService) EmailCSV(ctx context.Context, toEmail string) error {
	var buf bytes.Buffer
	rows, err := s.ExportCSV(ctx, &buf)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Invoice scan export (%d scans)", rows)
	body := fmt.Sprintf("Attached below are %d exported scans.\n\n%s", rows, buf.String())
	if err := s.sender.SendExport(ctx, toEmail, subject, body); err != nil {
		return fmt.Errorf("sending export email: %w", err)
	}

	log.Printf("exportService.EmailCSV: sent %d scans to %s", rows, toEmail)
	return nil
}

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoscan/internal/engine"
)

func TestNormalize(t *testing.T) {
	got := engine.Normalize([]string{"  a  ", "", "   ", "b", "\tc\n"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestExtract_FullScenario(t *testing.T) {
	e := engine.New(engine.DefaultConfig())
	rec := e.Extract([]string{
		"Invoice Date",
		"03 June 2024",
		"Unit Price",
		"Widget A",
		"2",
		"10.00",
		"10%",
		"20.00",
		"Customer",
		"Jane Doe",
	})

	require.NotNil(t, rec.InvoiceDetails.InvoiceDate)
	assert.Equal(t, "03 Jun 2024", *rec.InvoiceDetails.InvoiceDate)

	require.Len(t, rec.Items, 1)
	assert.Equal(t, "Widget A", rec.Items[0].Description)
	assert.Equal(t, "2", rec.Items[0].Quantity)
	assert.Equal(t, "10.00", rec.Items[0].UnitPrice)
	require.NotNil(t, rec.Items[0].GSTPercent)
	assert.Equal(t, "10%", *rec.Items[0].GSTPercent)
	assert.Equal(t, "20.00", rec.Items[0].LineTotal)

	require.NotNil(t, rec.Customer.Name)
	assert.Equal(t, "Jane Doe", *rec.Customer.Name)
}

func TestExtract_Identifiers(t *testing.T) {
	e := engine.New(engine.DefaultConfig())

	t.Run("abn_digits_concatenated", func(t *testing.T) {
		rec := e.Extract([]string{"ABN 12 345 678 901"})
		require.NotNil(t, rec.Supplier.ABN)
		assert.Equal(t, "12345678901", *rec.Supplier.ABN)
	})

	t.Run("abn_with_colon", func(t *testing.T) {
		rec := e.Extract([]string{"ABN: 12 345 678 901"})
		require.NotNil(t, rec.Supplier.ABN)
		assert.Equal(t, "12345678901", *rec.Supplier.ABN)
	})

	t.Run("abn_absent", func(t *testing.T) {
		rec := e.Extract([]string{"no identifier here"})
		assert.Nil(t, rec.Supplier.ABN)
	})

	t.Run("invoice_number", func(t *testing.T) {
		rec := e.Extract([]string{"ref AB.123-45.INV-6789 issued"})
		require.NotNil(t, rec.InvoiceDetails.InvoiceNumber)
		assert.Equal(t, "AB.123-45.INV-6789", *rec.InvoiceDetails.InvoiceNumber)
	})

	t.Run("invoice_number_spans_lines", func(t *testing.T) {
		// The pattern is matched over the concatenated text; a token split by
		// OCR across lines does not reassemble.
		rec := e.Extract([]string{"AB.123-45.", "INV-6789"})
		assert.Nil(t, rec.InvoiceDetails.InvoiceNumber)
	})

	t.Run("due_date_literal", func(t *testing.T) {
		rec := e.Extract([]string{"Due Date: 5 July 2024"})
		require.NotNil(t, rec.InvoiceDetails.DueDate)
		assert.Equal(t, "5 July 2024", *rec.InvoiceDetails.DueDate)
		// Payment terms copy the due date verbatim.
		require.NotNil(t, rec.PaymentTerms.DueDate)
		assert.Equal(t, "5 July 2024", *rec.PaymentTerms.DueDate)
	})

	t.Run("supplier_pty_line", func(t *testing.T) {
		rec := e.Extract([]string{"header", "Acme Holdings Pty Ltd TIA Acme Events"})
		require.NotNil(t, rec.Supplier.Name)
		assert.Equal(t, "Acme Holdings Pty Ltd T/A Acme Events", *rec.Supplier.Name)
	})

	t.Run("supplier_absent", func(t *testing.T) {
		rec := e.Extract([]string{"no company marker"})
		assert.Nil(t, rec.Supplier.Name)
	})

	t.Run("customer_on_last_line", func(t *testing.T) {
		rec := e.Extract([]string{"Customer"})
		assert.Nil(t, rec.Customer.Name)
	})
}

func TestExtract_EmptyInput(t *testing.T) {
	e := engine.New(engine.DefaultConfig())

	for name, lines := range map[string][]string{
		"nil":        nil,
		"empty":      {},
		"whitespace": {"   ", "\t", ""},
	} {
		t.Run(name, func(t *testing.T) {
			rec := e.Extract(lines)
			require.NotNil(t, rec)
			assert.Nil(t, rec.InvoiceDetails.InvoiceNumber)
			assert.Nil(t, rec.InvoiceDetails.InvoiceDate)
			assert.Nil(t, rec.InvoiceDetails.DueDate)
			assert.Nil(t, rec.Supplier.Name)
			assert.Nil(t, rec.Supplier.Address)
			assert.Nil(t, rec.Supplier.ABN)
			assert.Nil(t, rec.Customer.Name)
			assert.Empty(t, rec.Items)
			assert.Nil(t, rec.Totals.Total)
			assert.Nil(t, rec.Totals.GSTAmount)
			assert.Nil(t, rec.Totals.Subtotal)
			assert.Nil(t, rec.PaymentTerms.AmountDue)
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := engine.New(engine.DefaultConfig())
	lines := []string{
		"Acme Pty Ltd", "ABN 12 345 678 901",
		"Level 3", "120 Collins Street", "Melbourne", "Australia",
		"Invoice Date", "03 June 2024",
		"Unit Price", "Widget A", "2", "10.00", "10%", "20.00",
		"Customer", "Jane Doe",
		"INCLUDES GST 1.82", "TOTAL", "20.00",
	}
	first := e.Extract(lines)
	second := e.Extract(lines)
	assert.Equal(t, first, second)
}

func TestExtract_GarbledInputNeverPanics(t *testing.T) {
	e := engine.New(engine.DefaultConfig())
	rec := e.Extract([]string{
		"Invoice", "Date", "%%##@@", "ABN", "pty", "customer",
		"unit price", "1", "2", "3", "includes gst", "....", "-",
	})
	require.NotNil(t, rec)
}

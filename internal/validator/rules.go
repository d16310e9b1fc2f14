package validator

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"invoscan/internal/domain"
	"invoscan/internal/engine"
)

var (
	abnPattern           = regexp.MustCompile(`^\d{11}$`)
	invoiceNumberPattern = regexp.MustCompile(`^[A-Z]{2}\.\d{3}-\d{2}\.INV-\d{4}$`)
)

// moneyTolerance absorbs rounding differences between OCR-sourced amounts.
const moneyTolerance = 0.02

func builtinRules() []Validator {
	return []Validator{
		&rule{key: "format.abn", severity: SeverityError, run: checkABN},
		&rule{key: "format.invoice_number", severity: SeverityWarning, run: checkInvoiceNumber},
		&rule{key: "format.dates", severity: SeverityError, run: checkDates},
		&rule{key: "math.subtotal", severity: SeverityError, run: checkSubtotal},
		&rule{key: "math.line_items", severity: SeverityWarning, run: checkLineItems},
		&rule{key: "required.fields", severity: SeverityWarning, run: checkRequired},
	}
}

// rule adapts a plain check function to the Validator interface.
type rule struct {
	key      string
	severity Severity
	run      func(rec *domain.InvoiceRecord) []Result
}

func (r *rule) RuleKey() string    { return r.key }
func (r *rule) Severity() Severity { return r.severity }
func (r *rule) Validate(rec *domain.InvoiceRecord) []Result {
	return r.run(rec)
}

func checkABN(rec *domain.InvoiceRecord) []Result {
	if rec.Supplier.ABN == nil {
		return []Result{skipped("supplier.abn", "11-digit ABN")}
	}
	abn := *rec.Supplier.ABN
	passed := abnPattern.MatchString(abn)
	msg := "supplier.abn is 11 digits"
	if !passed {
		msg = "supplier.abn is not 11 digits"
	}
	return []Result{{
		Passed: passed, FieldPath: "supplier.abn",
		Expected: "11-digit ABN", Actual: abn, Message: msg,
	}}
}

func checkInvoiceNumber(rec *domain.InvoiceRecord) []Result {
	if rec.InvoiceDetails.InvoiceNumber == nil {
		return []Result{skipped("invoice_details.invoice_number", "AA.000-00.INV-0000")}
	}
	num := *rec.InvoiceDetails.InvoiceNumber
	passed := invoiceNumberPattern.MatchString(num)
	msg := "invoice_details.invoice_number matches expected shape"
	if !passed {
		msg = "invoice_details.invoice_number does not match expected shape"
	}
	return []Result{{
		Passed: passed, FieldPath: "invoice_details.invoice_number",
		Expected: "AA.000-00.INV-0000", Actual: num, Message: msg,
	}}
}

func checkDates(rec *domain.InvoiceRecord) []Result {
	var results []Result
	for path, value := range map[string]*string{
		"invoice_details.invoice_date": rec.InvoiceDetails.InvoiceDate,
		"invoice_details.due_date":     rec.InvoiceDetails.DueDate,
		"payment_terms.due_date":       rec.PaymentTerms.DueDate,
	} {
		if value == nil {
			results = append(results, skipped(path, "parseable date"))
			continue
		}
		_, ok := engine.ParseDate(*value)
		msg := path + " is a parseable date"
		if !ok {
			msg = path + " is not a parseable date"
		}
		results = append(results, Result{
			Passed: ok, FieldPath: path,
			Expected: "parseable date", Actual: *value, Message: msg,
		})
	}
	// Map iteration order varies; keep output deterministic.
	sortByFieldPath(results)
	return results
}

func checkSubtotal(rec *domain.InvoiceRecord) []Result {
	t := rec.Totals
	if t.Total == nil || t.GSTAmount == nil || t.Subtotal == nil {
		return []Result{skipped("totals.subtotal", "total - gst_amount")}
	}
	want := *t.Total - *t.GSTAmount
	passed := math.Abs(*t.Subtotal-want) <= moneyTolerance
	msg := "totals.subtotal reconciles with total - gst_amount"
	if !passed {
		msg = "totals.subtotal does not reconcile with total - gst_amount"
	}
	return []Result{{
		Passed: passed, FieldPath: "totals.subtotal",
		Expected: fmt.Sprintf("%.2f", want),
		Actual:   fmt.Sprintf("%.2f", *t.Subtotal),
		Message:  msg,
	}}
}

func checkLineItems(rec *domain.InvoiceRecord) []Result {
	var results []Result
	for i, item := range rec.Items {
		path := fmt.Sprintf("items[%d].line_total", i)
		qty, qok := parseAmount(item.Quantity)
		price, pok := parseAmount(item.UnitPrice)
		total, tok := parseAmount(item.LineTotal)
		if !qok || !pok || !tok {
			results = append(results, skipped(path, "quantity * unit_price"))
			continue
		}
		want := qty * price
		passed := math.Abs(total-want) <= moneyTolerance
		msg := fmt.Sprintf("items[%d] line total matches quantity * unit_price", i)
		if !passed {
			msg = fmt.Sprintf("items[%d] line total differs from quantity * unit_price", i)
		}
		results = append(results, Result{
			Passed: passed, FieldPath: path,
			Expected: fmt.Sprintf("%.2f", want),
			Actual:   fmt.Sprintf("%.2f", total),
			Message:  msg,
		})
	}
	return results
}

func checkRequired(rec *domain.InvoiceRecord) []Result {
	checks := []struct {
		path    string
		present bool
	}{
		{"invoice_details.invoice_number", rec.InvoiceDetails.InvoiceNumber != nil},
		{"supplier.name", rec.Supplier.Name != nil},
		{"supplier.abn", rec.Supplier.ABN != nil},
		{"totals.total", rec.Totals.Total != nil},
	}
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		msg := c.path + " is present"
		if !c.present {
			msg = c.path + " was not extracted"
		}
		results = append(results, Result{
			Passed: c.present, FieldPath: c.path,
			Expected: "non-empty", Actual: presence(c.present), Message: msg,
		})
	}
	return results
}

func skipped(fieldPath, expected string) Result {
	return Result{
		Passed: true, FieldPath: fieldPath,
		Expected: expected, Actual: "",
		Message: fieldPath + " is empty, skipping check",
	}
}

func parseAmount(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func presence(present bool) string {
	if present {
		return "set"
	}
	return "missing"
}

func sortByFieldPath(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].FieldPath < results[j].FieldPath
	})
}

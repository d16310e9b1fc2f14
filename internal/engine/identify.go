package engine

import (
	"regexp"
	"strings"
)

var (
	// Two uppercase letters, dot, 3 digits, dash, 2 digits, dot, INV-, 4 digits.
	reInvoiceNumber = regexp.MustCompile(`[A-Z]{2}\.\d{3}-\d{2}\.INV-\d{4}`)

	// ABN keyword followed by an 11-20 char span of digits and spaces. No
	// checksum: OCR noise makes strict ABN validation unreliable, so the
	// contract is a plausible digit span, not a valid ABN.
	reABN = regexp.MustCompile(`(?i)ABN[\s:]*([\d ]{11,20})`)

	reDueDate = regexp.MustCompile(`Due Date[:\s]+(\d{1,2} \w+ \d{4})`)
)

// invoiceNumber finds the first invoice-number-shaped token in the full text.
func invoiceNumber(full string) *string {
	if m := reInvoiceNumber.FindString(full); m != "" {
		return &m
	}
	return nil
}

// extractABN returns the digits of the first ABN span, spaces stripped.
func extractABN(full string) *string {
	m := reABN.FindStringSubmatch(full)
	if m == nil {
		return nil
	}
	abn := strings.ReplaceAll(m[1], " ", "")
	return &abn
}

// dueDate finds a literal "Due Date: D Month YYYY" token in the full text.
func dueDate(full string) *string {
	m := reDueDate.FindStringSubmatch(full)
	if m == nil {
		return nil
	}
	return &m[1]
}

// supplierName returns the first line containing "pty". "TIA" is a known OCR
// misread of the "T/A" (trading-as) abbreviation and is corrected in place.
func supplierName(lines []string) *string {
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "pty") {
			name := strings.ReplaceAll(line, "TIA", "T/A")
			return &name
		}
	}
	return nil
}

// customerName returns the line immediately following the first line
// containing "customer", or nil if no such line exists.
func customerName(lines []string) *string {
	for idx, line := range lines {
		if strings.Contains(strings.ToLower(line), "customer") && idx+1 < len(lines) {
			return &lines[idx+1]
		}
	}
	return nil
}

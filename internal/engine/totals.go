package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"invoscan/internal/domain"
)

var (
	reGSTInline = regexp.MustCompile(`(?i)INCLUDES GST[^\d]*(\d+\.\d+)`)
	reDecimal   = regexp.MustCompile(`\d+\.\d+`)
	reMoneyAny  = regexp.MustCompile(`\b\d+\.\d{2}\b`)
)

// gstLookahead bounds the line scan after an "includes gst" marker.
const gstLookahead = 5

// reconcileTotals derives document-level amounts from the extracted items and
// a global numeric scan of the full text.
func (e *Engine) reconcileTotals(lines []string, full string, items []domain.LineItem) domain.Totals {
	var t domain.Totals

	t.GSTAmount = gstAmount(lines, full)

	// The grand total appears after all itemized figures, so the last
	// money-shaped token in reading order wins.
	if all := reMoneyAny.FindAllString(full, -1); len(all) > 0 {
		if v, err := strconv.ParseFloat(all[len(all)-1], 64); err == nil {
			t.Total = &v
		}
	}

	for i := range items {
		if items[i].GSTPercent != nil {
			t.GSTPercent = items[i].GSTPercent
			break
		}
	}

	// Subtotal is derived only when both operands are present, never
	// estimated from the GST percent alone.
	if t.Total != nil && t.GSTAmount != nil {
		sub := math.Round((*t.Total-*t.GSTAmount)*100) / 100
		t.Subtotal = &sub
	}

	return t
}

// gstAmount first tries an inline "INCLUDES GST 7.73" match over the full
// text, then falls back to scanning a few lines from an "includes gst"
// marker for the first decimal-shaped token.
func gstAmount(lines []string, full string) *float64 {
	if m := reGSTInline.FindStringSubmatch(full); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &v
		}
	}
	for idx, line := range lines {
		if !strings.Contains(strings.ToLower(line), "includes gst") {
			continue
		}
		end := idx + gstLookahead
		if end > len(lines) {
			end = len(lines)
		}
		for _, next := range lines[idx:end] {
			if m := reDecimal.FindString(next); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil {
					return &v
				}
			}
		}
		break
	}
	return nil
}

package engine

import (
	"strings"

	"invoscan/internal/domain"
)

// ItemLayout assigns column roles to the numeric tokens of one grouped table
// row. Isolating the role assignment lets alternate invoice layouts (for
// example qty/price/total with no GST column) plug in without touching the
// segmenter's control flow.
type ItemLayout interface {
	// TokensPerItem is the numeric-token count that closes a group.
	TokensPerItem() int
	// Assign fills the numeric fields of a LineItem from exactly
	// TokensPerItem tokens, in order of appearance.
	Assign(numeric []string) domain.LineItem
}

// FourTokenLayout implements the four-numeric-token invoice line convention:
// quantity, unit price, GST percent, line total. The third token is treated
// as a GST percent only when it is percent-shaped; otherwise the column is
// absent. This is a hard assumption about table layout and is the known
// fragility of the segmenter.
type FourTokenLayout struct{}

// TokensPerItem returns 4.
func (FourTokenLayout) TokensPerItem() int { return 4 }

// Assign maps tokens positionally onto qty/price/gst%/total.
func (FourTokenLayout) Assign(numeric []string) domain.LineItem {
	item := domain.LineItem{
		Quantity:  numeric[0],
		UnitPrice: numeric[1],
		LineTotal: numeric[3],
	}
	if IsPercentToken(numeric[2]) {
		gst := numeric[2]
		item.GSTPercent = &gst
	}
	return item
}

// isItemHeader reports whether a line marks the start of the item table.
func isItemHeader(low string) bool {
	return strings.Contains(low, "unit price") ||
		(strings.Contains(low, "description") && strings.Contains(low, "quantity"))
}

// collectBucket gathers the lines between the item-table header and the
// "customer" terminator (both exclusive). Header-shaped lines are always
// skipped, including repeats after the first.
func collectBucket(lines []string) []string {
	var bucket []string
	afterHeader := false
	for _, line := range lines {
		low := strings.ToLower(line)
		if isItemHeader(low) {
			afterHeader = true
			continue
		}
		if !afterHeader {
			continue
		}
		if strings.Contains(low, "customer") {
			break
		}
		bucket = append(bucket, line)
	}
	return bucket
}

// extractItems groups bucket lines into LineItems. Lines accumulate into a
// group until it holds TokensPerItem numeric tokens; the group then emits one
// item and resets. A trailing group short of the threshold is discarded, so a
// bucket with fewer numeric tokens than one full row yields no items. Groups
// never drop lines before emission; an incompletely OCR'd row merges into
// the next group rather than vanishing, an accepted best-effort limitation.
func (e *Engine) extractItems(lines []string) []domain.LineItem {
	bucket := collectBucket(lines)
	need := e.cfg.Layout.TokensPerItem()

	items := []domain.LineItem{}
	var group []string
	for _, line := range bucket {
		group = append(group, line)

		var numeric []string
		for _, g := range group {
			if IsNumericToken(g) {
				numeric = append(numeric, g)
			}
		}
		if len(numeric) < need {
			continue
		}

		item := e.cfg.Layout.Assign(numeric[:need])
		item.Description = e.describe(group)
		items = append(items, item)
		group = nil
	}
	return items
}

// describe reconstructs an item description by exclusion: the group's
// non-numeric lines, minus header/noise/watermark lines, joined with spaces.
func (e *Engine) describe(group []string) string {
	var parts []string
	for _, line := range group {
		if IsNumericToken(line) {
			continue
		}
		if e.isNoise(strings.ToLower(line)) {
			continue
		}
		parts = append(parts, line)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (e *Engine) isNoise(low string) bool {
	for _, p := range e.cfg.NoisePrefixes {
		if strings.HasPrefix(low, p) {
			return true
		}
	}
	for _, p := range e.cfg.NoisePhrases {
		if strings.Contains(low, p) {
			return true
		}
	}
	for _, w := range e.cfg.Watermarks {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

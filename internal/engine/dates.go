package engine

import (
	"strings"
	"time"
)

// OutputDateLayout is the canonical rendering for all extracted dates.
const OutputDateLayout = "02 Jan 2006"

// dateLayouts are tried in order. Numeric forms are day-first only,
// consistent with Australian formatting; bare numbers and money tokens never
// match any layout, so they cannot be misread as dates.
var dateLayouts = []string{
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"02-01-2006",
	"2006-01-02",
	"2 January, 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate resolves a line as a date using the day-first layout table.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// findDateNear locates the first line containing anchor (case-insensitive)
// and scans the following DateWindow-1 lines for the first parseable date.
// If no anchor exists or nothing in the window resolves, the whole sequence
// is scanned instead. Returns nil when no line parses as a date.
func (e *Engine) findDateNear(lines []string, anchor string) *string {
	anchor = strings.ToLower(anchor)
	for idx, line := range lines {
		if !strings.Contains(strings.ToLower(line), anchor) {
			continue
		}
		for i := idx + 1; i < idx+e.cfg.DateWindow && i < len(lines); i++ {
			if t, ok := ParseDate(lines[i]); ok {
				out := t.Format(OutputDateLayout)
				return &out
			}
		}
		break
	}
	// Global fallback: first parseable line anywhere.
	for _, line := range lines {
		if t, ok := ParseDate(line); ok {
			out := t.Format(OutputDateLayout)
			return &out
		}
	}
	return nil
}

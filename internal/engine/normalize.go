package engine

import "strings"

// Normalize trims every line and drops empty ones, preserving order. The
// result is the only input shape the rest of the pipeline sees.
func Normalize(raw []string) []string {
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

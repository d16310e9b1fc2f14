package engine

import "strings"

// extractAddress captures the supplier address block with a two-state line
// scanner. Capture starts on a line containing any start keyword. A stop
// keyword ends the capture without appending its line; the country marker
// ends it after appending. While capturing, only lines carrying an address
// signal (start keyword, street suffix, known city, or the country marker)
// are buffered: OCR scatters address fragments among other header text, and
// keyword proximity is the only robust signal without coordinates.
func (e *Engine) extractAddress(lines []string) *string {
	var captured []string
	capturing := false

	for _, line := range lines {
		low := strings.ToLower(line)

		if !capturing {
			if !containsAny(low, e.cfg.AddressStart) {
				continue
			}
			capturing = true
		}

		if containsAny(low, e.cfg.AddressStop) {
			break
		}

		if containsAny(low, e.cfg.AddressStart) ||
			containsAny(low, e.cfg.StreetWords) ||
			containsAny(low, e.cfg.CityWords) ||
			strings.Contains(low, e.cfg.CountryMarker) {
			captured = append(captured, line)
		}

		if strings.Contains(low, e.cfg.CountryMarker) {
			break
		}
	}

	addr := strings.Join(captured, ", ")
	addr = strings.ReplaceAll(addr, "  ", " ")
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	return &addr
}

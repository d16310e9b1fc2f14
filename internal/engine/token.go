package engine

import (
	"regexp"
	"strings"
)

// TokenClass tags a line's content shape for item segmentation.
type TokenClass int

const (
	TokenUnclassified TokenClass = iota
	TokenMoney
	TokenQuantity
	TokenPercent
)

var (
	reQuantity = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	reMoney    = regexp.MustCompile(`^\d+\.\d{2}$`)
	rePercent  = regexp.MustCompile(`^\d+%$`)
)

// ClassifyToken classifies a single line. Money is checked before Quantity:
// its pattern is a strict subset (exactly two decimals), so the stricter
// shape wins.
func ClassifyToken(line string) TokenClass {
	s := strings.TrimSpace(line)
	switch {
	case reMoney.MatchString(s):
		return TokenMoney
	case reQuantity.MatchString(s):
		return TokenQuantity
	case rePercent.MatchString(s):
		return TokenPercent
	default:
		return TokenUnclassified
	}
}

// IsNumericToken reports whether the whole trimmed line matches any of the
// Quantity, Money, or Percent shapes.
func IsNumericToken(line string) bool {
	return ClassifyToken(line) != TokenUnclassified
}

// IsPercentToken reports whether the line is an integer followed by '%'.
func IsPercentToken(line string) bool {
	return rePercent.MatchString(strings.TrimSpace(line))
}

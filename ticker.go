package folio

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTickerLength = 20

var tickerRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]*$`)

// NormalizeTicker returns the canonical form of a ticker: trimmed and uppercase.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ValidateTicker checks that ticker is a normalized symbol made of letters, digits, dots and hyphens.
//
// Exchange suffixes like "BRK-B" or "SAP.DE" are valid.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("%w: empty ticker", ErrInvalidInput)
	}
	if len(ticker) > maxTickerLength {
		return fmt.Errorf("%w: ticker %q is longer than %d characters", ErrInvalidInput, ticker, maxTickerLength)
	}
	if !tickerRegex.MatchString(ticker) {
		return fmt.Errorf("%w: ticker %q must be uppercase letters, digits, dots or hyphens", ErrInvalidInput, ticker)
	}
	return nil
}

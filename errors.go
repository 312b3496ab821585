package folio

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test for them.
var (
	// ErrInvalidInput reports a malformed position: missing column, bad date, bad quantity or ticker syntax.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownTicker reports a well formed ticker the market data provider knows nothing about.
	ErrUnknownTicker = errors.New("unknown ticker")
	// ErrPriceUnavailable reports that no price could be obtained for a ticker at valuation time.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// InputError locates an ingestion failure in the input table.
type InputError struct {
	Line   int    // 1-based line in the file, the header is line 1.
	Column string // column name, empty when the failure is about the whole line.
	Value  string // offending value.
	Err    error
}

func (e *InputError) Error() string {
	switch {
	case e.Column == "":
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Value == "":
		return fmt.Sprintf("line %d: column %q: %v", e.Line, e.Column, e.Err)
	default:
		return fmt.Sprintf("line %d: column %q: %q: %v", e.Line, e.Column, e.Value, e.Err)
	}
}

// Unwrap makes every InputError match ErrInvalidInput as well as its cause.
func (e *InputError) Unwrap() []error { return []error{ErrInvalidInput, e.Err} }

// PriceError reports why a ticker could not be priced. It always matches ErrPriceUnavailable.
type PriceError struct {
	Ticker string
	Err    error // cause, nil when the provider simply had no data.
}

func (e *PriceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v: no market data", e.Ticker, ErrPriceUnavailable)
	}
	return fmt.Sprintf("%s: %v: %v", e.Ticker, ErrPriceUnavailable, e.Err)
}

func (e *PriceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPriceUnavailable}
	}
	return []error{ErrPriceUnavailable, e.Err}
}

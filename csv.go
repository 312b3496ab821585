package folio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// Positions CSV column names.
const (
	ColumnTicker   = "ticker"
	ColumnDate     = "date"
	ColumnDatetime = "datetime"
	ColumnQuantity = "quantity"
)

var (
	errMissingColumn = errors.New("missing required column")
	errEmpty         = errors.New("value is required")
	errNotANumber    = errors.New("not a number")
	errNegative      = errors.New("quantity must not be negative")
	errFractional    = errors.New("quantity must be a whole number of shares")
)

// columns maps the required columns to their index in a header.
type columns struct {
	ticker, date, quantity int
}

// parseHeader locates the required columns. Names are case insensitive and trimmed; "date" and
// "datetime" are aliases, and any name starting with "date" such as "date (yyyy-mm-dd)" is
// accepted as the date column. The first match wins.
func parseHeader(header []string) (columns, error) {
	c := columns{-1, -1, -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch {
		case name == ColumnTicker && c.ticker < 0:
			c.ticker = i
		case name == ColumnQuantity && c.quantity < 0:
			c.quantity = i
		case strings.HasPrefix(name, ColumnDate) && c.date < 0:
			c.date = i
		}
	}

	var errs []error
	if c.ticker < 0 {
		errs = append(errs, &InputError{Line: 1, Column: ColumnTicker, Err: errMissingColumn})
	}
	if c.date < 0 {
		errs = append(errs, &InputError{Line: 1, Column: ColumnDate + " or " + ColumnDatetime, Err: errMissingColumn})
	}
	if c.quantity < 0 {
		errs = append(errs, &InputError{Line: 1, Column: ColumnQuantity, Err: errMissingColumn})
	}
	return c, errors.Join(errs...)
}

// parseQuantity reads a whole, non negative number of shares. Empty and NaN values are errors,
// never zeroes.
func parseQuantity(s string) (Quantity, error) {
	if s == "" || strings.EqualFold(s, "nan") {
		return Quantity{}, errEmpty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errNotANumber
	}
	q := Q(d.Truncate(0))
	switch {
	case d.IsNegative():
		return Quantity{}, errNegative
	case !Q(d).IsWhole():
		return Quantity{}, errFractional
	}
	return q, nil
}

// parsePurchaseDate reads an ISO calendar date. A trailing time of day, as written by
// spreadsheet tools, is ignored.
func parsePurchaseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, errEmpty
	}
	day, _, _ := strings.Cut(s, " ")
	return date.Parse(day)
}

// DecodePositions reads positions from a CSV table with the columns ticker, date (or datetime)
// and quantity. Extra columns are ignored and blank rows skipped.
//
// The batch is all or nothing: if any row is invalid, no portfolio is returned and the error
// joins an *InputError for every problem found.
func DecodePositions(r io.Reader) (*Portfolio, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &InputError{Line: 1, Err: errors.New("empty file, a header is required")}
	}
	if err != nil {
		return nil, &InputError{Line: 1, Err: err}
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	p := NewPortfolio()
	var errs []error
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			line := 0
			if errors.As(err, &perr) {
				line = perr.Line
			}
			errs = append(errs, &InputError{Line: line, Err: err})
			break
		}
		line, _ := reader.FieldPos(0)

		field := func(i int) string {
			if i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		rawTicker, rawDate, rawQty := field(cols.ticker), field(cols.date), field(cols.quantity)
		if rawTicker == "" && rawDate == "" && rawQty == "" {
			continue // blank row, as left by table editors.
		}

		rowErrs := len(errs)
		ticker := NormalizeTicker(rawTicker)
		if rawTicker == "" {
			errs = append(errs, &InputError{Line: line, Column: ColumnTicker, Err: errEmpty})
		} else if err := ValidateTicker(ticker); err != nil {
			errs = append(errs, &InputError{Line: line, Column: ColumnTicker, Value: rawTicker, Err: err})
		}
		purchase, err := parsePurchaseDate(rawDate)
		if err != nil {
			errs = append(errs, &InputError{Line: line, Column: header[cols.date], Value: rawDate, Err: err})
		}
		qty, err := parseQuantity(rawQty)
		if err != nil {
			errs = append(errs, &InputError{Line: line, Column: ColumnQuantity, Value: rawQty, Err: err})
		}
		if len(errs) == rowErrs {
			p.Add(ticker, purchase, qty)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return p, nil
}

// LoadPositions reads the positions CSV file at path.
func LoadPositions(path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := DecodePositions(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load positions from %q: %w", path, err)
	}
	return p, nil
}

// EncodePositions writes the positions as a CSV table readable by DecodePositions.
// A nil portfolio writes only the header, which makes an empty template.
func EncodePositions(w io.Writer, p *Portfolio) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{ColumnTicker, ColumnDate, ColumnQuantity})
	if p != nil {
		for _, pos := range p.positions {
			cw.Write([]string{pos.ticker, pos.purchase.String(), pos.qty.String()})
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeSummary writes the summary rows as a CSV table with the presentation column names.
func EncodeSummary(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	cw.Write(Columns)
	for _, row := range rows {
		cw.Write(row.Record())
	}
	cw.Flush()
	return cw.Error()
}

// CheckTickers asks provider for the latest close of every distinct ticker of p.
//
// Tickers without any data are reported as ErrUnknownTicker; provider failures are reported as
// they come. Nothing is valuated.
func CheckTickers(ctx context.Context, provider Provider, p *Portfolio) error {
	var tickers []string
	for _, pos := range p.positions {
		if !slices.Contains(tickers, pos.ticker) {
			tickers = append(tickers, pos.ticker)
		}
	}
	var errs []error
	for _, ticker := range tickers {
		_, ok, err := provider.LatestClose(ctx, ticker)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", ticker, err))
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker))
		}
	}
	return errors.Join(errs...)
}

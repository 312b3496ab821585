package folio

// A market data folder holds one JSON Lines file per year, named after the year, that stays
// readable and diffs well under version control. Each line is a trading day with the close of
// every ticker traded that day:
//
//	{"on":"2024-01-02","AAPL":185.64,"MSFT":370.87}

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
)

const (
	dayKey       = "on"
	yearFileGlob = "[0-9][0-9][0-9][0-9].jsonl"
)

// DecodeMarketData reads market data from a folder of yearly JSONL files, or from a single JSONL file.
//
// A missing path yields an empty market.
func DecodeMarketData(path string) (*MarketData, error) {
	m := NewMarketData()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open market data %q: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		if files, err = filepath.Glob(filepath.Join(path, yearFileGlob)); err != nil {
			return nil, fmt.Errorf("cannot list market data files in %q: %w", path, err)
		}
	}
	for _, file := range files {
		if err := decodeFile(m, file); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// decodeFile adds the closes of a JSONL file to m.
func decodeFile(m *MarketData, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("cannot open market data file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if err := decodeDay(m, scanner.Bytes()); err != nil {
			return fmt.Errorf("%s:%d: %w", file, n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read %q: %w", file, err)
	}
	return nil
}

// decodeDay adds the closes of a single line to m. Blank lines are skipped.
func decodeDay(m *MarketData, line []byte) error {
	if len(strings.TrimSpace(string(line))) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return fmt.Errorf("not a JSON object: %w", err)
	}

	raw, ok := fields[dayKey]
	if !ok {
		return fmt.Errorf("missing the %q property", dayKey)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("property %q must be a date string", dayKey)
	}
	on, err := date.Parse(s)
	if err != nil {
		return fmt.Errorf("property %q: %w", dayKey, err)
	}

	for ticker, raw := range fields {
		if ticker == dayKey {
			continue
		}
		var price float64
		if err := json.Unmarshal(raw, &price); err != nil {
			return fmt.Errorf("close of %q must be a number", ticker)
		}
		m.Append(NormalizeTicker(ticker), on, price)
	}
	return nil
}

// EncodeMarketData writes the market data into folder, one JSONL file per year. Yearly files
// left over from a previous encoding are deleted.
func EncodeMarketData(folder string, m *MarketData) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("cannot create market data folder: %w", err)
	}

	tickers := m.Tickers()
	histories := make([]*date.History[float64], len(tickers))
	for i, ticker := range tickers {
		histories[i] = m.prices[ticker]
	}

	// days by year, in chronological order.
	var years []int
	days := make(map[int][]date.Date)
	for day := range date.Iterate(histories...) {
		if _, ok := days[day.Year()]; !ok {
			years = append(years, day.Year())
		}
		days[day.Year()] = append(days[day.Year()], day)
	}

	written := make([]string, 0, len(years))
	for _, year := range years {
		file := filepath.Join(folder, strconv.Itoa(year)+".jsonl")
		if err := writeYear(file, m, tickers, days[year]); err != nil {
			return err
		}
		written = append(written, file)
	}

	existing, err := filepath.Glob(filepath.Join(folder, yearFileGlob))
	if err != nil {
		return fmt.Errorf("cannot list market data files in %q: %w", folder, err)
	}
	for _, file := range existing {
		if slices.Contains(written, file) {
			continue
		}
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("cannot delete stale market data file: %w", err)
		}
		log.Debug().Str("file", file).Msg("stale market data file deleted")
	}
	return nil
}

// writeYear writes one line per day into file.
func writeYear(file string, m *MarketData, tickers []string, days []date.Date) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("cannot create market data file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, day := range days {
		if err := encodeDay(w, m, tickers, day); err != nil {
			f.Close()
			return fmt.Errorf("cannot write %q: %w", file, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", file, err)
	}
	log.Debug().Str("file", file).Int("days", len(days)).Msg("market data file written")
	return f.Close()
}

// encodeDay writes the closes of day as a single line, tickers in alphabetical order.
func encodeDay(w io.Writer, m *MarketData, tickers []string, day date.Date) error {
	var obj orderedObject
	obj.Set(dayKey, day.String())
	for _, ticker := range tickers {
		price, ok := m.read(ticker, day)
		if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		obj.Set(ticker, price)
	}
	b, err := obj.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// Package folio values a portfolio of stock positions against daily market closes.
//
// A Position is a number of shares of a ticker bought on a given day. A Valuer prices it with a
// Provider of market data:
//   - the current value is the latest close times the quantity.
//   - the cost basis is the close of the first trading day on or after the purchase date times the
//     quantity, so a purchase dated on a week-end is priced at the following session.
//   - profit and percentage return are derived from both.
//
// A Portfolio holds positions in insertion order, revalues them all under a FailurePolicy, and
// aggregates the successful ones into Totals. Positions are read from, and summaries written to,
// CSV tables.
//
// MarketData is an in-memory Provider that can be persisted as a folder of yearly JSONL files,
// which makes offline valuations reproducible. Online providers live in the eodhd and yahoo
// packages.
//
// This package serves as the foundational logic for the `pnl` command-line tool.
package folio

package folio

import (
	"context"
	"errors"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Portfolio is an ordered collection of positions.
//
// Positions keep their insertion order, which is the display order. The same ticker can appear
// several times, one position per lot.
type Portfolio struct {
	positions []*Position
	currency  string // of the last valuer, for the totals.
}

// NewPortfolio returns an empty portfolio.
func NewPortfolio() *Portfolio { return &Portfolio{} }

// Add appends a new unvalued position and returns it.
func (p *Portfolio) Add(ticker string, purchase date.Date, qty Quantity) *Position {
	pos := NewPosition(ticker, purchase, qty)
	p.positions = append(p.positions, pos)
	return pos
}

// Len returns the number of positions.
func (p *Portfolio) Len() int { return len(p.positions) }

// Positions returns the positions in insertion order.
func (p *Portfolio) Positions() []*Position { return p.positions }

// Failed returns the positions whose last valuation failed, in insertion order.
func (p *Portfolio) Failed() []*Position {
	var failed []*Position
	for _, pos := range p.positions {
		if pos.err != nil {
			failed = append(failed, pos)
		}
	}
	return failed
}

// FailurePolicy decides what RevalueAll does when a position cannot be priced.
type FailurePolicy int

const (
	// IsolateFailures values every position; a failure only affects its own position.
	IsolateFailures FailurePolicy = iota
	// AbortOnFailure stops at the first failure; positions not yet reached keep their previous state.
	AbortOnFailure
)

func (f FailurePolicy) String() string {
	switch f {
	case IsolateFailures:
		return "isolate"
	case AbortOnFailure:
		return "abort"
	default:
		return "unknown"
	}
}

type revalueOptions struct {
	policy      FailurePolicy
	concurrency int
}

// RevalueOption configures RevalueAll.
type RevalueOption func(*revalueOptions)

// WithPolicy sets the failure policy, IsolateFailures by default.
func WithPolicy(policy FailurePolicy) RevalueOption {
	return func(o *revalueOptions) { o.policy = policy }
}

// WithConcurrency values up to n positions in parallel. n <= 1 values them one after the other.
func WithConcurrency(n int) RevalueOption {
	return func(o *revalueOptions) { o.concurrency = n }
}

// RevalueAll revalues every position with v.
//
// With IsolateFailures, the default, all positions are attempted and the returned error joins
// the individual failures; it is informational since each failure is also kept on its position.
// With AbortOnFailure, the first failure is returned.
//
// When running concurrently each position is written by a single goroutine, and the portfolio
// is only read again once all of them are done.
func (p *Portfolio) RevalueAll(ctx context.Context, v *Valuer, opts ...RevalueOption) error {
	o := revalueOptions{policy: IsolateFailures, concurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}
	p.currency = v.currency()
	if o.concurrency > 1 {
		return p.revalueConcurrently(ctx, v, o)
	}

	var errs []error
	for _, pos := range p.positions {
		if err := pos.Revalue(ctx, v); err != nil {
			log.Debug().Str("ticker", pos.ticker).Err(err).Msg("revalue failed")
			if o.policy == AbortOnFailure {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Portfolio) revalueConcurrently(ctx context.Context, v *Valuer, o revalueOptions) error {
	abort := o.policy == AbortOnFailure
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	// one slot per position, so that no two goroutines write to the same one.
	errs := make([]error, len(p.positions))
	for i, pos := range p.positions {
		if abort && gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if abort && gctx.Err() != nil {
				return nil
			}
			val, err := v.Valuate(gctx, pos.ticker, pos.purchase, pos.qty)
			if abort && err != nil && errors.Is(err, context.Canceled) && gctx.Err() != nil && ctx.Err() == nil {
				// stopped by the failure of another position: this one was not reached.
				return nil
			}
			pos.set(val, err)
			errs[i] = err
			if err != nil {
				log.Debug().Str("ticker", pos.ticker).Err(err).Msg("revalue failed")
			}
			if abort {
				return err
			}
			return nil
		})
	}
	_ = g.Wait() // failures are in errs.

	if abort {
		// the first failure in insertion order, not the first to complete.
		for _, err := range errs {
			if err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Join(errs...)
}

// Totals are portfolio aggregates over the successfully valuated positions.
type Totals struct {
	Value    Money   // sum of current values.
	Cost     Money   // sum of cost bases.
	Profit   Money   // sum of profits.
	Return   Percent // Profit / Cost × 100, 0 when Cost is 0.
	Valuated int     // number of positions in the sums.
	Failed   int     // number of positions whose valuation failed.
	Degraded int     // number of valuated positions with a defaulted cost basis.
}

// Totals sums the valuated positions. Positions never valuated or whose last valuation failed
// are left out. Amounts are in the currency of the last RevalueAll, even when nothing was valuated.
func (p *Portfolio) Totals() Totals {
	zero := M(0, p.currency)
	t := Totals{Value: zero, Cost: zero, Profit: zero}
	for _, pos := range p.positions {
		if pos.err != nil {
			t.Failed++
		}
		if !pos.valuated {
			continue
		}
		t.Valuated++
		if pos.val.Degraded {
			t.Degraded++
		}
		t.Value = t.Value.Add(pos.val.CurrentValue)
		t.Cost = t.Cost.Add(pos.val.CostBasis)
		t.Profit = t.Profit.Add(pos.val.Profit)
	}
	t.Return = t.Profit.PercentOf(t.Cost)
	return t
}

// SummaryTable returns one summary row per position, in insertion order.
func (p *Portfolio) SummaryTable() []SummaryRow {
	rows := make([]SummaryRow, 0, len(p.positions))
	for _, pos := range p.positions {
		rows = append(rows, pos.Summary())
	}
	return rows
}

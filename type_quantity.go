package folio

import "github.com/shopspring/decimal"

// Number is any value Money and Quantity can be built from.
type Number interface {
	int | int64 | float64 | decimal.Decimal
}

func toDecimal[T Number](v T) decimal.Decimal {
	switch v := any(v).(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case decimal.Decimal:
		return v
	}
	panic("unreachable")
}

// Quantity is a number of shares.
//
// Positions loaded from a file always hold a whole number of shares; the type itself accepts
// any decimal so that averages like a profit per day can be expressed with it.
type Quantity struct {
	value decimal.Decimal
}

// Q returns the quantity value.
func Q[T Number](value T) Quantity { return Quantity{value: toDecimal(value)} }

func (q Quantity) IsZero() bool     { return q.value.IsZero() }
func (q Quantity) IsPositive() bool { return q.value.IsPositive() }
func (q Quantity) IsWhole() bool    { return q.value.IsInteger() }

// String returns the quantity without trailing zeroes, as in "10".
func (q Quantity) String() string { return q.value.String() }

func (q Quantity) MarshalJSON() ([]byte, error) { return q.value.MarshalJSON() }

func (q *Quantity) UnmarshalJSON(data []byte) error { return q.value.UnmarshalJSON(data) }

package folio

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used when none is configured.
const DefaultCurrency = "USD"

// Money is an exact amount in a currency.
//
// The empty currency is neutral: it takes the currency of the other operand. Only display
// rounds, see Round, Fixed and String.
type Money struct {
	amount decimal.Decimal // in major units, like dollars.
	code   string          // ISO 4217 code, or "".
}

// M returns the amount value in the currency code.
func M[T Number](value T, code string) Money {
	return Money{amount: toDecimal(value), code: code}
}

func (m Money) Currency() string         { return m.code }
func (m Money) Decimal() decimal.Decimal { return m.amount }
func (m Money) IsZero() bool             { return m.amount.IsZero() }

// Equal reports whether m and n have the same amount and currency.
func (m Money) Equal(n Money) bool { return m.code == n.code && m.amount.Equal(n.amount) }

// with returns an amount in m's currency.
func (m Money) with(amount decimal.Decimal) Money { return Money{amount: amount, code: m.code} }

func (m Money) Mul(q Quantity) Money { return m.with(m.amount.Mul(q.value)) }
func (m Money) Div(q Quantity) Money { return m.with(m.amount.Div(q.value)) }

// Round rounds m half away from zero to places decimals.
func (m Money) Round(places int32) Money { return m.with(m.amount.Round(places)) }

func (m Money) Add(n Money) Money { return Money{m.amount.Add(n.amount), common(m, n)} }
func (m Money) Sub(n Money) Money { return Money{m.amount.Sub(n.amount), common(m, n)} }

// common returns the currency of an operation between a and b. Mixing two currencies is a
// programming error, amounts are never converted.
func common(a, b Money) string {
	switch {
	case a.code == "":
		return b.code
	case b.code == "", a.code == b.code:
		return a.code
	}
	panic(fmt.Sprintf("currency mismatch: %s and %s", a.code, b.code))
}

// PercentOf returns m as a percentage of base, 0 when base is zero.
func (m Money) PercentOf(base Money) Percent {
	if base.amount.IsZero() {
		return 0
	}
	return Percent(m.amount.Div(base.amount).Shift(2).InexactFloat64())
}

// details returns the go-money description of m's currency. Unknown codes get a default
// description.
func (m Money) details() *money.Currency {
	return money.New(0, m.code).Currency()
}

// String formats m with its currency symbol and digit grouping, as in "$1,300.00".
func (m Money) String() string {
	c := m.details()
	minor := m.amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return c.Formatter().Format(minor)
}

// Fixed formats m with exactly two decimals and no symbol, as in "1300.00".
func (m Money) Fixed() string { return m.amount.StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) {
	var obj orderedObject
	obj.SetNonZero("currency", m.code)
	obj.Set("amount", m.amount.Round(int32(m.details().Fraction)))
	return obj.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var obj struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = Money{amount: obj.Amount, code: obj.Currency}
	return nil
}

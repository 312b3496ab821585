package folio

import (
	"fmt"
	"math"
)

// Percent is a percentage, 15 means 15%.
//
// Returns are derived from exact Money values and only then converted, so float precision is
// enough for display.
type Percent float64

// Equal reports whether p and q are the same to a hundredth of a basis point.
func (p Percent) Equal(q Percent) bool { return math.Abs(float64(p-q)) < 1e-4 }

// Round returns p rounded half away from zero to two decimals.
func (p Percent) Round() Percent { return Percent(math.Round(float64(p)*100) / 100) }

// String returns the percentage with two decimals and the percent sign, as in "15.38%".
func (p Percent) String() string { return p.Fixed() + "%" }

// Fixed returns the percentage with exactly two decimals and no sign, as in "15.38".
func (p Percent) Fixed() string { return fmt.Sprintf("%.2f", float64(p)) }

// SignedString returns the percentage with an explicit sign, as in "+15.38%", or "-" when it
// rounds to zero.
func (p Percent) SignedString() string {
	if p.Round() == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", float64(p))
}

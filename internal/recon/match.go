package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the maximum absolute difference for two monetary
// amounts to count as equal: one cent, absorbing rounding noise from
// text-extracted values.
var DefaultTolerance = decimal.New(1, -2)

// truncatedPrefixLen is how many leading characters statement processors
// tend to preserve when they truncate a merchant name to a fixed-width
// column.
const truncatedPrefixLen = 10

// DescriptionsMatch reports whether two free-text descriptions plausibly
// refer to the same purchase. Both are normalized first; they match when the
// normalized keys are equal, when either contains the other (a statement
// line is often a truncated or prefixed version of the invoice supplier), or
// when both are long and share the same first ten characters.
//
// The rules are deliberately permissive: a false positive pairs two real
// records for human review, while a false negative produces a spurious
// alert.
func DescriptionsMatch(a, b string) bool {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return true
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	// Normalized keys are pure ASCII, so byte slicing is safe.
	if len(na) > truncatedPrefixLen && len(nb) > truncatedPrefixLen &&
		na[:truncatedPrefixLen] == nb[:truncatedPrefixLen] {
		return true
	}

	return false
}

// ValuesMatch reports whether two amounts are equal within DefaultTolerance.
func ValuesMatch(v1, v2 decimal.Decimal) bool {
	return ValuesMatchWithin(v1, v2, DefaultTolerance)
}

// ValuesMatchWithin reports whether |v1-v2| <= tolerance.
func ValuesMatchWithin(v1, v2, tolerance decimal.Decimal) bool {
	return v1.Sub(v2).Abs().Cmp(tolerance) <= 0
}

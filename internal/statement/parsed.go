package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedStatement is the outcome of running a statement text through an
// importer: the detected billing period, the total printed on the bill, and
// the candidate expense lines. Fields the parser could not detect are left
// at their zero values; callers decide whether that is acceptable.
type ParsedStatement struct {
	PeriodMonth   int
	PeriodYear    int
	DeclaredTotal decimal.Decimal
	Expenses      []ParsedExpense
	RawText       string
}

// ParsedExpense is one candidate expense line split out of statement text.
type ParsedExpense struct {
	Description string
	Value       decimal.Decimal
	Date        *time.Time
}

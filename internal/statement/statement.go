package statement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a statement, derived from how far the
// declared total is from the sum of its extracted expenses.
type Status string

const (
	StatusInReview  Status = "in_review"
	StatusMatched   Status = "matched"
	StatusDivergent Status = "divergent"
)

// totalTolerance is the maximum accepted difference between the declared and
// calculated totals (one cent, absorbs rounding noise from text extraction).
var totalTolerance = decimal.New(1, -2)

// Statement is one user-submitted credit-card bill for a month/year period.
// It is the aggregate root: its expenses live and die with it, and at most
// one statement may exist per (user, month, year).
type Statement struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	PeriodMonth     int
	PeriodYear      int
	DeclaredTotal   decimal.Decimal
	CalculatedTotal decimal.Decimal
	Difference      decimal.Decimal
	Status          Status
	PDFURL          string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Expense is one line item extracted from a statement's text.
type Expense struct {
	ID          uuid.UUID
	StatementID uuid.UUID
	UserID      uuid.UUID
	Description string
	Value       decimal.Decimal
	Date        *time.Time
	CreatedAt   time.Time
}

// Recalculate derives CalculatedTotal, Difference and Status from the current
// set of expenses. A statement with no expenses keeps StatusInReview: nothing
// was extracted, so there is no calculated total to judge it against (the
// reconciler flags that case as incomplete instead).
func (s *Statement) Recalculate(expenses []Expense) {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Value)
	}

	s.CalculatedTotal = sum
	s.Difference = s.DeclaredTotal.Sub(sum)

	if len(expenses) == 0 {
		s.Status = StatusInReview
		return
	}

	if s.Difference.Abs().Cmp(totalTolerance) <= 0 {
		s.Status = StatusMatched
	} else {
		s.Status = StatusDivergent
	}
}

package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/invoice"
	"github.com/ricardofs/confere/internal/statement"
)

// Status is the overall outcome of reconciling one statement.
type Status string

const (
	StatusMatched   Status = "matched"
	StatusPartial   Status = "partial"
	StatusDivergent Status = "divergent"
)

// StatementReconciliation is the computed result of pairing one statement's
// expenses against a user's invoices. It is transient: recomputed on every
// run, never stored.
type StatementReconciliation struct {
	Statement              statement.Statement
	Expenses               []statement.Expense
	MatchedInvoices        []invoice.Invoice
	UnmatchedExpenses      []statement.Expense
	InvoicesNotInStatement []invoice.Invoice
	TotalExpensesValue     decimal.Decimal
	TotalMatchedValue      decimal.Decimal
	TotalUnmatchedValue    decimal.Decimal
	Status                 Status
	Alerts                 []Alert
}

// ReconcileStatement pairs a statement's expense lines with the user's
// invoices and derives alerts. Pure function: no I/O, no clock, no
// randomness; identical inputs produce identical output including alert IDs.
//
// Only invoices dated inside the statement's calendar month are candidates;
// undated invoices can never match and are never reported missing either.
// Matching is greedy first-fit in input order, in two passes: description
// and value first, then value only. First-fit is intentional: the alert
// semantics depend on this exact order, so do not replace it with an optimal
// assignment.
func ReconcileStatement(
	stmt statement.Statement,
	expenses []statement.Expense,
	userInvoices []invoice.Invoice,
) StatementReconciliation {
	periodStart, periodEnd := periodWindow(stmt.PeriodMonth, stmt.PeriodYear)

	var candidates []invoice.Invoice

	for _, inv := range userInvoices {
		if inv.InvoiceDate == nil {
			continue
		}

		d := dateOnly(*inv.InvoiceDate)
		if !d.Before(periodStart) && !d.After(periodEnd) {
			candidates = append(candidates, inv)
		}
	}

	expenseMatched := make([]bool, len(expenses))
	invoiceMatched := make([]bool, len(candidates))

	var matchedInvoices []invoice.Invoice

	// Pass 1: description and value must both agree.
	for i, exp := range expenses {
		for j, inv := range candidates {
			if invoiceMatched[j] {
				continue
			}

			descMatch := DescriptionsMatch(exp.Description, inv.Supplier) ||
				DescriptionsMatch(exp.Description, inv.Description)
			if descMatch && ValuesMatch(exp.Value, inv.TotalValue) {
				expenseMatched[i] = true
				invoiceMatched[j] = true
				matchedInvoices = append(matchedInvoices, inv)

				break
			}
		}
	}

	// Pass 2: value-only fallback for whatever pass 1 left behind.
	for i, exp := range expenses {
		if expenseMatched[i] {
			continue
		}

		for j, inv := range candidates {
			if invoiceMatched[j] {
				continue
			}

			if ValuesMatch(exp.Value, inv.TotalValue) {
				expenseMatched[i] = true
				invoiceMatched[j] = true
				matchedInvoices = append(matchedInvoices, inv)

				break
			}
		}
	}

	var unmatchedExpenses []statement.Expense

	for i, exp := range expenses {
		if !expenseMatched[i] {
			unmatchedExpenses = append(unmatchedExpenses, exp)
		}
	}

	var invoicesNotInStatement []invoice.Invoice

	for j, inv := range candidates {
		if !invoiceMatched[j] {
			invoicesNotInStatement = append(invoicesNotInStatement, inv)
		}
	}

	totalExpenses := decimal.Zero
	for _, exp := range expenses {
		totalExpenses = totalExpenses.Add(exp.Value)
	}

	totalMatched := decimal.Zero
	for _, inv := range matchedInvoices {
		totalMatched = totalMatched.Add(inv.TotalValue)
	}

	totalUnmatched := decimal.Zero
	for _, exp := range unmatchedExpenses {
		totalUnmatched = totalUnmatched.Add(exp.Value)
	}

	var status Status

	switch {
	case len(unmatchedExpenses) == 0 && len(invoicesNotInStatement) == 0:
		status = StatusMatched
	case len(unmatchedExpenses) > 0 && len(matchedInvoices) == 0:
		status = StatusDivergent
	default:
		status = StatusPartial
	}

	return StatementReconciliation{
		Statement:              stmt,
		Expenses:               expenses,
		MatchedInvoices:        matchedInvoices,
		UnmatchedExpenses:      unmatchedExpenses,
		InvoicesNotInStatement: invoicesNotInStatement,
		TotalExpensesValue:     totalExpenses,
		TotalMatchedValue:      totalMatched,
		TotalUnmatchedValue:    totalUnmatched,
		Status:                 status,
		Alerts:                 generateAlerts(stmt, len(expenses), unmatchedExpenses, invoicesNotInStatement),
	}
}

// periodWindow returns the first and last calendar day of a statement's
// month. Comparison is plain date, no timezone conversion.
func periodWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return start, end
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

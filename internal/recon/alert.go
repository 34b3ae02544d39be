package recon

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/invoice"
	"github.com/ricardofs/confere/internal/statement"
)

// AlertType discriminates what kind of mismatch an alert describes. Each
// type carries only the reference fields relevant to it, set by its
// constructor below.
type AlertType string

const (
	AlertMissingInvoice      AlertType = "missing_invoice"
	AlertExtraExpense        AlertType = "extra_expense"
	AlertValueMismatch       AlertType = "value_mismatch"
	AlertIncompleteStatement AlertType = "incomplete_statement"
)

// Severity ranks an alert for triage.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert is one finding derived from a reconciliation run. Alerts are never
// persisted; they are recomputed from current data on every run, and ID is a
// pure function of the triggering entity so identical data yields identical
// alert sets.
type Alert struct {
	ID          string
	Type        AlertType
	Severity    Severity
	Title       string
	Description string
	StatementID uuid.UUID
	InvoiceID   *uuid.UUID
	ExpenseID   *uuid.UUID
	Value       *decimal.Decimal
}

func newValueMismatchAlert(stmt statement.Statement) Alert {
	v := stmt.Difference

	return Alert{
		ID:       fmt.Sprintf("divergent-%s", stmt.ID),
		Type:     AlertValueMismatch,
		Severity: SeverityError,
		Title:    "Declared total mismatch",
		Description: fmt.Sprintf(
			"Statement %02d/%d differs by %s between the declared and calculated totals.",
			stmt.PeriodMonth, stmt.PeriodYear, stmt.Difference.Abs().StringFixed(2)),
		StatementID: stmt.ID,
		Value:       &v,
	}
}

func newExtraExpenseAlert(stmt statement.Statement, exp statement.Expense) Alert {
	v := exp.Value
	expID := exp.ID

	return Alert{
		ID:       fmt.Sprintf("unmatched-expense-%s", exp.ID),
		Type:     AlertExtraExpense,
		Severity: SeverityWarning,
		Title:    "Expense without invoice",
		Description: fmt.Sprintf(
			"%q (%s) is on the statement but has no matching invoice.",
			exp.Description, exp.Value.StringFixed(2)),
		StatementID: stmt.ID,
		ExpenseID:   &expID,
		Value:       &v,
	}
}

func newMissingInvoiceAlert(stmt statement.Statement, inv invoice.Invoice) Alert {
	v := inv.TotalValue
	invID := inv.ID

	return Alert{
		ID:       fmt.Sprintf("missing-invoice-%s", inv.ID),
		Type:     AlertMissingInvoice,
		Severity: SeverityWarning,
		Title:    "Invoice not on statement",
		Description: fmt.Sprintf(
			"%q (%s) was submitted but is absent from the statement.",
			inv.Supplier, inv.TotalValue.StringFixed(2)),
		StatementID: stmt.ID,
		InvoiceID:   &invID,
		Value:       &v,
	}
}

func newIncompleteStatementAlert(stmt statement.Statement) Alert {
	return Alert{
		ID:       fmt.Sprintf("incomplete-%s", stmt.ID),
		Type:     AlertIncompleteStatement,
		Severity: SeverityInfo,
		Title:    "Statement has no expenses",
		Description: fmt.Sprintf(
			"Statement %02d/%d was registered but no expenses were extracted from it.",
			stmt.PeriodMonth, stmt.PeriodYear),
		StatementID: stmt.ID,
	}
}

// generateAlerts derives the alert set for one reconciled statement. Rules
// are evaluated in a fixed order and are not mutually exclusive. The function
// is total: it cannot fail, only return an empty slice.
func generateAlerts(
	stmt statement.Statement,
	expenseCount int,
	unmatchedExpenses []statement.Expense,
	invoicesNotInStatement []invoice.Invoice,
) []Alert {
	var alerts []Alert

	if stmt.Status == statement.StatusDivergent {
		alerts = append(alerts, newValueMismatchAlert(stmt))
	}

	for _, exp := range unmatchedExpenses {
		alerts = append(alerts, newExtraExpenseAlert(stmt, exp))
	}

	for _, inv := range invoicesNotInStatement {
		alerts = append(alerts, newMissingInvoiceAlert(stmt, inv))
	}

	if expenseCount == 0 && stmt.DeclaredTotal.IsPositive() {
		alerts = append(alerts, newIncompleteStatementAlert(stmt))
	}

	return alerts
}

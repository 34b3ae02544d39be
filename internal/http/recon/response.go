package recon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/invoice"
	"github.com/ricardofs/confere/internal/recon"
	"github.com/ricardofs/confere/internal/statement"
)

type alertResponse struct {
	ID          string           `json:"id"`
	Type        recon.AlertType  `json:"type"`
	Severity    recon.Severity   `json:"severity"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StatementID uuid.UUID        `json:"statement_id"`
	InvoiceID   *uuid.UUID       `json:"invoice_id,omitempty"`
	ExpenseID   *uuid.UUID       `json:"expense_id,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
}

type expenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        *time.Time      `json:"date,omitempty"`
}

type invoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Supplier    string          `json:"supplier"`
	TotalValue  decimal.Decimal `json:"total_value"`
	InvoiceDate *time.Time      `json:"invoice_date,omitempty"`
	Status      invoice.Status  `json:"status"`
}

type statementReconciliationResponse struct {
	StatementID            uuid.UUID         `json:"statement_id"`
	PeriodMonth            int               `json:"period_month"`
	PeriodYear             int               `json:"period_year"`
	DeclaredTotal          decimal.Decimal   `json:"declared_total"`
	CalculatedTotal        decimal.Decimal   `json:"calculated_total"`
	Difference             decimal.Decimal   `json:"difference"`
	MatchedInvoices        []invoiceResponse `json:"matched_invoices"`
	UnmatchedExpenses      []expenseResponse `json:"unmatched_expenses"`
	InvoicesNotInStatement []invoiceResponse `json:"invoices_not_in_statement"`
	TotalExpensesValue     decimal.Decimal   `json:"total_expenses_value"`
	TotalMatchedValue      decimal.Decimal   `json:"total_matched_value"`
	TotalUnmatchedValue    decimal.Decimal   `json:"total_unmatched_value"`
	Status                 recon.Status      `json:"status"`
	Alerts                 []alertResponse   `json:"alerts"`
}

type userSummaryResponse struct {
	UserID              uuid.UUID                         `json:"user_id"`
	UserName            string                            `json:"user_name"`
	Department          string                            `json:"department,omitempty"`
	Statements          []statementReconciliationResponse `json:"statements"`
	Invoices            []invoiceResponse                 `json:"invoices"`
	TotalStatements     int                               `json:"total_statements"`
	TotalInvoices       int                               `json:"total_invoices"`
	StatementsMatched   int                               `json:"statements_matched"`
	StatementsDivergent int                               `json:"statements_divergent"`
	InvoicesApproved    int                               `json:"invoices_approved"`
	InvoicesPending     int                               `json:"invoices_pending"`
	InvoicesRejected    int                               `json:"invoices_rejected"`
	TotalApprovedValue  decimal.Decimal                   `json:"total_approved_value"`
	TotalPendingValue   decimal.Decimal                   `json:"total_pending_value"`
	TotalRejectedValue  decimal.Decimal                   `json:"total_rejected_value"`
	Alerts              []alertResponse                   `json:"alerts"`
}

type globalReportResponse struct {
	Users           []userSummaryResponse `json:"users"`
	TotalAlerts     int                   `json:"total_alerts"`
	CriticalAlerts  int                   `json:"critical_alerts"`
	WarningAlerts   int                   `json:"warning_alerts"`
	TotalStatements int                   `json:"total_statements"`
	TotalInvoices   int                   `json:"total_invoices"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

func toAlertResponse(a recon.Alert) alertResponse {
	return alertResponse{
		ID:          a.ID,
		Type:        a.Type,
		Severity:    a.Severity,
		Title:       a.Title,
		Description: a.Description,
		StatementID: a.StatementID,
		InvoiceID:   a.InvoiceID,
		ExpenseID:   a.ExpenseID,
		Value:       a.Value,
	}
}

func toAlertResponseList(alerts []recon.Alert) []alertResponse {
	resp := make([]alertResponse, len(alerts))
	for i, a := range alerts {
		resp[i] = toAlertResponse(a)
	}

	return resp
}

func toExpenseResponseList(exps []statement.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(exps))
	for i, e := range exps {
		resp[i] = expenseResponse{
			ID:          e.ID,
			Description: e.Description,
			Value:       e.Value,
			Date:        e.Date,
		}
	}

	return resp
}

func toInvoiceResponseList(invs []invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = invoiceResponse{
			ID:          inv.ID,
			Supplier:    inv.Supplier,
			TotalValue:  inv.TotalValue,
			InvoiceDate: inv.InvoiceDate,
			Status:      inv.Status,
		}
	}

	return resp
}

func toReconciliationResponse(rec recon.StatementReconciliation) statementReconciliationResponse {
	return statementReconciliationResponse{
		StatementID:            rec.Statement.ID,
		PeriodMonth:            rec.Statement.PeriodMonth,
		PeriodYear:             rec.Statement.PeriodYear,
		DeclaredTotal:          rec.Statement.DeclaredTotal,
		CalculatedTotal:        rec.Statement.CalculatedTotal,
		Difference:             rec.Statement.Difference,
		MatchedInvoices:        toInvoiceResponseList(rec.MatchedInvoices),
		UnmatchedExpenses:      toExpenseResponseList(rec.UnmatchedExpenses),
		InvoicesNotInStatement: toInvoiceResponseList(rec.InvoicesNotInStatement),
		TotalExpensesValue:     rec.TotalExpensesValue,
		TotalMatchedValue:      rec.TotalMatchedValue,
		TotalUnmatchedValue:    rec.TotalUnmatchedValue,
		Status:                 rec.Status,
		Alerts:                 toAlertResponseList(rec.Alerts),
	}
}

func toUserSummaryResponse(sum *recon.UserSummary) userSummaryResponse {
	statements := make([]statementReconciliationResponse, len(sum.Statements))
	for i, rec := range sum.Statements {
		statements[i] = toReconciliationResponse(rec)
	}

	return userSummaryResponse{
		UserID:              sum.UserID,
		UserName:            sum.UserName,
		Department:          sum.Department,
		Statements:          statements,
		Invoices:            toInvoiceResponseList(sum.Invoices),
		TotalStatements:     sum.TotalStatements,
		TotalInvoices:       sum.TotalInvoices,
		StatementsMatched:   sum.StatementsMatched,
		StatementsDivergent: sum.StatementsDivergent,
		InvoicesApproved:    sum.InvoicesApproved,
		InvoicesPending:     sum.InvoicesPending,
		InvoicesRejected:    sum.InvoicesRejected,
		TotalApprovedValue:  sum.TotalApprovedValue,
		TotalPendingValue:   sum.TotalPendingValue,
		TotalRejectedValue:  sum.TotalRejectedValue,
		Alerts:              toAlertResponseList(sum.Alerts),
	}
}

func toGlobalReportResponse(report *recon.GlobalReport) globalReportResponse {
	users := make([]userSummaryResponse, len(report.Users))
	for i := range report.Users {
		users[i] = toUserSummaryResponse(&report.Users[i])
	}

	return globalReportResponse{
		Users:           users,
		TotalAlerts:     report.TotalAlerts,
		CriticalAlerts:  report.CriticalAlerts,
		WarningAlerts:   report.WarningAlerts,
		TotalStatements: report.TotalStatements,
		TotalInvoices:   report.TotalInvoices,
		GeneratedAt:     report.GeneratedAt,
	}
}

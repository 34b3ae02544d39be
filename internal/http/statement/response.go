package statement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/statement"
)

type statementResponse struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"`
	PeriodMonth     int              `json:"period_month"`
	PeriodYear      int              `json:"period_year"`
	DeclaredTotal   decimal.Decimal  `json:"declared_total"`
	CalculatedTotal decimal.Decimal  `json:"calculated_total"`
	Difference      decimal.Decimal  `json:"difference"`
	Status          statement.Status `json:"status"`
	PDFURL          string           `json:"pdf_url,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty"`
}

type expenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	StatementID uuid.UUID       `json:"statement_id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Date        *time.Time      `json:"date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toResponse(stmt *statement.Statement) statementResponse {
	return statementResponse{
		ID:              stmt.ID,
		UserID:          stmt.UserID,
		PeriodMonth:     stmt.PeriodMonth,
		PeriodYear:      stmt.PeriodYear,
		DeclaredTotal:   stmt.DeclaredTotal,
		CalculatedTotal: stmt.CalculatedTotal,
		Difference:      stmt.Difference,
		Status:          stmt.Status,
		PDFURL:          stmt.PDFURL,
		CreatedAt:       stmt.CreatedAt,
		UpdatedAt:       stmt.UpdatedAt,
	}
}

func toResponseList(stmts []*statement.Statement) []statementResponse {
	resp := make([]statementResponse, len(stmts))
	for i, stmt := range stmts {
		resp[i] = toResponse(stmt)
	}

	return resp
}

func toExpenseResponse(exp *statement.Expense) expenseResponse {
	return expenseResponse{
		ID:          exp.ID,
		StatementID: exp.StatementID,
		Description: exp.Description,
		Value:       exp.Value,
		Date:        exp.Date,
		CreatedAt:   exp.CreatedAt,
	}
}

func toExpenseResponseList(exps []*statement.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(exps))
	for i, exp := range exps {
		resp[i] = toExpenseResponse(exp)
	}

	return resp
}

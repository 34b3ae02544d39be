package statement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("statement not found")
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidParams marks requests rejected by validation, before any
	// store call. Handlers map it to a client error.
	ErrInvalidParams = errors.New("invalid statement parameters")

	// ErrDuplicatePeriod is returned when a statement already exists for the
	// same (user, month, year). The existing statement is left untouched.
	ErrDuplicatePeriod = errors.New("statement already exists for this period")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=statement
type Repository interface {
	// CreateStatement persists the statement and its expenses atomically.
	CreateStatement(ctx context.Context, stmt *Statement, expenses []*Expense) error
	GetStatement(ctx context.Context, id uuid.UUID) (*Statement, error)
	ListStatements(ctx context.Context, userID uuid.UUID) ([]*Statement, error)
	DeleteStatement(ctx context.Context, id uuid.UUID) error
	UpdateTotals(ctx context.Context, stmt *Statement) error

	ListExpenses(ctx context.Context, statementID uuid.UUID) ([]*Expense, error)
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, exp *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID        uuid.UUID
	PeriodMonth   int
	PeriodYear    int
	DeclaredTotal decimal.Decimal
	PDFURL        string
	Expenses      []ExpenseParams
}

type ExpenseParams struct {
	Description string
	Value       decimal.Decimal
	Date        *time.Time
}

// Create registers a statement together with its extracted expenses and
// derives the initial totals. At most one statement may exist per period;
// a second attempt fails with ErrDuplicatePeriod.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Statement, error) {
	if params.PeriodMonth < 1 || params.PeriodMonth > 12 {
		return nil, fmt.Errorf("%w: period month must be between 1 and 12, got %d", ErrInvalidParams, params.PeriodMonth)
	}

	if params.PeriodYear < 1 {
		return nil, fmt.Errorf("%w: period year must be positive, got %d", ErrInvalidParams, params.PeriodYear)
	}

	if params.DeclaredTotal.IsNegative() {
		return nil, fmt.Errorf("%w: declared total must not be negative", ErrInvalidParams)
	}

	stmt := &Statement{
		UserID:        params.UserID,
		PeriodMonth:   params.PeriodMonth,
		PeriodYear:    params.PeriodYear,
		DeclaredTotal: params.DeclaredTotal,
		Status:        StatusInReview,
		PDFURL:        params.PDFURL,
	}

	expenses := make([]*Expense, len(params.Expenses))
	plain := make([]Expense, len(params.Expenses))

	for i, p := range params.Expenses {
		exp := Expense{
			UserID:      params.UserID,
			Description: p.Description,
			Value:       p.Value,
			Date:        p.Date,
		}
		plain[i] = exp
		expenses[i] = &plain[i]
	}

	stmt.Recalculate(plain)

	if err := s.repo.CreateStatement(ctx, stmt, expenses); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Statement, error) {
	return s.repo.GetStatement(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Statement, error) {
	return s.repo.ListStatements(ctx, userID)
}

// Delete removes a statement; its expenses go with it (store cascades).
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteStatement(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context, statementID uuid.UUID) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, statementID)
}

type UpdateExpenseParams struct {
	Description *string
	Value       *decimal.Decimal
	Date        *time.Time
}

// UpdateExpense edits one expense line and refreshes the owning statement's
// totals and status.
func (s *Service) UpdateExpense(ctx context.Context, expenseID uuid.UUID, params UpdateExpenseParams) (*Expense, error) {
	exp, err := s.repo.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		exp.Description = *params.Description
	}

	if params.Value != nil {
		if params.Value.IsNegative() {
			return nil, fmt.Errorf("%w: expense value must not be negative", ErrInvalidParams)
		}

		exp.Value = *params.Value
	}

	if params.Date != nil {
		exp.Date = params.Date
	}

	if err := s.repo.UpdateExpense(ctx, exp); err != nil {
		return nil, err
	}

	if err := s.refreshTotals(ctx, exp.StatementID); err != nil {
		return nil, err
	}

	return exp, nil
}

// DeleteExpense removes one expense line and refreshes the owning statement's
// totals and status.
func (s *Service) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	exp, err := s.repo.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	return s.refreshTotals(ctx, exp.StatementID)
}

func (s *Service) refreshTotals(ctx context.Context, statementID uuid.UUID) error {
	stmt, err := s.repo.GetStatement(ctx, statementID)
	if err != nil {
		return fmt.Errorf("refreshing totals: %w", err)
	}

	exps, err := s.repo.ListExpenses(ctx, statementID)
	if err != nil {
		return fmt.Errorf("refreshing totals: %w", err)
	}

	plain := make([]Expense, len(exps))
	for i, e := range exps {
		plain[i] = *e
	}

	stmt.Recalculate(plain)

	if err := s.repo.UpdateTotals(ctx, stmt); err != nil {
		return fmt.Errorf("refreshing totals: %w", err)
	}

	return nil
}

package statement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ricardofs/confere/internal/statement"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Create_DerivesTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	repo.EXPECT().
		CreateStatement(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, stmt *statement.Statement, expenses []*statement.Expense) error {
			stmt.ID = uuid.New()
			stmt.CreatedAt = time.Now()
			return nil
		})

	stmt, err := svc.Create(context.Background(), statement.CreateParams{
		UserID:        uuid.New(),
		PeriodMonth:   1,
		PeriodYear:    2024,
		DeclaredTotal: dec("1000.00"),
		Expenses: []statement.ExpenseParams{
			{Description: "POSTO SHELL", Value: dec("900.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, stmt.CalculatedTotal.Equal(dec("900.00")), "calculated total %s", stmt.CalculatedTotal)
	assert.True(t, stmt.Difference.Equal(dec("100.00")), "difference %s", stmt.Difference)
	assert.Equal(t, statement.StatusDivergent, stmt.Status)
}

func TestService_Create_MatchedWithinTolerance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	repo.EXPECT().CreateStatement(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	stmt, err := svc.Create(context.Background(), statement.CreateParams{
		UserID:        uuid.New(),
		PeriodMonth:   3,
		PeriodYear:    2024,
		DeclaredTotal: dec("100.00"),
		Expenses: []statement.ExpenseParams{
			{Description: "UBER TRIP", Value: dec("45.00")},
			{Description: "IFOOD", Value: dec("55.01")},
		},
	})
	require.NoError(t, err)

	// Off by one cent: still matched.
	assert.Equal(t, statement.StatusMatched, stmt.Status)
}

func TestService_Create_NoExpensesStaysInReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	repo.EXPECT().CreateStatement(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	stmt, err := svc.Create(context.Background(), statement.CreateParams{
		UserID:        uuid.New(),
		PeriodMonth:   5,
		PeriodYear:    2024,
		DeclaredTotal: dec("500.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, statement.StatusInReview, stmt.Status)
	assert.True(t, stmt.Difference.Equal(dec("500.00")))
}

func TestService_Create_DuplicatePeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	repo.EXPECT().
		CreateStatement(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(statement.ErrDuplicatePeriod)

	_, err := svc.Create(context.Background(), statement.CreateParams{
		UserID:        uuid.New(),
		PeriodMonth:   1,
		PeriodYear:    2024,
		DeclaredTotal: dec("100.00"),
	})
	assert.ErrorIs(t, err, statement.ErrDuplicatePeriod)
}

func TestService_Create_Validation(t *testing.T) {
	type testCase struct {
		name   string
		params statement.CreateParams
	}

	tests := []testCase{
		{
			name:   "MonthTooLow",
			params: statement.CreateParams{PeriodMonth: 0, PeriodYear: 2024},
		},
		{
			name:   "MonthTooHigh",
			params: statement.CreateParams{PeriodMonth: 13, PeriodYear: 2024},
		},
		{
			name:   "YearMissing",
			params: statement.CreateParams{PeriodMonth: 6},
		},
		{
			name: "NegativeDeclaredTotal",
			params: statement.CreateParams{
				PeriodMonth:   6,
				PeriodYear:    2024,
				DeclaredTotal: dec("-1.00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := statement.NewMockRepository(ctrl)
			svc := statement.NewService(repo)

			_, err := svc.Create(context.Background(), tt.params)
			// Validation failures carry the sentinel so the HTTP layer can
			// answer 400 instead of 500.
			assert.ErrorIs(t, err, statement.ErrInvalidParams)
		})
	}
}

func TestService_UpdateExpense_RefreshesTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	stmtID := uuid.New()
	expID := uuid.New()

	exp := &statement.Expense{
		ID:          expID,
		StatementID: stmtID,
		Description: "POSTO SHELL",
		Value:       dec("150.00"),
	}

	stmt := &statement.Statement{
		ID:            stmtID,
		PeriodMonth:   2,
		PeriodYear:    2024,
		DeclaredTotal: dec("200.00"),
		Status:        statement.StatusDivergent,
	}

	newValue := dec("200.00")

	repo.EXPECT().GetExpense(gomock.Any(), expID).Return(exp, nil)
	repo.EXPECT().
		UpdateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *statement.Expense) error {
			assert.True(t, e.Value.Equal(newValue))
			return nil
		})
	repo.EXPECT().GetStatement(gomock.Any(), stmtID).Return(stmt, nil)
	repo.EXPECT().
		ListExpenses(gomock.Any(), stmtID).
		Return([]*statement.Expense{{ID: expID, StatementID: stmtID, Value: newValue}}, nil)
	repo.EXPECT().
		UpdateTotals(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *statement.Statement) error {
			assert.True(t, s.CalculatedTotal.Equal(dec("200.00")))
			assert.Equal(t, statement.StatusMatched, s.Status)
			return nil
		})

	got, err := svc.UpdateExpense(context.Background(), expID, statement.UpdateExpenseParams{
		Value: &newValue,
	})
	require.NoError(t, err)
	assert.True(t, got.Value.Equal(newValue))
}

func TestService_UpdateExpense_NegativeValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	expID := uuid.New()

	repo.EXPECT().
		GetExpense(gomock.Any(), expID).
		Return(&statement.Expense{ID: expID, StatementID: uuid.New(), Value: dec("50.00")}, nil)

	bad := dec("-10.00")

	_, err := svc.UpdateExpense(context.Background(), expID, statement.UpdateExpenseParams{
		Value: &bad,
	})
	assert.ErrorIs(t, err, statement.ErrInvalidParams)
}

func TestService_DeleteExpense_RefreshesTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := statement.NewMockRepository(ctrl)
	svc := statement.NewService(repo)

	stmtID := uuid.New()
	expID := uuid.New()

	repo.EXPECT().
		GetExpense(gomock.Any(), expID).
		Return(&statement.Expense{ID: expID, StatementID: stmtID, Value: dec("50.00")}, nil)
	repo.EXPECT().DeleteExpense(gomock.Any(), expID).Return(nil)
	repo.EXPECT().
		GetStatement(gomock.Any(), stmtID).
		Return(&statement.Statement{ID: stmtID, DeclaredTotal: dec("50.00")}, nil)
	repo.EXPECT().ListExpenses(gomock.Any(), stmtID).Return(nil, nil)
	repo.EXPECT().
		UpdateTotals(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *statement.Statement) error {
			assert.True(t, s.CalculatedTotal.IsZero())
			assert.Equal(t, statement.StatusInReview, s.Status)
			return nil
		})

	err := svc.DeleteExpense(context.Background(), expID)
	require.NoError(t, err)
}

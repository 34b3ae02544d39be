package recon_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ricardofs/confere/internal/invoice"
	"github.com/ricardofs/confere/internal/recon"
	"github.com/ricardofs/confere/internal/statement"
)

func TestService_GenerateUserSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recon.NewMockRepository(ctrl)
	svc := recon.NewService(repo, 4)

	userID := uuid.New()

	stmt := makeStatement(1, 2024, "150.00")
	stmt.UserID = userID
	exp := makeExpense("IFOOD RESTAURANTE", "150.00")
	exp.StatementID = stmt.ID
	stmt.Recalculate([]statement.Expense{exp})

	matched := makeInvoice("iFood", "150.00", date(2024, 1, 10))
	matched.UserID = userID
	matched.Status = invoice.StatusApproved

	pendingOut := makeInvoice("Hotel Fasano", "800.00", date(2024, 3, 2))
	pendingOut.UserID = userID

	invs := []invoice.Invoice{matched, pendingOut}

	repo.EXPECT().GetProfile(gomock.Any(), userID).
		Return(&recon.Profile{UserID: userID, FullName: "Ana Souza", Department: "Vendas"}, nil)
	repo.EXPECT().ListStatements(gomock.Any(), userID).
		Return([]statement.Statement{stmt}, nil)
	repo.EXPECT().ListInvoices(gomock.Any(), userID).
		Return(invs, nil)
	repo.EXPECT().ListExpenses(gomock.Any(), stmt.ID).
		Return([]statement.Expense{exp}, nil)

	summary, err := svc.GenerateUserSummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", summary.UserName)
	assert.Equal(t, "Vendas", summary.Department)
	assert.Equal(t, 1, summary.TotalStatements)
	assert.Equal(t, 2, summary.TotalInvoices)
	assert.Equal(t, 1, summary.StatementsMatched)
	assert.Equal(t, 0, summary.StatementsDivergent)
	assert.Equal(t, 1, summary.InvoicesApproved)
	assert.Equal(t, 1, summary.InvoicesPending)
	assert.True(t, summary.TotalApprovedValue.Equal(dec("150.00")))
	assert.True(t, summary.TotalPendingValue.Equal(dec("800.00")))

	require.Len(t, summary.Statements, 1)
	assert.Equal(t, recon.StatusMatched, summary.Statements[0].Status)
	assert.Empty(t, summary.Alerts)
}

func TestService_GenerateUserSummary_NoProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recon.NewMockRepository(ctrl)
	svc := recon.NewService(repo, 4)

	userID := uuid.New()

	repo.EXPECT().GetProfile(gomock.Any(), userID).Return(nil, nil)
	repo.EXPECT().ListStatements(gomock.Any(), userID).Return(nil, nil)
	repo.EXPECT().ListInvoices(gomock.Any(), userID).Return(nil, nil)

	summary, err := svc.GenerateUserSummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "Unknown user", summary.UserName)
	assert.Zero(t, summary.TotalStatements)
	assert.Zero(t, summary.TotalInvoices)
}

func TestService_GenerateUserSummary_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recon.NewMockRepository(ctrl)
	svc := recon.NewService(repo, 4)

	userID := uuid.New()
	storeErr := errors.New("connection reset")

	// The fetches race; siblings may or may not run before the group is
	// cancelled.
	repo.EXPECT().GetProfile(gomock.Any(), userID).Return(nil, nil).AnyTimes()
	repo.EXPECT().ListStatements(gomock.Any(), userID).Return(nil, storeErr)
	repo.EXPECT().ListInvoices(gomock.Any(), userID).Return(nil, nil).AnyTimes()

	summary, err := svc.GenerateUserSummary(context.Background(), userID)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, summary)
}

func TestService_GenerateGlobalReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recon.NewMockRepository(ctrl)
	svc := recon.NewService(repo, 2)

	withData := uuid.New()
	empty := uuid.New()

	stmt := makeStatement(2, 2024, "500.00")
	stmt.UserID = withData
	exp := makeExpense("POSTO IPIRANGA", "300.00")
	exp.StatementID = stmt.ID
	stmt.Recalculate([]statement.Expense{exp})

	repo.EXPECT().ListUserIDs(gomock.Any()).Return([]uuid.UUID{withData, empty}, nil)

	repo.EXPECT().GetProfile(gomock.Any(), withData).
		Return(&recon.Profile{UserID: withData, FullName: "Bruno Lima"}, nil)
	repo.EXPECT().ListStatements(gomock.Any(), withData).
		Return([]statement.Statement{stmt}, nil)
	repo.EXPECT().ListInvoices(gomock.Any(), withData).Return(nil, nil)
	repo.EXPECT().ListExpenses(gomock.Any(), stmt.ID).
		Return([]statement.Expense{exp}, nil)

	repo.EXPECT().GetProfile(gomock.Any(), empty).Return(nil, nil)
	repo.EXPECT().ListStatements(gomock.Any(), empty).Return(nil, nil)
	repo.EXPECT().ListInvoices(gomock.Any(), empty).Return(nil, nil)

	report, err := svc.GenerateGlobalReport(context.Background())
	require.NoError(t, err)

	// The user with no statements and no invoices is left out.
	require.Len(t, report.Users, 1)
	assert.Equal(t, withData, report.Users[0].UserID)
	assert.Equal(t, 1, report.TotalStatements)
	assert.Equal(t, 0, report.TotalInvoices)

	// Divergent statement plus one unmatched expense.
	assert.Equal(t, 2, report.TotalAlerts)
	assert.Equal(t, 1, report.CriticalAlerts)
	assert.Equal(t, 1, report.WarningAlerts)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestService_GenerateGlobalReport_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := recon.NewMockRepository(ctrl)
	svc := recon.NewService(repo, 2)

	repo.EXPECT().ListUserIDs(gomock.Any()).Return(nil, errors.New("timeout"))

	report, err := svc.GenerateGlobalReport(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
}

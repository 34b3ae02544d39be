package export_test

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardofs/confere/internal/export"
	"github.com/ricardofs/confere/internal/recon"
)

func sampleReport() *recon.GlobalReport {
	stmtID := uuid.New()
	value := decimal.RequireFromString("100.00")

	return &recon.GlobalReport{
		Users: []recon.UserSummary{
			{
				UserID:              uuid.New(),
				UserName:            "Ana Souza",
				Department:          "Vendas",
				TotalStatements:     2,
				TotalInvoices:       3,
				StatementsMatched:   1,
				StatementsDivergent: 1,
				TotalApprovedValue:  decimal.RequireFromString("350.50"),
				TotalPendingValue:   decimal.Zero,
				TotalRejectedValue:  decimal.Zero,
				Alerts: []recon.Alert{
					{
						ID:          "divergent-" + stmtID.String(),
						Type:        recon.AlertValueMismatch,
						Severity:    recon.SeverityError,
						Title:       "Declared total mismatch",
						StatementID: stmtID,
						Value:       &value,
					},
				},
			},
		},
		TotalAlerts:     1,
		CriticalAlerts:  1,
		TotalStatements: 2,
		TotalInvoices:   3,
		GeneratedAt:     time.Date(2024, 2, 1, 15, 4, 5, 0, time.UTC),
	}
}

func TestService_Write(t *testing.T) {
	dir := t.TempDir()
	svc := export.NewService()

	res, err := svc.Write(sampleReport(), dir)
	require.NoError(t, err)

	assert.Contains(t, res.UsersPath, "reconciliation_users_20240201_150405.csv")
	assert.Contains(t, res.AlertsPath, "reconciliation_alerts_20240201_150405.csv")

	usersFile, err := os.Open(res.UsersPath)
	require.NoError(t, err)
	defer usersFile.Close()

	userRows, err := csv.NewReader(usersFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, userRows, 2)

	assert.Equal(t, "user_id", userRows[0][0])
	assert.Equal(t, "Ana Souza", userRows[1][1])
	assert.Equal(t, "Vendas", userRows[1][2])
	assert.Equal(t, "2", userRows[1][3])
	assert.Equal(t, "350.50", userRows[1][7])
	assert.Equal(t, "1", userRows[1][10])

	alertsFile, err := os.Open(res.AlertsPath)
	require.NoError(t, err)
	defer alertsFile.Close()

	alertRows, err := csv.NewReader(alertsFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, alertRows, 2)

	assert.Equal(t, "value_mismatch", alertRows[1][2])
	assert.Equal(t, "error", alertRows[1][3])
	assert.Equal(t, "100.00", alertRows[1][6])
}

func TestService_SummaryText(t *testing.T) {
	svc := export.NewService()

	text := svc.SummaryText(sampleReport())

	assert.Contains(t, text, "Reconciliation report 2024-02-01 15:04")
	assert.Contains(t, text, "1 users, 2 statements, 3 invoices, 1 alerts (1 critical)")
	assert.Contains(t, text, "* Ana Souza | 2 statements (1 matched, 1 divergent) | 3 invoices | 1 alerts")
}

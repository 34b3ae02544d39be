package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ricardofs/confere/internal/recon"
)

// Result links a written report to the files it produced.
type Result struct {
	Report     *recon.GlobalReport
	UsersPath  string
	AlertsPath string
}

// Service writes reconciliation reports to disk so they can be shared
// outside the app.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Write renders the report as two CSV files in outputDir: one row per user
// summary and one row per alert. Filenames carry the report's generation
// timestamp.
func (s *Service) Write(report *recon.GlobalReport, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stamp := report.GeneratedAt.Format("20060102_150405")

	usersPath := filepath.Join(outputDir, fmt.Sprintf("reconciliation_users_%s.csv", stamp))
	if err := s.writeUsers(report, usersPath); err != nil {
		return nil, err
	}

	alertsPath := filepath.Join(outputDir, fmt.Sprintf("reconciliation_alerts_%s.csv", stamp))
	if err := s.writeAlerts(report, alertsPath); err != nil {
		return nil, err
	}

	return &Result{Report: report, UsersPath: usersPath, AlertsPath: alertsPath}, nil
}

func (s *Service) writeUsers(report *recon.GlobalReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating users csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"user_id", "name", "department", "statements", "matched", "divergent",
		"invoices", "approved_value", "pending_value", "rejected_value", "alerts",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing users header: %w", err)
	}

	for _, u := range report.Users {
		row := []string{
			u.UserID.String(),
			u.UserName,
			u.Department,
			strconv.Itoa(u.TotalStatements),
			strconv.Itoa(u.StatementsMatched),
			strconv.Itoa(u.StatementsDivergent),
			strconv.Itoa(u.TotalInvoices),
			u.TotalApprovedValue.StringFixed(2),
			u.TotalPendingValue.StringFixed(2),
			u.TotalRejectedValue.StringFixed(2),
			strconv.Itoa(len(u.Alerts)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing user row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing users csv: %w", err)
	}

	return nil
}

func (s *Service) writeAlerts(report *recon.GlobalReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating alerts csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"user", "alert_id", "type", "severity", "title", "statement_id", "value",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing alerts header: %w", err)
	}

	for _, u := range report.Users {
		for _, a := range u.Alerts {
			value := ""
			if a.Value != nil {
				value = a.Value.StringFixed(2)
			}

			row := []string{
				u.UserName,
				a.ID,
				string(a.Type),
				string(a.Severity),
				a.Title,
				a.StatementID.String(),
				value,
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("writing alert row: %w", err)
			}
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing alerts csv: %w", err)
	}

	return nil
}

// SummaryText renders a short plain-text digest of the report, one line per
// user, suitable for pasting into an email or chat message.
func (s *Service) SummaryText(report *recon.GlobalReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Reconciliation report %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "%d users, %d statements, %d invoices, %d alerts (%d critical)\n\n",
		len(report.Users), report.TotalStatements, report.TotalInvoices,
		report.TotalAlerts, report.CriticalAlerts)

	for _, u := range report.Users {
		fmt.Fprintf(&sb, "* %s | %d statements (%d matched, %d divergent) | %d invoices | %d alerts\n",
			u.UserName, u.TotalStatements, u.StatementsMatched,
			u.StatementsDivergent, u.TotalInvoices, len(u.Alerts))
	}

	return sb.String()
}

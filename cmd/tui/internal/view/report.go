package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ricardofs/confere/internal/recon"
)

// reportTimeout bounds a full report generation run, which fans out one
// summary per user.
const reportTimeout = 30 * time.Second

type reportState int

const (
	reportStateLoading reportState = iota
	reportStateBrowse
	reportStateDetail
)

type ReportModel struct {
	CommonModel
	reconService *recon.Service

	state   reportState
	spinner spinner.Model
	table   table.Model

	report    *recon.GlobalReport
	detailIdx int
	err       error
}

func NewReportModel(reconSvc *recon.Service) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	columns := []table.Column{
		{Title: "User", Width: 24},
		{Title: "Department", Width: 16},
		{Title: "Stmts", Width: 6},
		{Title: "Matched", Width: 8},
		{Title: "Divergent", Width: 10},
		{Title: "Invoices", Width: 9},
		{Title: "Alerts", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	return ReportModel{
		reconService: reconSvc,
		state:        reportStateLoading,
		spinner:      s,
		table:        t,
	}
}

func (m ReportModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadReportCmd())
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.state = reportStateBrowse
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.report = msg.report
		m.err = nil
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case reportStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case reportStateBrowse:
		return m.updateBrowse(msg)
	case reportStateDetail:
		return m.updateDetail(msg)
	}

	return m, nil
}

func (m ReportModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.state = reportStateLoading
			return m, tea.Batch(m.spinner.Tick, m.loadReportCmd())
		case "enter":
			idx := m.table.Cursor()
			if m.report != nil && idx >= 0 && idx < len(m.report.Users) {
				m.detailIdx = idx
				m.state = reportStateDetail
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReportModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reportStateBrowse
			return m, nil
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Generating reconciliation report...", m.spinner.View()),
		)

	case reportStateBrowse:
		return m.viewBrowse()

	case reportStateDetail:
		return m.viewDetail()
	}

	return ""
}

func (m ReportModel) viewBrowse() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\n(Esc to back)", m.err))
	}

	if m.report == nil || len(m.report.Users) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No users with statements or invoices.\n\n(Esc to back)")
	}

	header := fmt.Sprintf(
		"Reconciliation report %s | %d alerts (%d critical, %d warnings)",
		FormatDate(m.report.GeneratedAt),
		m.report.TotalAlerts, m.report.CriticalAlerts, m.report.WarningAlerts,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := lipgloss.NewStyle().Faint(true).
		Render("Enter: user detail | r: refresh | Esc: back")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
			footer,
		),
	)
}

func (m ReportModel) viewDetail() string {
	user := m.report.Users[m.detailIdx]

	var sb strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render(user.UserName)
	if user.Department != "" {
		title += lipgloss.NewStyle().Faint(true).Render(" - " + user.Department)
	}

	sb.WriteString(title + "\n\n")

	fmt.Fprintf(&sb, "Statements: %d (%d matched, %d divergent) | Invoices: %d (%d approved, %d pending, %d rejected)\n\n",
		user.TotalStatements, user.StatementsMatched, user.StatementsDivergent,
		user.TotalInvoices, user.InvoicesApproved, user.InvoicesPending, user.InvoicesRejected)

	for _, rec := range user.Statements {
		stmt := rec.Statement
		fmt.Fprintf(&sb, "%s  %s  declared %s / calculated %s (diff %s)\n",
			FormatPeriod(stmt.PeriodMonth, stmt.PeriodYear),
			reconStatusStyle(rec.Status),
			FormatValue(stmt.DeclaredTotal),
			FormatValue(stmt.CalculatedTotal),
			FormatValue(stmt.Difference),
		)
		fmt.Fprintf(&sb, "    %d matched, %d unmatched (%s), %d invoices missing from statement\n",
			len(rec.MatchedInvoices), len(rec.UnmatchedExpenses),
			FormatValue(rec.TotalUnmatchedValue), len(rec.InvoicesNotInStatement))
	}

	if len(user.Alerts) > 0 {
		sb.WriteString("\nAlerts:\n")

		for _, a := range user.Alerts {
			fmt.Fprintf(&sb, "  %s %s - %s\n", severityBadge(a.Severity), a.Title, a.Description)
		}
	}

	sb.WriteString("\n(Esc to go back)")

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

func reconStatusStyle(status recon.Status) string {
	switch status {
	case recon.StatusMatched:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(string(status))
	case recon.StatusDivergent:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(string(status))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(string(status))
	}
}

func severityBadge(sev recon.Severity) string {
	switch sev {
	case recon.SeverityError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("[error]")
	case recon.SeverityWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("[warn] ")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("[info] ")
	}
}

func (m *ReportModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.report.Users))
	for _, u := range m.report.Users {
		rows = append(rows, table.Row{
			u.UserName,
			u.Department,
			strconv.Itoa(u.TotalStatements),
			strconv.Itoa(u.StatementsMatched),
			strconv.Itoa(u.StatementsDivergent),
			strconv.Itoa(u.TotalInvoices),
			strconv.Itoa(len(u.Alerts)),
		})
	}
	m.table.SetRows(rows)
}

type loadReportMsg struct {
	report *recon.GlobalReport
	err    error
}

func (m ReportModel) loadReportCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		report, err := m.reconService.GenerateGlobalReport(ctx)

		return loadReportMsg{report: report, err: err}
	}
}

package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/ricardofs/confere/cmd/tui/internal/view"
	"github.com/ricardofs/confere/internal/config"
	"github.com/ricardofs/confere/internal/database"
	"github.com/ricardofs/confere/internal/export"
	"github.com/ricardofs/confere/internal/invoice"
	invoiceStore "github.com/ricardofs/confere/internal/invoice/store"
	"github.com/ricardofs/confere/internal/recon"
	reconStore "github.com/ricardofs/confere/internal/recon/store"
)

type model struct {
	reconService   *recon.Service
	invoiceService *invoice.Service
	exportService  *export.Service

	currentView View

	reportView   view.ReportModel
	approvalView view.ApprovalModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewReport   View = 1
	ViewApproval View = 2
	ViewExport   View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	reconSvc := recon.NewService(reconStore.New(db), cfg.Report.Workers)
	invoiceSvc := invoice.NewService(invoiceStore.New(db))
	exportSvc := export.NewService()

	return model{
		reconService:   reconSvc,
		invoiceService: invoiceSvc,
		exportService:  exportSvc,
		currentView:    ViewMenu,
		reportView:     view.NewReportModel(reconSvc),
		approvalView:   view.NewApprovalModel(invoiceSvc),
		exportView:     view.NewExportModel(reconSvc, exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.reconService)

				return m, m.reportView.Init()
			case "2":
				m.currentView = ViewApproval
				m.approvalView = view.NewApprovalModel(m.invoiceService)

				return m, m.approvalView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.reconService, m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewApproval:
		var newModel tea.Model
		newModel, cmd = m.approvalView.Update(msg)
		m.approvalView = newModel.(view.ApprovalModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Confere Admin\n\n" +
				"1. Reconciliation Report\n" +
				"2. Review Pending Invoices\n" +
				"3. Export Report to CSV\n\n" +
				"q. Quit",
		)
	case ViewReport:
		return m.reportView.View()
	case ViewApproval:
		return m.approvalView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ricardofs/confere/internal/invoice"
)

// ApprovalModel walks through pending invoices one at a time so an admin
// can approve or reject each.
type ApprovalModel struct {
	CommonModel
	invoiceService *invoice.Service

	queue      []*invoice.Invoice
	currentInv *invoice.Invoice

	loading    bool
	status     string
	totalCount int
}

func NewApprovalModel(invSvc *invoice.Service) ApprovalModel {
	return ApprovalModel{
		invoiceService: invSvc,
		loading:        true,
	}
}

func (m ApprovalModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m ApprovalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "a":
			if m.currentInv != nil {
				return m, m.decideCmd(invoice.StatusApproved)
			}
		case "r":
			if m.currentInv != nil {
				return m, m.decideCmd(invoice.StatusRejected)
			}
		case "s": // skip, keep pending
			if m.currentInv != nil {
				m.nextInvoice()
			}
		}

	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.invoices
		m.totalCount = len(m.queue)
		m.nextInvoice()

	case approvalActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		m.nextInvoice()
	}

	return m, nil
}

func (m ApprovalModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pending invoices...")
	}

	if m.currentInv == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No pending invoices found.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	date := "-"
	if m.currentInv.InvoiceDate != nil {
		date = FormatDate(*m.currentInv.InvoiceDate)
	}

	info := fmt.Sprintf(
		"Supplier: %s\nDescription: %s\nValue: %s\nDate: %s\n",
		m.currentInv.Supplier,
		m.currentInv.Description,
		FormatValue(m.currentInv.TotalValue),
		date,
	)

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("Pending Invoice (%d remaining)\n\n%s\n('a' approve, 'r' reject, 's' skip, Esc to back)",
			len(m.queue)+1, info),
	)
}

func (m *ApprovalModel) nextInvoice() {
	if len(m.queue) == 0 {
		m.currentInv = nil
		m.status = "All done!"

		return
	}

	m.currentInv = m.queue[0]
	m.queue = m.queue[1:]
}

type loadPendingMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m ApprovalModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		filter := invoice.ListFilter{Status: new(invoice.StatusPending)}
		invoices, err := m.invoiceService.List(ctx, filter)

		return loadPendingMsg{invoices: invoices, err: err}
	}
}

type approvalActionMsg struct {
	err error
}

func (m ApprovalModel) decideCmd(status invoice.Status) tea.Cmd {
	id := m.currentInv.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.invoiceService.UpdateStatus(ctx, id, status)

		return approvalActionMsg{err: err}
	}
}

package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ricardofs/confere/internal/invoice"
)

type invoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description,omitempty"`
	TotalValue  decimal.Decimal `json:"total_value"`
	InvoiceDate *time.Time      `json:"invoice_date,omitempty"`
	Status      invoice.Status  `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		UserID:      inv.UserID,
		Supplier:    inv.Supplier,
		Description: inv.Description,
		TotalValue:  inv.TotalValue,
		InvoiceDate: inv.InvoiceDate,
		Status:      inv.Status,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

func toResponseList(invs []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = toResponse(inv)
	}

	return resp
}

package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the approval state of an invoice.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known invoice statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// Invoice is a user-submitted receipt, independent of any statement.
// Reconciliation associates invoices to statements transiently by period
// overlap; there is no foreign key between the two.
type Invoice struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Supplier    string
	Description string
	TotalValue  decimal.Decimal
	InvoiceDate *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("invoice not found")
	ErrInvalidStatus = errors.New("invalid invoice status")

	// ErrInvalidParams marks requests rejected by validation, before any
	// store call. Handlers map it to a client error.
	ErrInvalidParams = errors.New("invalid invoice parameters")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID      uuid.UUID
	Supplier    string
	Description string
	TotalValue  decimal.Decimal
	InvoiceDate *time.Time
}

type ListFilter struct {
	UserID *uuid.UUID
	Status *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if params.Supplier == "" {
		return nil, fmt.Errorf("%w: supplier is required", ErrInvalidParams)
	}

	if params.TotalValue.IsNegative() {
		return nil, fmt.Errorf("%w: total value must not be negative", ErrInvalidParams)
	}

	inv := &Invoice{
		UserID:      params.UserID,
		Supplier:    params.Supplier,
		Description: params.Description,
		TotalValue:  params.TotalValue,
		InvoiceDate: params.InvoiceDate,
		Status:      StatusPending,
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

// UpdateStatus moves an invoice through the approval workflow.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

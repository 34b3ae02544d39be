package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ricardofs/confere/internal/invoice"
)

func TestService_Create(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	repoErr := errors.New("db error")

	type testCase struct {
		name      string
		params    invoice.CreateParams
		setupMock func(m *invoice.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: invoice.CreateParams{
				UserID:      uuid.New(),
				Supplier:    "Uber Brasil",
				Description: "Corrida aeroporto",
				TotalValue:  decimal.RequireFromString("45.00"),
				InvoiceDate: &date,
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
						inv.ID = uuid.New()
						inv.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: nil,
		},
		{
			name: "MissingSupplier",
			params: invoice.CreateParams{
				UserID:     uuid.New(),
				TotalValue: decimal.RequireFromString("10.00"),
			},
			wantErr: invoice.ErrInvalidParams,
		},
		{
			name: "NegativeTotal",
			params: invoice.CreateParams{
				UserID:     uuid.New(),
				Supplier:   "Posto Shell",
				TotalValue: decimal.RequireFromString("-1.00"),
			},
			wantErr: invoice.ErrInvalidParams,
		},
		{
			name: "RepoError",
			params: invoice.CreateParams{
				UserID:     uuid.New(),
				Supplier:   "Posto Shell",
				TotalValue: decimal.RequireFromString("200.00"),
			},
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(repoErr)
			},
			wantErr: repoErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := invoice.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, invoice.StatusPending, got.Status)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo)

	id := uuid.New()
	repo.EXPECT().UpdateStatus(gomock.Any(), id, invoice.StatusApproved).Return(nil)

	err := svc.UpdateStatus(context.Background(), id, invoice.StatusApproved)
	require.NoError(t, err)
}

func TestService_UpdateStatus_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo)

	err := svc.UpdateStatus(context.Background(), uuid.New(), invoice.Status("paid"))
	assert.ErrorIs(t, err, invoice.ErrInvalidStatus)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	svc := invoice.NewService(repo)

	status := invoice.StatusPending
	filter := invoice.ListFilter{Status: &status}

	repo.EXPECT().
		ListInvoices(gomock.Any(), filter).
		Return([]*invoice.Invoice{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

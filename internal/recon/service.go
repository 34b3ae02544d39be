package recon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ricardofs/confere/internal/invoice"
	"github.com/ricardofs/confere/internal/statement"
)

// Profile is the slice of a user's identity the reports need.
type Profile struct {
	UserID     uuid.UUID
	FullName   string
	Department string
}

// fallbackUserName is shown when a user has data but no profile row.
const fallbackUserName = "Unknown user"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recon
type Repository interface {
	// GetProfile returns (nil, nil) when the user has no profile; that is
	// not a failure.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
	ListStatements(ctx context.Context, userID uuid.UUID) ([]statement.Statement, error)
	ListExpenses(ctx context.Context, statementID uuid.UUID) ([]statement.Expense, error)
	ListInvoices(ctx context.Context, userID uuid.UUID) ([]invoice.Invoice, error)
}

// UserSummary rolls one user's statement reconciliations and invoice
// workflow state into a single report entry. Transient, like everything the
// reconciler produces.
type UserSummary struct {
	UserID              uuid.UUID
	UserName            string
	Department          string
	Statements          []StatementReconciliation
	Invoices            []invoice.Invoice
	TotalStatements     int
	TotalInvoices       int
	StatementsMatched   int
	StatementsDivergent int
	InvoicesApproved    int
	InvoicesPending     int
	InvoicesRejected    int
	TotalApprovedValue  decimal.Decimal
	TotalPendingValue   decimal.Decimal
	TotalRejectedValue  decimal.Decimal
	Alerts              []Alert
}

// GlobalReport aggregates every user with data.
type GlobalReport struct {
	Users           []UserSummary
	TotalAlerts     int
	CriticalAlerts  int
	WarningAlerts   int
	TotalStatements int
	TotalInvoices   int
	GeneratedAt     time.Time
}

type Service struct {
	repo    Repository
	workers int
}

// NewService builds the aggregation service. workers bounds how many users
// are summarized concurrently during global report generation.
func NewService(repo Repository, workers int) *Service {
	if workers < 1 {
		workers = 1
	}

	return &Service{repo: repo, workers: workers}
}

// GenerateUserSummary fetches one user's statements and invoices and
// reconciles every statement independently against the full invoice set.
// Fetches run concurrently; the reconciliation itself is pure computation.
//
// A user with no data yields a summary with zero counts. An error is
// returned only when the store fails, so callers can always tell "nothing to
// report" apart from "could not fetch".
func (s *Service) GenerateUserSummary(ctx context.Context, userID uuid.UUID) (*UserSummary, error) {
	var (
		profile *Profile
		stmts   []statement.Statement
		invs    []invoice.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if profile, err = s.repo.GetProfile(gctx, userID); err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error
		if stmts, err = s.repo.ListStatements(gctx, userID); err != nil {
			return fmt.Errorf("fetching statements: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		var err error
		if invs, err = s.repo.ListInvoices(gctx, userID); err != nil {
			return fmt.Errorf("fetching invoices: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// One expense fetch per statement, concurrently; results keep statement
	// order regardless of completion order.
	recons := make([]StatementReconciliation, len(stmts))

	eg, egctx := errgroup.WithContext(ctx)

	for i, stmt := range stmts {
		eg.Go(func() error {
			exps, err := s.repo.ListExpenses(egctx, stmt.ID)
			if err != nil {
				return fmt.Errorf("fetching expenses for statement %s: %w", stmt.ID, err)
			}

			recons[i] = ReconcileStatement(stmt, exps, invs)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary := &UserSummary{
		UserID:             userID,
		UserName:           fallbackUserName,
		Statements:         recons,
		Invoices:           invs,
		TotalStatements:    len(stmts),
		TotalInvoices:      len(invs),
		TotalApprovedValue: decimal.Zero,
		TotalPendingValue:  decimal.Zero,
		TotalRejectedValue: decimal.Zero,
	}

	if profile != nil {
		summary.UserName = profile.FullName
		summary.Department = profile.Department
	}

	for _, stmt := range stmts {
		switch stmt.Status {
		case statement.StatusMatched:
			summary.StatementsMatched++
		case statement.StatusDivergent:
			summary.StatementsDivergent++
		}
	}

	for _, inv := range invs {
		switch inv.Status {
		case invoice.StatusApproved:
			summary.InvoicesApproved++
			summary.TotalApprovedValue = summary.TotalApprovedValue.Add(inv.TotalValue)
		case invoice.StatusPending:
			summary.InvoicesPending++
			summary.TotalPendingValue = summary.TotalPendingValue.Add(inv.TotalValue)
		case invoice.StatusRejected:
			summary.InvoicesRejected++
			summary.TotalRejectedValue = summary.TotalRejectedValue.Add(inv.TotalValue)
		}
	}

	for _, rec := range recons {
		summary.Alerts = append(summary.Alerts, rec.Alerts...)
	}

	return summary, nil
}

// GenerateGlobalReport summarizes every known user, keeping only users with
// at least one statement or invoice. Users are processed concurrently up to
// the worker bound; cancelling ctx stops scheduling further users.
func (s *Service) GenerateGlobalReport(ctx context.Context) (*GlobalReport, error) {
	ids, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	summaries := make([]*UserSummary, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			sum, err := s.GenerateUserSummary(gctx, id)
			if err != nil {
				return err
			}

			summaries[i] = sum

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &GlobalReport{
		GeneratedAt: time.Now().UTC(),
	}

	for _, sum := range summaries {
		if sum == nil || (sum.TotalStatements == 0 && sum.TotalInvoices == 0) {
			continue
		}

		report.Users = append(report.Users, *sum)
		report.TotalStatements += sum.TotalStatements
		report.TotalInvoices += sum.TotalInvoices
		report.TotalAlerts += len(sum.Alerts)

		for _, a := range sum.Alerts {
			switch a.Severity {
			case SeverityError:
				report.CriticalAlerts++
			case SeverityWarning:
				report.WarningAlerts++
			}
		}
	}

	return report, nil
}

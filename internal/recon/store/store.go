package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ricardofs/confere/internal/invoice"
	"github.com/ricardofs/confere/internal/recon"
	"github.com/ricardofs/confere/internal/statement"
)

// Store serves the read side of report generation. It returns value slices
// because reconciliation only ever consumes snapshots; nothing written here
// flows back to the database.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetProfile returns (nil, nil) when the user has no profile row.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*recon.Profile, error) {
	query := `SELECT id, full_name, department FROM profiles WHERE id = $1`

	var p recon.Profile

	var department sql.NullString

	err := s.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.FullName, &department)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	p.Department = department.String

	return &p, nil
}

// ListUserIDs returns every user that owns a profile, a statement or an
// invoice. Users without a profile still show up in reports.
func (s *Store) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM profiles
		UNION
		SELECT user_id FROM statements
		UNION
		SELECT user_id FROM invoices
		ORDER BY 1
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing user ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user ids: %w", err)
	}

	return ids, nil
}

func (s *Store) ListStatements(ctx context.Context, userID uuid.UUID) ([]statement.Statement, error) {
	query := `
		SELECT id, user_id, period_month, period_year, declared_total,
			calculated_total, difference, status, pdf_url, created_at, updated_at
		FROM statements WHERE user_id = $1 ORDER BY period_year DESC, period_month DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing statements: %w", err)
	}
	defer rows.Close()

	var stmts []statement.Statement

	for rows.Next() {
		var stmt statement.Statement

		var statusStr string

		var pdfURL sql.NullString

		if err := rows.Scan(
			&stmt.ID, &stmt.UserID, &stmt.PeriodMonth, &stmt.PeriodYear,
			&stmt.DeclaredTotal, &stmt.CalculatedTotal, &stmt.Difference,
			&statusStr, &pdfURL, &stmt.CreatedAt, &stmt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning statement: %w", err)
		}

		stmt.Status = statement.Status(statusStr)
		stmt.PDFURL = pdfURL.String

		stmts = append(stmts, stmt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statements: %w", err)
	}

	return stmts, nil
}

func (s *Store) ListExpenses(ctx context.Context, statementID uuid.UUID) ([]statement.Expense, error) {
	query := `
		SELECT id, statement_id, user_id, description, value, date, created_at
		FROM expenses WHERE statement_id = $1
		ORDER BY date ASC NULLS LAST, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, statementID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var exps []statement.Expense

	for rows.Next() {
		var exp statement.Expense

		var date sql.NullTime

		if err := rows.Scan(
			&exp.ID, &exp.StatementID, &exp.UserID, &exp.Description, &exp.Value,
			&date, &exp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		if date.Valid {
			d := date.Time
			exp.Date = &d
		}

		exps = append(exps, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return exps, nil
}

func (s *Store) ListInvoices(ctx context.Context, userID uuid.UUID) ([]invoice.Invoice, error) {
	query := `
		SELECT id, user_id, supplier, description, total_value, invoice_date,
			status, created_at, updated_at
		FROM invoices WHERE user_id = $1 ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []invoice.Invoice

	for rows.Next() {
		var inv invoice.Invoice

		var statusStr string

		var (
			description sql.NullString
			invDate     sql.NullTime
			updatedAt   sql.NullTime
		)

		if err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.Supplier, &description, &inv.TotalValue,
			&invDate, &statusStr, &inv.CreatedAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		inv.Description = description.String
		inv.Status = invoice.Status(statusStr)

		if invDate.Valid {
			d := invDate.Time
			inv.InvoiceDate = &d
		}

		if updatedAt.Valid {
			u := updatedAt.Time
			inv.UpdatedAt = &u
		}

		invs = append(invs, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return invs, nil
}

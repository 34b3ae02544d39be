package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ricardofs/confere/internal/statement"
)

// pgUniqueViolation is the Postgres error code raised when the
// (user_id, period_month, period_year) unique index is hit.
const pgUniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectStatementColumns = `
	id, user_id, period_month, period_year, declared_total, calculated_total,
	difference, status, pdf_url, created_at, updated_at
`

func scanStatement(s scanner) (*statement.Statement, error) {
	var stmt statement.Statement

	var statusStr string

	var pdfURL sql.NullString

	if err := s.Scan(
		&stmt.ID, &stmt.UserID, &stmt.PeriodMonth, &stmt.PeriodYear,
		&stmt.DeclaredTotal, &stmt.CalculatedTotal, &stmt.Difference,
		&statusStr, &pdfURL, &stmt.CreatedAt, &stmt.UpdatedAt,
	); err != nil {
		return nil, err
	}

	stmt.Status = statement.Status(statusStr)
	stmt.PDFURL = pdfURL.String

	return &stmt, nil
}

const selectExpenseColumns = `
	id, statement_id, user_id, description, value, date, created_at
`

func scanExpense(s scanner) (*statement.Expense, error) {
	var exp statement.Expense

	var date sql.NullTime

	if err := s.Scan(
		&exp.ID, &exp.StatementID, &exp.UserID, &exp.Description, &exp.Value,
		&date, &exp.CreatedAt,
	); err != nil {
		return nil, err
	}

	if date.Valid {
		d := date.Time
		exp.Date = &d
	}

	return &exp, nil
}

// CreateStatement inserts the statement and its expenses in one transaction.
// A unique-index violation on the period maps to ErrDuplicatePeriod.
func (s *Store) CreateStatement(ctx context.Context, stmt *statement.Statement, expenses []*statement.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning statement create: %w", err)
	}
	defer tx.Rollback()

	insertStmt := `
		INSERT INTO statements (user_id, period_month, period_year, declared_total,
			calculated_total, difference, status, pdf_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, insertStmt,
		stmt.UserID,
		stmt.PeriodMonth,
		stmt.PeriodYear,
		stmt.DeclaredTotal,
		stmt.CalculatedTotal,
		stmt.Difference,
		stmt.Status,
		nullableString(stmt.PDFURL),
	).Scan(&stmt.ID, &stmt.CreatedAt, &stmt.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return statement.ErrDuplicatePeriod
		}

		return fmt.Errorf("creating statement: %w", err)
	}

	insertExp := `
		INSERT INTO expenses (statement_id, user_id, description, value, date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	for _, exp := range expenses {
		exp.StatementID = stmt.ID

		err := tx.QueryRowContext(ctx, insertExp,
			exp.StatementID,
			exp.UserID,
			exp.Description,
			exp.Value,
			exp.Date,
		).Scan(&exp.ID, &exp.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing statement create: %w", err)
	}

	return nil
}

func (s *Store) GetStatement(ctx context.Context, id uuid.UUID) (*statement.Statement, error) {
	query := `SELECT ` + selectStatementColumns + ` FROM statements WHERE id = $1`

	stmt, err := scanStatement(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, statement.ErrNotFound
		}

		return nil, fmt.Errorf("getting statement: %w", err)
	}

	return stmt, nil
}

func (s *Store) ListStatements(ctx context.Context, userID uuid.UUID) ([]*statement.Statement, error) {
	query := `SELECT ` + selectStatementColumns + `
		FROM statements WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing statements: %w", err)
	}
	defer rows.Close()

	var stmts []*statement.Statement

	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning statement: %w", err)
		}

		stmts = append(stmts, stmt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statements: %w", err)
	}

	return stmts, nil
}

// DeleteStatement removes a statement; expenses cascade via the FK.
func (s *Store) DeleteStatement(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM statements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting statement: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return statement.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateTotals(ctx context.Context, stmt *statement.Statement) error {
	query := `
		UPDATE statements
		SET calculated_total = $1, difference = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query,
		stmt.CalculatedTotal, stmt.Difference, stmt.Status, stmt.ID)
	if err != nil {
		return fmt.Errorf("updating statement totals: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return statement.ErrNotFound
	}

	return nil
}

func (s *Store) ListExpenses(ctx context.Context, statementID uuid.UUID) ([]*statement.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses WHERE statement_id = $1 ORDER BY date ASC NULLS LAST, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, statementID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var exps []*statement.Expense

	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		exps = append(exps, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return exps, nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*statement.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE id = $1`

	exp, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, statement.ErrExpenseNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return exp, nil
}

func (s *Store) UpdateExpense(ctx context.Context, exp *statement.Expense) error {
	query := `
		UPDATE expenses SET description = $1, value = $2, date = $3 WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, exp.Description, exp.Value, exp.Date, exp.ID)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return statement.ErrExpenseNotFound
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return statement.ErrExpenseNotFound
	}

	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

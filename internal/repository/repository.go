// Package repository implements the PostgreSQL-backed stores the
// reminder engine and HTTP boundary depend on.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vinledger/vinledger/internal/domain"
)

// Store provides ledger reads, the settings table and the append-only
// email log over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const debtColumns = `
	d.id, d.customer_id, c.name, COALESCE(c.phone, ''), COALESCE(c.email, ''),
	d.items, d.total_amount, d.amount_paid, d.date_of_purchase, d.due_date,
	COALESCE(d.reference, ''), d.status, d.branch_id, COALESCE(b.name, '')`

// DebtByID returns one debt joined with its customer contact details and
// branch name. Missing debts yield a domain ENOTFOUND error.
func (s *Store) DebtByID(ctx context.Context, id int64) (*domain.Debt, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT`+debtColumns+`
		FROM debts d
		JOIN customers c ON d.customer_id = c.id
		LEFT JOIN branches b ON d.branch_id = b.id
		WHERE d.id = $1`, id)

	debt, err := scanDebt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Errorf(domain.ENOTFOUND, "debt.get", "Debt not found")
		}
		return nil, domain.WrapError(err, domain.EINTERNAL, "debt.get", "failed to load debt")
	}
	return debt, nil
}

// OverdueDebts returns debts whose status is Overdue, oldest due date
// first, optionally restricted to one branch.
func (s *Store) OverdueDebts(ctx context.Context, branchID *int64) ([]domain.Debt, error) {
	query := `
		SELECT` + debtColumns + `
		FROM debts d
		JOIN customers c ON d.customer_id = c.id
		LEFT JOIN branches b ON d.branch_id = b.id
		WHERE d.status = $1`
	args := []any{domain.DebtStatusOverdue}
	if branchID != nil {
		query += ` AND d.branch_id = $2`
		args = append(args, *branchID)
	}
	query += ` ORDER BY d.due_date ASC, d.id ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "debt.overdue", "failed to query overdue debts")
	}
	defer rows.Close()

	var debts []domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, domain.WrapError(err, domain.EINTERNAL, "debt.overdue", "failed to scan debt")
		}
		debts = append(debts, *debt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "debt.overdue", "failed to read overdue debts")
	}
	return debts, nil
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(
		&d.ID, &d.CustomerID, &d.CustomerName, &d.CustomerPhone, &d.CustomerEmail,
		&d.Items, &d.TotalAmount, &d.AmountPaid, &d.DateOfPurchase, &d.DueDate,
		&d.Reference, &d.Status, &d.BranchID, &d.BranchName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetSettings returns the settings table as a key/value map.
func (s *Store) GetSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "settings.get", "failed to query settings")
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, domain.WrapError(err, domain.EINTERNAL, "settings.get", "failed to scan setting")
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "settings.get", "failed to read settings")
	}
	return values, nil
}

// UpdateSettings upserts the given keys, leaving others untouched.
func (s *Store) UpdateSettings(ctx context.Context, values map[string]string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "settings.update", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	for k, v := range values {
		if _, err := tx.Exec(ctx, `
			INSERT INTO settings (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, k, v); err != nil {
			return domain.WrapError(err, domain.EINTERNAL, "settings.update", "failed to write setting")
		}
	}
	return tx.Commit(ctx)
}

// AppendEmailLog inserts one delivery audit record. Rows are never
// updated afterwards.
func (s *Store) AppendEmailLog(ctx context.Context, entry domain.EmailLogEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO email_logs (customer_id, debt_id, recipient, subject, body_snippet, status, response, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.CustomerID, entry.DebtID, entry.Recipient, entry.Subject,
		entry.BodySnippet, entry.Status, entry.Response, entry.SentAt,
	)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "emaillog.append", "failed to append email log")
	}
	return nil
}

// ListEmailLogs returns the newest limit entries, most recent first.
func (s *Store) ListEmailLogs(ctx context.Context, limit int) ([]domain.EmailLogEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_id, debt_id, recipient, subject, body_snippet, status, response, sent_at
		FROM email_logs
		ORDER BY sent_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "emaillog.list", "failed to query email logs")
	}
	defer rows.Close()

	var entries []domain.EmailLogEntry
	for rows.Next() {
		var e domain.EmailLogEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.DebtID, &e.Recipient, &e.Subject,
			&e.BodySnippet, &e.Status, &e.Response, &e.SentAt); err != nil {
			return nil, domain.WrapError(err, domain.EINTERNAL, "emaillog.list", "failed to scan email log")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "emaillog.list", "failed to read email logs")
	}
	return entries, nil
}

// ListBranches returns active branches for the dispatch filter.
func (s *Store) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, active FROM branches WHERE active ORDER BY name`)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "branch.list", "failed to query branches")
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Active); err != nil {
			return nil, domain.WrapError(err, domain.EINTERNAL, "branch.list", "failed to scan branch")
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "branch.list", "failed to read branches")
	}
	return branches, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

const paymentColumns = `id, member_id, cooperative_id, amount_due, amount_paid, amount_remaining, status, created_at, updated_at`

// FindOpenPayment returns the single open payment for a member in a
// cooperative, or nil when none exists. Finding more than one is an
// invariant violation: the schema's partial unique index should make that
// impossible. With lock set, the row is read FOR UPDATE so a concurrent
// settlement blocks until this transaction finishes.
func (r *Repository) FindOpenPayment(ctx context.Context, memberID, cooperativeID string, lock bool) (*models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE member_id = $1 AND cooperative_id = $2 AND amount_remaining > 0
		ORDER BY created_at`
	if lock {
		query += ` FOR UPDATE`
	}
	rows, err := r.db.QueryContext(ctx, query, memberID, cooperativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open payment: %w", err)
	}
	defer rows.Close()

	var open []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		open = append(open, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open payments: %w", err)
	}

	switch len(open) {
	case 0:
		return nil, nil
	case 1:
		return &open[0], nil
	default:
		return nil, apperrors.NewInvariant("FindOpenPayment",
			"found %d open payments for member %s in cooperative %s", len(open), memberID, cooperativeID)
	}
}

// CreatePayment persists a new payment row. A unique violation on the
// open-payment index means a concurrent settlement created one first; that
// surfaces as a retryable conflict.
func (r *Repository) CreatePayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, member_id, cooperative_id, amount_due, amount_paid, amount_remaining, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.MemberID, p.CooperativeID, p.AmountDue, p.AmountPaid, p.AmountRemaining, p.Status).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return apperrors.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// UpdatePayment rewrites a payment's settlement amounts and status.
func (r *Repository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	query := `
		UPDATE payments
		SET amount_paid = $2, amount_remaining = $3, status = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.AmountPaid, p.AmountRemaining, p.Status).
		Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// ListPayments retrieves all payments for a member in a cooperative, most
// recent first.
func (r *Repository) ListPayments(ctx context.Context, memberID, cooperativeID string) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE member_id = $1 AND cooperative_id = $2
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID, cooperativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListOpenPaymentsOlderThan returns open payments across all members whose
// last update is older than the given interval in days. The reminder job
// uses it to nudge members with stale partial balances.
func (r *Repository) ListOpenPaymentsOlderThan(ctx context.Context, days int) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE amount_remaining > 0 AND updated_at < CURRENT_TIMESTAMP - make_interval(days => $1)
		ORDER BY updated_at`
	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale open payments: %w", err)
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(rows *sql.Rows, p *models.Payment) error {
	if err := rows.Scan(&p.ID, &p.MemberID, &p.CooperativeID,
		&p.AmountDue, &p.AmountPaid, &p.AmountRemaining, &p.Status,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to scan payment: %w", err)
	}
	return nil
}

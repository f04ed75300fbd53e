package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// CreateProduction records a member's delivered produce for a season.
func (r *Repository) CreateProduction(ctx context.Context, p *models.Production) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.TotalPrice == 0 {
		p.TotalPrice = p.Quantity * p.UnitPrice
	}
	query := `
		INSERT INTO productions (id, member_id, cooperative_id, season_id, product_id, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.MemberID, p.CooperativeID, p.SeasonID, p.ProductID,
		p.Quantity, p.UnitPrice, p.TotalPrice).
		Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create production: %w", err)
	}
	return nil
}

// ListProductions retrieves all production rows for a member in a
// cooperative, oldest first.
func (r *Repository) ListProductions(ctx context.Context, memberID, cooperativeID string) ([]models.Production, error) {
	query := `
		SELECT id, member_id, cooperative_id, season_id, product_id, quantity, unit_price, total_price, settled_payment_id, created_at
		FROM productions
		WHERE member_id = $1 AND cooperative_id = $2
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, memberID, cooperativeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query productions: %w", err)
	}
	defer rows.Close()

	var out []models.Production
	for rows.Next() {
		var p models.Production
		if err := rows.Scan(&p.ID, &p.MemberID, &p.CooperativeID, &p.SeasonID, &p.ProductID,
			&p.Quantity, &p.UnitPrice, &p.TotalPrice, &p.SettledPaymentID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan production: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumUnconsumedProduction returns the total value of production rows not yet
// consumed by a fully settled payment.
func (r *Repository) SumUnconsumedProduction(ctx context.Context, memberID, cooperativeID string) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(total_price), 0)
		FROM productions
		WHERE member_id = $1 AND cooperative_id = $2 AND settled_payment_id IS NULL`
	if err := r.db.QueryRowContext(ctx, query, memberID, cooperativeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum production: %w", err)
	}
	return total, nil
}

// MarkProductionsConsumed stamps the member's unconsumed production rows
// with the payment that settled against them. Only rows that existed when
// the payment was created are stamped; produce delivered while the payment
// was open stays unconsumed until a later settlement credits its value.
func (r *Repository) MarkProductionsConsumed(ctx context.Context, memberID, cooperativeID, paymentID string) error {
	if _, err := uuid.Parse(paymentID); err != nil {
		return fmt.Errorf("invalid payment id %q: %w", paymentID, err)
	}
	query := `
		UPDATE productions
		SET settled_payment_id = $3
		WHERE member_id = $1 AND cooperative_id = $2 AND settled_payment_id IS NULL
			AND created_at <= (SELECT created_at FROM payments WHERE id = $3)`
	if _, err := r.db.ExecContext(ctx, query, memberID, cooperativeID, paymentID); err != nil {
		return fmt.Errorf("failed to mark productions consumed: %w", err)
	}
	return nil
}

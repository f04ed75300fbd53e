package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

const feeColumns = `id, member_id, cooperative_id, season_id, fee_type_id, amount_owed, amount_paid, status, created_at`

// CreateFee creates a new fee row for a member.
func (r *Repository) CreateFee(ctx context.Context, fee *models.Fee) error {
	if fee.ID == "" {
		fee.ID = uuid.New().String()
	}
	if fee.Status == "" {
		fee.Status = models.FeeStatusFor(fee.AmountPaid, fee.AmountOwed)
	}
	query := `
		INSERT INTO fees (id, member_id, cooperative_id, season_id, fee_type_id, amount_owed, amount_paid, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		fee.ID, fee.MemberID, fee.CooperativeID, fee.SeasonID, fee.FeeTypeID,
		fee.AmountOwed, fee.AmountPaid, fee.Status).
		Scan(&fee.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fee: %w", err)
	}
	return nil
}

// ListFees retrieves all fees for a member in a cooperative, oldest first.
func (r *Repository) ListFees(ctx context.Context, memberID, cooperativeID string) ([]models.Fee, error) {
	query := `
		SELECT ` + feeColumns + `
		FROM fees
		WHERE member_id = $1 AND cooperative_id = $2
		ORDER BY created_at, id`
	return r.scanFees(ctx, query, memberID, cooperativeID)
}

// ListUnpaidFees retrieves fees that still carry an outstanding balance,
// oldest first. Settlement consumes them in this order.
func (r *Repository) ListUnpaidFees(ctx context.Context, memberID, cooperativeID string) ([]models.Fee, error) {
	query := `
		SELECT ` + feeColumns + `
		FROM fees
		WHERE member_id = $1 AND cooperative_id = $2 AND status <> 'paid'
		ORDER BY created_at, id`
	return r.scanFees(ctx, query, memberID, cooperativeID)
}

// SumUnpaidFees returns the total outstanding fee balance for a member.
func (r *Repository) SumUnpaidFees(ctx context.Context, memberID, cooperativeID string) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(amount_owed - amount_paid), 0)
		FROM fees
		WHERE member_id = $1 AND cooperative_id = $2 AND status <> 'paid'`
	if err := r.db.QueryRowContext(ctx, query, memberID, cooperativeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum unpaid fees: %w", err)
	}
	return total, nil
}

// ApplyFeePayment adds amount to a fee's paid total and re-derives its
// status. The WHERE guard keeps amount_paid from ever exceeding amount_owed;
// a zero row count therefore signals a ledger inconsistency, not a miss.
func (r *Repository) ApplyFeePayment(ctx context.Context, feeID string, amount int64) error {
	query := `
		UPDATE fees
		SET amount_paid = amount_paid + $2,
		    status = CASE WHEN amount_paid + $2 >= amount_owed THEN 'paid' ELSE 'partial' END
		WHERE id = $1 AND amount_paid + $2 <= amount_owed`
	res, err := r.db.ExecContext(ctx, query, feeID, amount)
	if err != nil {
		return fmt.Errorf("failed to apply fee payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to apply fee payment: %w", err)
	}
	if n == 0 {
		return apperrors.NewInvariant("ApplyFeePayment", "payment of %d would overpay fee %s", amount, feeID)
	}
	return nil
}

// ListAutoApplyFeeTypes returns fee types flagged for automatic assignment
// whose season is still active.
func (r *Repository) ListAutoApplyFeeTypes(ctx context.Context) ([]models.FeeType, error) {
	query := `
		SELECT ft.id, ft.cooperative_id, ft.season_id, ft.name, ft.amount, ft.auto_apply, ft.created_at
		FROM fee_types ft
		JOIN seasons s ON s.id = ft.season_id
		WHERE ft.auto_apply AND s.status = 'active'
		ORDER BY ft.created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-apply fee types: %w", err)
	}
	defer rows.Close()

	var out []models.FeeType
	for rows.Next() {
		var ft models.FeeType
		if err := rows.Scan(&ft.ID, &ft.CooperativeID, &ft.SeasonID, &ft.Name, &ft.Amount, &ft.AutoApply, &ft.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fee type: %w", err)
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

// InsertMissingFees creates a fee row for every member of the fee type's
// cooperative who does not yet have one for that type and season. Returns
// the number of rows created.
func (r *Repository) InsertMissingFees(ctx context.Context, ft models.FeeType) (int64, error) {
	query := `
		INSERT INTO fees (id, member_id, cooperative_id, season_id, fee_type_id, amount_owed, amount_paid, status, created_at)
		SELECT gen_random_uuid(), u.id, $1, $2, $3, $4, 0, 'unpaid', CURRENT_TIMESTAMP
		FROM users u
		WHERE u.cooperative_id = $1 AND u.role = 'member'
		  AND NOT EXISTS (
			SELECT 1 FROM fees f
			WHERE f.member_id = u.id AND f.fee_type_id = $3 AND f.season_id = $2
		  )`
	res, err := r.db.ExecContext(ctx, query, ft.CooperativeID, ft.SeasonID, ft.ID, ft.Amount)
	if err != nil {
		return 0, fmt.Errorf("failed to auto-apply fee type %s: %w", ft.ID, err)
	}
	return res.RowsAffected()
}

func (r *Repository) scanFees(ctx context.Context, query string, args ...any) ([]models.Fee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fees: %w", err)
	}
	defer rows.Close()

	var out []models.Fee
	for rows.Next() {
		var f models.Fee
		if err := rows.Scan(&f.ID, &f.MemberID, &f.CooperativeID, &f.SeasonID, &f.FeeTypeID,
			&f.AmountOwed, &f.AmountPaid, &f.Status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fee: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

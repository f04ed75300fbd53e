package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

const loanColumns = `id, member_id, cooperative_id, amount_owed, amount_paid, status, created_at`

// CreateLoan creates a new loan row for a member.
func (r *Repository) CreateLoan(ctx context.Context, loan *models.Loan) error {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	if loan.Status == "" {
		loan.Status = models.LoanStatusOpen
	}
	query := `
		INSERT INTO loans (id, member_id, cooperative_id, amount_owed, amount_paid, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		loan.ID, loan.MemberID, loan.CooperativeID, loan.AmountOwed, loan.AmountPaid, loan.Status).
		Scan(&loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// ListLoans retrieves all loans for a member in a cooperative, oldest first.
func (r *Repository) ListLoans(ctx context.Context, memberID, cooperativeID string) ([]models.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE member_id = $1 AND cooperative_id = $2
		ORDER BY created_at, id`
	return r.scanLoans(ctx, query, memberID, cooperativeID)
}

// ListOpenLoans retrieves loans that are not yet settled, oldest first.
// Settlement consumes them in this order, after fees.
func (r *Repository) ListOpenLoans(ctx context.Context, memberID, cooperativeID string) ([]models.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE member_id = $1 AND cooperative_id = $2 AND status = 'open'
		ORDER BY created_at, id`
	return r.scanLoans(ctx, query, memberID, cooperativeID)
}

// SumOpenLoans returns the total outstanding loan balance for a member.
func (r *Repository) SumOpenLoans(ctx context.Context, memberID, cooperativeID string) (int64, error) {
	var total int64
	query := `
		SELECT COALESCE(SUM(amount_owed - amount_paid), 0)
		FROM loans
		WHERE member_id = $1 AND cooperative_id = $2 AND status = 'open'`
	if err := r.db.QueryRowContext(ctx, query, memberID, cooperativeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum open loans: %w", err)
	}
	return total, nil
}

// ApplyLoanPayment adds amount to a loan's paid total, settling it when the
// full balance is covered. Same overpay guard as ApplyFeePayment.
func (r *Repository) ApplyLoanPayment(ctx context.Context, loanID string, amount int64) error {
	query := `
		UPDATE loans
		SET amount_paid = amount_paid + $2,
		    status = CASE WHEN amount_paid + $2 >= amount_owed THEN 'settled' ELSE 'open' END
		WHERE id = $1 AND amount_paid + $2 <= amount_owed`
	res, err := r.db.ExecContext(ctx, query, loanID, amount)
	if err != nil {
		return fmt.Errorf("failed to apply loan payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to apply loan payment: %w", err)
	}
	if n == 0 {
		return apperrors.NewInvariant("ApplyLoanPayment", "payment of %d would overpay loan %s", amount, loanID)
	}
	return nil
}

func (r *Repository) scanLoans(ctx context.Context, query string, args ...any) ([]models.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var out []models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.MemberID, &l.CooperativeID,
			&l.AmountOwed, &l.AmountPaid, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

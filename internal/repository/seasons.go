package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// CreateSeason creates a new season for a cooperative.
func (r *Repository) CreateSeason(ctx context.Context, s *models.Season) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = models.SeasonStatusActive
	}
	query := `
		INSERT INTO seasons (id, cooperative_id, name, status, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, s.ID, s.CooperativeID, s.Name, s.Status).
		Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

// FindActiveSeason returns the cooperative's current active season. Fee and
// production creation default to it when no season is given.
func (r *Repository) FindActiveSeason(ctx context.Context, cooperativeID string) (*models.Season, error) {
	s := &models.Season{}
	query := `
		SELECT id, cooperative_id, name, status, created_at
		FROM seasons
		WHERE cooperative_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, cooperativeID).
		Scan(&s.ID, &s.CooperativeID, &s.Name, &s.Status, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active season: %w", err)
	}
	return s, nil
}

// CreateFeeType creates a fee type definition for a cooperative.
func (r *Repository) CreateFeeType(ctx context.Context, ft *models.FeeType) error {
	if ft.ID == "" {
		ft.ID = uuid.New().String()
	}
	query := `
		INSERT INTO fee_types (id, cooperative_id, season_id, name, amount, auto_apply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		ft.ID, ft.CooperativeID, ft.SeasonID, ft.Name, ft.Amount, ft.AutoApply).
		Scan(&ft.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fee type: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// AssignFee creates a fee row for a member. When no season is given the
// cooperative's active season is used.
func (s *Service) AssignFee(ctx context.Context, fee *models.Fee) (*models.Fee, error) {
	if fee.AmountOwed <= 0 {
		return nil, apperrors.NewValidation("fee amount must be positive")
	}
	if err := s.resolveMember(ctx, s.repo, fee.MemberID, fee.CooperativeID); err != nil {
		return nil, err
	}
	if fee.SeasonID == "" {
		season, err := s.repo.FindActiveSeason(ctx, fee.CooperativeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidation("cooperative has no active season")
			}
			return nil, err
		}
		fee.SeasonID = season.ID
	}
	fee.AmountPaid = 0
	fee.Status = models.FeeStatusUnpaid
	if err := s.repo.CreateFee(ctx, fee); err != nil {
		return nil, err
	}
	s.log.Infof("Fee %s assigned to member %s: %d", fee.ID, fee.MemberID, fee.AmountOwed)
	return fee, nil
}

// GrantLoan creates a loan row for a member.
func (s *Service) GrantLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error) {
	if loan.AmountOwed <= 0 {
		return nil, apperrors.NewValidation("loan amount must be positive")
	}
	if err := s.resolveMember(ctx, s.repo, loan.MemberID, loan.CooperativeID); err != nil {
		return nil, err
	}
	loan.AmountPaid = 0
	loan.Status = models.LoanStatusOpen
	if err := s.repo.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}
	s.log.Infof("Loan %s granted to member %s: %d", loan.ID, loan.MemberID, loan.AmountOwed)
	return loan, nil
}

// RecordProduction records delivered produce for a member. The total price
// is always derived from quantity and unit price.
func (s *Service) RecordProduction(ctx context.Context, p *models.Production) (*models.Production, error) {
	if p.Quantity <= 0 {
		return nil, apperrors.NewValidation("quantity must be positive")
	}
	if p.UnitPrice <= 0 {
		return nil, apperrors.NewValidation("unit price must be positive")
	}
	if err := s.resolveMember(ctx, s.repo, p.MemberID, p.CooperativeID); err != nil {
		return nil, err
	}
	if p.SeasonID == "" {
		season, err := s.repo.FindActiveSeason(ctx, p.CooperativeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidation("cooperative has no active season")
			}
			return nil, err
		}
		p.SeasonID = season.ID
	}
	p.TotalPrice = p.Quantity * p.UnitPrice
	p.SettledPaymentID = nil
	if err := s.repo.CreateProduction(ctx, p); err != nil {
		return nil, err
	}
	s.log.Infof("Production %s recorded for member %s: %d", p.ID, p.MemberID, p.TotalPrice)
	return p, nil
}

// CreateFeeType creates a fee type definition for a cooperative.
func (s *Service) CreateFeeType(ctx context.Context, ft *models.FeeType) (*models.FeeType, error) {
	if ft.Amount <= 0 {
		return nil, apperrors.NewValidation("fee type amount must be positive")
	}
	if ft.Name == "" {
		return nil, apperrors.NewValidation("fee type name is required")
	}
	if err := s.repo.CreateFeeType(ctx, ft); err != nil {
		return nil, err
	}
	return ft, nil
}

// OpenSeason creates a new active season for a cooperative.
func (s *Service) OpenSeason(ctx context.Context, season *models.Season) (*models.Season, error) {
	if season.Name == "" {
		return nil, apperrors.NewValidation("season name is required")
	}
	season.Status = models.SeasonStatusActive
	if err := s.repo.CreateSeason(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

// ListFees returns a member's fees, oldest first.
func (s *Service) ListFees(ctx context.Context, memberID, cooperativeID string) ([]models.Fee, error) {
	if err := s.resolveMember(ctx, s.repo, memberID, cooperativeID); err != nil {
		return nil, err
	}
	return s.repo.ListFees(ctx, memberID, cooperativeID)
}

// ListLoans returns a member's loans, oldest first.
func (s *Service) ListLoans(ctx context.Context, memberID, cooperativeID string) ([]models.Loan, error) {
	if err := s.resolveMember(ctx, s.repo, memberID, cooperativeID); err != nil {
		return nil, err
	}
	return s.repo.ListLoans(ctx, memberID, cooperativeID)
}

// ListProductions returns a member's production rows, oldest first.
func (s *Service) ListProductions(ctx context.Context, memberID, cooperativeID string) ([]models.Production, error) {
	if err := s.resolveMember(ctx, s.repo, memberID, cooperativeID); err != nil {
		return nil, err
	}
	return s.repo.ListProductions(ctx, memberID, cooperativeID)
}

// AutoApplyFees assigns every auto-apply fee type of an active season to the
// cooperative members who do not yet have it. The scheduler runs it nightly.
func (s *Service) AutoApplyFees(ctx context.Context) error {
	feeTypes, err := s.repo.ListAutoApplyFeeTypes(ctx)
	if err != nil {
		return err
	}
	for _, ft := range feeTypes {
		created, err := s.repo.InsertMissingFees(ctx, ft)
		if err != nil {
			return err
		}
		if created > 0 {
			s.log.Infof("Auto-applied fee type %s (%s): %d fees created", ft.Name, ft.ID, created)
		}
	}
	return nil
}

// SendPaymentReminders emails members whose partial payment has been open
// and untouched for more than the given number of days.
func (s *Service) SendPaymentReminders(ctx context.Context, staleDays int) error {
	if s.mailer == nil {
		return nil
	}
	payments, err := s.repo.ListOpenPaymentsOlderThan(ctx, staleDays)
	if err != nil {
		return err
	}
	for _, p := range payments {
		member, err := s.repo.FindUserByID(ctx, p.MemberID)
		if err != nil {
			s.log.Errorf("Failed to load member %s for reminder: %v", p.MemberID, err)
			continue
		}
		if err := s.mailer.SendPaymentReminder(member.Email, member.Name, p.AmountRemaining, p.UpdatedAt); err != nil {
			s.log.Errorf("Failed to send reminder to %s: %v", member.Email, err)
		}
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/metrics"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
	"github.com/mukizafabrice/Unguka-sub001/internal/repository"
)

// FetchPaymentSummary builds the payment summary for a member: it resolves
// any open partial payment, aggregates the fee, loan and production ledgers
// and projects the amount due, all on one consistent snapshot so a
// concurrent settlement cannot tear the view.
func (s *Service) FetchPaymentSummary(ctx context.Context, memberID, cooperativeID string) (*models.SummaryResponse, error) {
	tx, err := s.repo.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()
	r := s.repo.WithTx(tx)

	if err := s.resolveMember(ctx, r, memberID, cooperativeID); err != nil {
		return nil, err
	}

	open, err := r.FindOpenPayment(ctx, memberID, cooperativeID, false)
	if err != nil {
		return nil, err
	}

	totals, err := aggregateTotals(ctx, r, memberID, cooperativeID)
	if err != nil {
		return nil, err
	}

	fees, err := r.ListFees(ctx, memberID, cooperativeID)
	if err != nil {
		return nil, err
	}
	loans, err := r.ListLoans(ctx, memberID, cooperativeID)
	if err != nil {
		return nil, err
	}
	payments, err := r.ListPayments(ctx, memberID, cooperativeID)
	if err != nil {
		return nil, err
	}

	metrics.SummaryRequests.Inc()
	return &models.SummaryResponse{
		Summary:  projectSummary(totals, open),
		Fees:     fees,
		Loans:    loans,
		Payments: payments,
	}, nil
}

// aggregateTotals reads the three independent ledgers for a member.
func aggregateTotals(ctx context.Context, r *repository.Repository, memberID, cooperativeID string) (models.BalanceTotals, error) {
	var t models.BalanceTotals
	var err error
	if t.TotalProduction, err = r.SumUnconsumedProduction(ctx, memberID, cooperativeID); err != nil {
		return t, err
	}
	if t.TotalUnpaidFees, err = r.SumUnpaidFees(ctx, memberID, cooperativeID); err != nil {
		return t, err
	}
	if t.TotalLoans, err = r.SumOpenLoans(ctx, memberID, cooperativeID); err != nil {
		return t, err
	}
	return t, nil
}

// projectSummary combines the aggregator and resolver outputs. When an open
// partial payment exists, its remaining balance is the authoritative amount
// due and the freshly aggregated net is informational only. Without one the
// amount due is the current net clamped at zero; the engine never asks a
// member to pay a negative balance.
func projectSummary(t models.BalanceTotals, open *models.Payment) models.PaymentSummary {
	summary := models.PaymentSummary{
		TotalProduction: t.TotalProduction,
		TotalUnpaidFees: t.TotalUnpaidFees,
		TotalLoans:      t.TotalLoans,
		CurrentNet:      t.Net(),
	}
	if open != nil {
		summary.AmountDue = open.AmountRemaining
		summary.PreviousRemaining = open.AmountRemaining
		summary.ExistingPartialPayment = open
		return summary
	}
	if summary.CurrentNet > 0 {
		summary.AmountDue = summary.CurrentNet
	}
	return summary
}

// resolveMember checks the member exists and belongs to the cooperative.
// An unknown member is a 404; a member with empty ledgers is not.
func (s *Service) resolveMember(ctx context.Context, r *repository.Repository, memberID, cooperativeID string) error {
	member, err := r.FindUserByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member.CooperativeID != cooperativeID {
		return apperrors.ErrNotFound
	}
	return nil
}

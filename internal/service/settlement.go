package service

import (
	"context"
	"fmt"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/metrics"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// ProcessPayment settles amountPaid against the member's amount due. The
// amount due is always recomputed here, under lock, inside the same
// transaction that writes the payment; a client-supplied figure is never
// trusted. Either every ledger update and the payment write commit together
// or none do.
func (s *Service) ProcessPayment(ctx context.Context, memberID, cooperativeID string, amountPaid int64) (*models.Payment, error) {
	if amountPaid <= 0 {
		return nil, apperrors.NewValidation("amount must be positive")
	}

	tx, err := s.repo.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement: %w", err)
	}
	defer tx.Rollback()
	r := s.repo.WithTx(tx)

	if err := s.resolveMember(ctx, r, memberID, cooperativeID); err != nil {
		return nil, err
	}

	// Lock order is always member row first, then the open payment row.
	// The member lock serializes concurrent first settlements, which have
	// no payment row to contend on yet.
	if err := r.LockMember(ctx, memberID); err != nil {
		return nil, err
	}

	open, err := r.FindOpenPayment(ctx, memberID, cooperativeID, true)
	if err != nil {
		s.fail("resolver", err)
		return nil, err
	}

	var amountDue int64
	if open != nil {
		// The open payment's remaining balance is authoritative; the
		// ledgers are not re-aggregated.
		amountDue = open.AmountRemaining
	} else {
		totals, err := aggregateTotals(ctx, r, memberID, cooperativeID)
		if err != nil {
			s.fail("aggregate", err)
			return nil, err
		}
		if net := totals.Net(); net > 0 {
			amountDue = net
		}
	}

	fees, err := r.ListUnpaidFees(ctx, memberID, cooperativeID)
	if err != nil {
		return nil, err
	}
	loans, err := r.ListOpenLoans(ctx, memberID, cooperativeID)
	if err != nil {
		return nil, err
	}

	plan, err := buildSettlementPlan(memberID, cooperativeID, amountPaid, amountDue, open, fees, loans)
	if err != nil {
		s.fail("validate", err)
		return nil, err
	}

	if plan.CreatePayment {
		err = r.CreatePayment(ctx, &plan.Payment)
	} else {
		err = r.UpdatePayment(ctx, &plan.Payment)
	}
	if err != nil {
		s.fail("write", err)
		return nil, err
	}

	for _, a := range plan.FeeAllocations {
		if err := r.ApplyFeePayment(ctx, a.ID, a.Amount); err != nil {
			s.fail("ledger", err)
			return nil, err
		}
	}
	for _, a := range plan.LoanAllocations {
		if err := r.ApplyLoanPayment(ctx, a.ID, a.Amount); err != nil {
			s.fail("ledger", err)
			return nil, err
		}
	}
	if plan.ConsumeProduction {
		if err := r.MarkProductionsConsumed(ctx, memberID, cooperativeID, plan.Payment.ID); err != nil {
			s.fail("ledger", err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.fail("commit", err)
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	metrics.PaymentsProcessed.WithLabelValues(plan.Payment.Status).Inc()
	s.log.Infof("Payment %s settled for member %s: paid %d, remaining %d (%s)",
		plan.Payment.ID, memberID, amountPaid, plan.Payment.AmountRemaining, plan.Payment.Status)

	if plan.Payment.Status == models.PaymentStatusPaid {
		s.sendReceipt(memberID, &plan.Payment, amountPaid)
	}

	return &plan.Payment, nil
}

// sendReceipt emails the member a settlement receipt. Best effort: the
// settlement has already committed, so a mail failure is only logged.
func (s *Service) sendReceipt(memberID string, p *models.Payment, amountPaid int64) {
	if s.mailer == nil {
		return
	}
	go func() {
		member, err := s.repo.FindUserByID(context.Background(), memberID)
		if err != nil {
			s.log.Errorf("Failed to load member %s for receipt: %v", memberID, err)
			return
		}
		if err := s.mailer.SendPaymentReceipt(member.Email, member.Name, amountPaid, p.AmountDue); err != nil {
			s.log.Errorf("Failed to send receipt for payment %s: %v", p.ID, err)
		}
	}()
}

// fail records a settlement failure in metrics, classified by stage. An
// invariant violation is additionally logged loudly: it must never occur
// under correct operation.
func (s *Service) fail(stage string, err error) {
	metrics.SettlementFailures.WithLabelValues(stage).Inc()
	if apperrors.IsInvariant(err) {
		s.log.Errorf("INVARIANT VIOLATION during settlement (%s): %v", stage, err)
	}
}

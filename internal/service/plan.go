package service

import (
	"time"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// ledgerAllocation is one slice of a settlement applied to a single fee or
// loan row.
type ledgerAllocation struct {
	ID     string
	Amount int64
}

// settlementPlan captures every mutation a settlement will perform. It is
// computed up front from a locked snapshot so the transaction body only has
// to execute it.
type settlementPlan struct {
	Payment         models.Payment
	CreatePayment   bool
	FeeAllocations  []ledgerAllocation
	LoanAllocations []ledgerAllocation
	// ConsumeProduction is set on full settlement: the member's unconsumed
	// production rows get stamped with the payment ID.
	ConsumeProduction bool
}

// buildSettlementPlan validates amountPaid against the authoritative amount
// due and decides how the settlement lands on the payment row and the fee
// and loan ledgers.
//
// Ledger application order is fees before loans, each oldest first (the
// caller passes rows already ordered by created_at, id). When an open
// payment is being settled, rows created after it opened never contributed
// to its amount due: they are excluded and wait for the next aggregation
// cycle. On full settlement every contributing row is cleared: the member's
// production credit covers whatever the cash itself does not. On partial
// settlement only amountPaid is spread across the rows, leaving later rows
// untouched.
func buildSettlementPlan(memberID, cooperativeID string, amountPaid, amountDue int64,
	open *models.Payment, fees []models.Fee, loans []models.Loan) (*settlementPlan, error) {

	if amountPaid <= 0 {
		return nil, apperrors.NewValidation("amount must be positive")
	}
	if amountPaid > amountDue {
		return nil, apperrors.NewValidation("amount exceeds amount due")
	}

	if open != nil {
		fees = feesCreatedBy(fees, open.CreatedAt)
		loans = loansCreatedBy(loans, open.CreatedAt)
	}

	remaining := amountDue - amountPaid
	status := models.PaymentStatusPartial
	if remaining == 0 {
		status = models.PaymentStatusPaid
	}

	plan := &settlementPlan{ConsumeProduction: remaining == 0}

	if open != nil {
		plan.Payment = *open
		plan.Payment.AmountPaid += amountPaid
		plan.Payment.AmountRemaining = remaining
		plan.Payment.Status = status
	} else {
		plan.CreatePayment = true
		plan.Payment = models.Payment{
			MemberID:        memberID,
			CooperativeID:   cooperativeID,
			AmountDue:       amountDue,
			AmountPaid:      amountPaid,
			AmountRemaining: remaining,
			Status:          status,
		}
	}

	if remaining == 0 {
		// Clear every contributing row in full.
		for _, f := range fees {
			if out := f.Outstanding(); out > 0 {
				plan.FeeAllocations = append(plan.FeeAllocations, ledgerAllocation{ID: f.ID, Amount: out})
			}
		}
		for _, l := range loans {
			if out := l.Outstanding(); out > 0 {
				plan.LoanAllocations = append(plan.LoanAllocations, ledgerAllocation{ID: l.ID, Amount: out})
			}
		}
		return plan, nil
	}

	// Partial settlement: spread only the cash, fees first.
	left := amountPaid
	plan.FeeAllocations, left = allocateOldestFirst(left, feeRows(fees))
	plan.LoanAllocations, _ = allocateOldestFirst(left, loanRows(loans))
	return plan, nil
}

// feesCreatedBy keeps the fees that existed when the open payment was
// created. Fees assigned later never fed its amount due and must not be
// credited by its settlement.
func feesCreatedBy(fees []models.Fee, cutoff time.Time) []models.Fee {
	out := make([]models.Fee, 0, len(fees))
	for _, f := range fees {
		if !f.CreatedAt.After(cutoff) {
			out = append(out, f)
		}
	}
	return out
}

func loansCreatedBy(loans []models.Loan, cutoff time.Time) []models.Loan {
	out := make([]models.Loan, 0, len(loans))
	for _, l := range loans {
		if !l.CreatedAt.After(cutoff) {
			out = append(out, l)
		}
	}
	return out
}

// ledgerRow is the slice of a fee or loan the allocator needs.
type ledgerRow struct {
	ID          string
	Outstanding int64
}

func feeRows(fees []models.Fee) []ledgerRow {
	rows := make([]ledgerRow, 0, len(fees))
	for _, f := range fees {
		rows = append(rows, ledgerRow{ID: f.ID, Outstanding: f.Outstanding()})
	}
	return rows
}

func loanRows(loans []models.Loan) []ledgerRow {
	rows := make([]ledgerRow, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, ledgerRow{ID: l.ID, Outstanding: l.Outstanding()})
	}
	return rows
}

// allocateOldestFirst spreads amount across the rows in order, consuming
// each row's outstanding balance before moving to the next. Returns the
// allocations and whatever amount was left once the rows ran out.
func allocateOldestFirst(amount int64, rows []ledgerRow) ([]ledgerAllocation, int64) {
	var out []ledgerAllocation
	for _, row := range rows {
		if amount <= 0 {
			break
		}
		if row.Outstanding <= 0 {
			continue
		}
		applied := row.Outstanding
		if amount < applied {
			applied = amount
		}
		out = append(out, ledgerAllocation{ID: row.ID, Amount: applied})
		amount -= applied
	}
	return out, amount
}

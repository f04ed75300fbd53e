package service

import (
	"testing"

	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// TestProjectSummaryFreshBalance: production 50000, fees 10000, loans 5000
// and no open payment project to a net and amount due of 35000.
func TestProjectSummaryFreshBalance(t *testing.T) {
	totals := models.BalanceTotals{
		TotalProduction: 50000,
		TotalUnpaidFees: 10000,
		TotalLoans:      5000,
	}

	got := projectSummary(totals, nil)

	if got.CurrentNet != 35000 {
		t.Errorf("currentNet: got %d, want 35000", got.CurrentNet)
	}
	if got.AmountDue != 35000 {
		t.Errorf("amountDue: got %d, want 35000", got.AmountDue)
	}
	if got.PreviousRemaining != 0 {
		t.Errorf("previousRemaining: got %d, want 0", got.PreviousRemaining)
	}
	if got.ExistingPartialPayment != nil {
		t.Errorf("existingPartialPayment: got %+v, want nil", got.ExistingPartialPayment)
	}
}

// TestProjectSummaryOpenPaymentWins: with an open partial payment, its
// remaining balance is the amount due, not the freshly aggregated net.
func TestProjectSummaryOpenPaymentWins(t *testing.T) {
	totals := models.BalanceTotals{
		TotalProduction: 50000,
		TotalUnpaidFees: 0,
		TotalLoans:      0,
	}
	open := &models.Payment{
		ID:              "pay-1",
		AmountDue:       35000,
		AmountPaid:      20000,
		AmountRemaining: 15000,
		Status:          models.PaymentStatusPartial,
	}

	got := projectSummary(totals, open)

	if got.AmountDue != 15000 {
		t.Errorf("amountDue: got %d, want open payment remaining 15000", got.AmountDue)
	}
	if got.PreviousRemaining != 15000 {
		t.Errorf("previousRemaining: got %d, want 15000", got.PreviousRemaining)
	}
	if got.ExistingPartialPayment == nil || got.ExistingPartialPayment.ID != "pay-1" {
		t.Errorf("existingPartialPayment: got %+v", got.ExistingPartialPayment)
	}
	// The informational totals still reflect the ledgers.
	if got.CurrentNet != 50000 {
		t.Errorf("currentNet: got %d, want 50000", got.CurrentNet)
	}
}

// TestProjectSummaryNegativeNet: a member who owes more than they earned
// has a negative net but never a negative amount due.
func TestProjectSummaryNegativeNet(t *testing.T) {
	totals := models.BalanceTotals{
		TotalProduction: 1000,
		TotalUnpaidFees: 8000,
		TotalLoans:      4000,
	}

	got := projectSummary(totals, nil)

	if got.CurrentNet != -11000 {
		t.Errorf("currentNet: got %d, want -11000", got.CurrentNet)
	}
	if got.AmountDue != 0 {
		t.Errorf("amountDue: got %d, want 0", got.AmountDue)
	}
}

// TestProjectSummaryZeroLedgers: a known member with no ledger rows gets a
// valid all-zero summary.
func TestProjectSummaryZeroLedgers(t *testing.T) {
	got := projectSummary(models.BalanceTotals{}, nil)

	if got.TotalProduction != 0 || got.TotalUnpaidFees != 0 || got.TotalLoans != 0 ||
		got.CurrentNet != 0 || got.AmountDue != 0 || got.PreviousRemaining != 0 {
		t.Errorf("expected all-zero summary, got %+v", got)
	}
}

// TestProjectSummaryIdempotent: projecting the same inputs twice yields
// identical output.
func TestProjectSummaryIdempotent(t *testing.T) {
	totals := models.BalanceTotals{TotalProduction: 50000, TotalUnpaidFees: 10000, TotalLoans: 5000}
	first := projectSummary(totals, nil)
	second := projectSummary(totals, nil)
	if first != second {
		t.Errorf("summaries differ: %+v vs %+v", first, second)
	}
}

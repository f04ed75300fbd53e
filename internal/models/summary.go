package models

// BalanceTotals is the Balance Aggregator output: the member's earned and
// owed totals across the three independent ledgers.
type BalanceTotals struct {
	TotalProduction int64 `json:"totalProduction"`
	TotalUnpaidFees int64 `json:"totalUnpaidFees"`
	TotalLoans      int64 `json:"totalLoans"`
}

// Net returns production earnings minus outstanding fees and loans. A
// negative net (member owes more than earned) is a valid state.
func (t BalanceTotals) Net() int64 {
	return t.TotalProduction - (t.TotalUnpaidFees + t.TotalLoans)
}

// PaymentSummary is the derived, non-persisted view the dashboard renders.
type PaymentSummary struct {
	TotalProduction        int64    `json:"totalProduction"`
	TotalUnpaidFees        int64    `json:"totalUnpaidFees"`
	TotalLoans             int64    `json:"totalLoans"`
	PreviousRemaining      int64    `json:"previousRemaining"`
	CurrentNet             int64    `json:"currentNet"`
	AmountDue              int64    `json:"amountDue"`
	ExistingPartialPayment *Payment `json:"existingPartialPayment,omitempty"`
}

// SummaryResponse is the full summary endpoint payload: the projected
// summary plus the detail rows the dashboard breaks down.
type SummaryResponse struct {
	Summary  PaymentSummary `json:"summary"`
	Fees     []Fee          `json:"fees"`
	Loans    []Loan         `json:"loans"`
	Payments []Payment      `json:"payments"`
}

package models

import "time"

// Loan statuses.
const (
	LoanStatusOpen    = "open"
	LoanStatusSettled = "settled"
)

// Loan represents an outstanding obligation of a member towards the
// cooperative. It is reduced only through payment settlement.
type Loan struct {
	ID            string    `json:"id"`
	MemberID      string    `json:"memberId"`
	CooperativeID string    `json:"cooperativeId"`
	AmountOwed    int64     `json:"amountOwed"`
	AmountPaid    int64     `json:"amountPaid"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Outstanding returns the unsettled portion of the loan.
func (l *Loan) Outstanding() int64 {
	return l.AmountOwed - l.AmountPaid
}

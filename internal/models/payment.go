package models

import "time"

// Payment statuses. A payment moves pending -> partial -> paid and never
// regresses. A payment with AmountRemaining > 0 is "open"; at most one open
// payment may exist per (member, cooperative) at a time.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Payment represents one settlement event against a member's net balance.
// AmountPaid accumulates across partial settlements of the same payment;
// AmountRemaining = AmountDue - AmountPaid.
type Payment struct {
	ID              string    `json:"id"`
	MemberID        string    `json:"memberId"`
	CooperativeID   string    `json:"cooperativeId"`
	AmountDue       int64     `json:"amountDue"`
	AmountPaid      int64     `json:"amountPaid"`
	AmountRemaining int64     `json:"amountRemainingToPay"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Open reports whether the payment still has a balance to collect.
func (p *Payment) Open() bool {
	return p.AmountRemaining > 0
}

package models

import "time"

// Fee statuses. Status is derived from the paid/owed amounts and is never
// set independently of them.
const (
	FeeStatusUnpaid  = "unpaid"
	FeeStatusPartial = "partial"
	FeeStatusPaid    = "paid"
)

// Fee represents a charge assigned to a cooperative member for a season.
// All amounts are in minor currency units (RWF).
type Fee struct {
	ID            string    `json:"id"`
	MemberID      string    `json:"memberId"`
	CooperativeID string    `json:"cooperativeId"`
	SeasonID      string    `json:"seasonId"`
	FeeTypeID     string    `json:"feeTypeId"`
	AmountOwed    int64     `json:"amountOwed"`
	AmountPaid    int64     `json:"amountPaid"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Outstanding returns the unpaid portion of the fee.
func (f *Fee) Outstanding() int64 {
	return f.AmountOwed - f.AmountPaid
}

// FeeStatusFor derives a fee status from its amounts.
func FeeStatusFor(amountPaid, amountOwed int64) string {
	switch {
	case amountPaid >= amountOwed:
		return FeeStatusPaid
	case amountPaid > 0:
		return FeeStatusPartial
	default:
		return FeeStatusUnpaid
	}
}

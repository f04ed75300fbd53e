package models

import "time"

// Production represents a member's delivered produce for a season. Rows are
// read-only for the reconciliation engine except for the consumption stamp:
// once a payment is fully settled, the productions that funded it carry its
// ID in SettledPaymentID and no longer count towards the member's balance.
type Production struct {
	ID               string    `json:"id"`
	MemberID         string    `json:"memberId"`
	CooperativeID    string    `json:"cooperativeId"`
	SeasonID         string    `json:"seasonId"`
	ProductID        string    `json:"productId"`
	Quantity         int64     `json:"quantity"`
	UnitPrice        int64     `json:"unitPrice"`
	TotalPrice       int64     `json:"totalPrice"`
	SettledPaymentID *string   `json:"settledPaymentId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

package models

import "time"

// FeeType is a reusable fee definition owned by a cooperative. When
// AutoApply is set, the scheduler assigns it to every member of the
// cooperative for the active season.
type FeeType struct {
	ID            string    `json:"id"`
	CooperativeID string    `json:"cooperativeId"`
	SeasonID      string    `json:"seasonId"`
	Name          string    `json:"name"`
	Amount        int64     `json:"amount"`
	AutoApply     bool      `json:"autoApply"`
	CreatedAt     time.Time `json:"createdAt"`
}

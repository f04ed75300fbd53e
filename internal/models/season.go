package models

import "time"

// Season statuses.
const (
	SeasonStatusActive = "active"
	SeasonStatusClosed = "closed"
)

// Season is a reference entity used to scope fees and productions.
type Season struct {
	ID            string    `json:"id"`
	CooperativeID string    `json:"cooperativeId"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

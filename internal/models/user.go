package models

import "time"

// User roles.
const (
	RoleSuperadmin = "superadmin"
	RoleManager    = "manager"
	RoleMember     = "member"
)

// User represents a user in the system. Members are the subjects of the
// reconciliation engine; managers and superadmins administer ledgers.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Not serialized
	Role          string    `json:"role"`
	CooperativeID string    `json:"cooperativeId"`
	CreatedAt     time.Time `json:"createdAt"`
}

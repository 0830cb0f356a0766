package models

import (
	"slices"
	"time"
)

// Role names a user can hold. Roles only ever widen: a USER can gain
// HOST through the become-host flow, but roles are never removed.
const (
	RoleUser = "USER"
	RoleHost = "HOST"
)

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}

// HasRole reports whether the user's role set contains the given role.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

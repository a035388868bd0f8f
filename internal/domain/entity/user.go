package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account on the platform. Every user carries
// exactly one supply-chain role; the role decides which ledger operations
// the boundary layer lets the account invoke.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Phone        string     `json:"phone"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// Clone returns a deep copy of the user so store internals never leak.
func (u *User) Clone() *User {
	clone := *u

	if u.LastLogin != nil {
		lastLogin := *u.LastLogin
		clone.LastLogin = &lastLogin
	}

	return &clone
}

// Sanitized returns a copy safe for API responses. The password hash is
// already excluded from JSON, but handing out a copy keeps the stored
// entity unreachable from handlers.
func (u *User) Sanitized() *User {
	clone := u.Clone()
	clone.PasswordHash = ""

	return clone
}

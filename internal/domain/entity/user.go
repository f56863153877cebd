// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// UserStatus tracks where an account is in the email confirmation flow.
type UserStatus int

const (
	// UserStatusUnconfirmed is assigned on registration until the email link is followed.
	UserStatusUnconfirmed UserStatus = iota
	// UserStatusConfirmed allows the account to authenticate.
	UserStatusConfirmed
)

// String returns the string representation of the UserStatus.
func (s UserStatus) String() string {
	switch s {
	case UserStatusUnconfirmed:
		return "unconfirmed"
	case UserStatusConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// User is the root entity of the system, representing a single account.
// Sessions, friend edges and chat memberships reference it by ID only.
type User struct {
	ID           int64      // Serial identifier assigned by the store.
	UniqueTag    string     // Globally unique, human-readable handle.
	Email        string     // Credential identity, also unique.
	Name         string     // Display name.
	PasswordHash string     // Hash produced by the PasswordHasher.
	Status       UserStatus // Confirmation state.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsConfirmed reports whether the account finished email confirmation.
func (u *User) IsConfirmed() bool {
	return u.Status == UserStatusConfirmed
}

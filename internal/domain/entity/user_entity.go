package entity

import (
	"time"
)

// User is the aggregate root for the credential domain.
// PasswordHash holds a bcrypt hash, never the plaintext.
//
// ResetToken and ResetTokenExpiration are both nil unless a password reset
// is pending for the user.
type User struct {
	ID                   string
	Email                string
	PasswordHash         string
	IsAdmin              bool
	ResetToken           *string
	ResetTokenExpiration *time.Time
}

// ResetPending reports whether the user holds a reset token that has not
// expired at now.
func (u *User) ResetPending(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiration != nil && u.ResetTokenExpiration.After(now)
}

// SetResetToken records a freshly issued reset token, superseding any
// previous one.
func (u *User) SetResetToken(token string, expiresAt time.Time) {
	u.ResetToken = &token
	u.ResetTokenExpiration = &expiresAt
}

// ClearResetToken drops the reset state so the token can never be replayed.
func (u *User) ClearResetToken() {
	u.ResetToken = nil
	u.ResetTokenExpiration = nil
}

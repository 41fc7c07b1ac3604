package model

import "time"

// TokenTypePasswordReset marks single-use password reset tokens.
const TokenTypePasswordReset = "password_reset"

// Token is a single-use, expiring secret tied to a user, such as a
// password reset link.
type Token struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Type      string     `db:"type"`
	Token     string     `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

func (t *Token) IsUsed() bool {
	return t.UsedAt != nil
}

// IsValid reports whether the token can still be redeemed.
func (t *Token) IsValid() bool {
	return !t.IsExpired() && !t.IsUsed()
}

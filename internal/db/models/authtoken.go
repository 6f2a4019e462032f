package models

import "time"

// AuthToken is one Lightspeed OAuth2 grant result. Rows are append-only:
// a refresh inserts a new row instead of mutating the old one, and the row
// with the latest CreatedAt is the current token.
type AuthToken struct {
	ID           string `gorm:"primaryKey"` // UUID
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Expired reports whether the token's expiry has passed.
func (t *AuthToken) Expired() bool {
	return t.ExpiresAt.Before(time.Now())
}

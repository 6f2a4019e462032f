package handlers

import (
	"time"

	"github.com/colbyc/lightspeed-bridge/internal/db/models"
)

// accountJSON is the wire form of an account. Timestamps are RFC3339 strings
// and the password hash is never included.
type accountJSON struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	AccountType string `json:"account_type"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func serializeAccount(a *models.Account) accountJSON {
	return accountJSON{
		ID:          a.ID,
		Email:       a.Email,
		FullName:    a.FullName,
		AccountType: a.AccountType,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

// tokenJSON is the wire form of an integration token, shown on the admin
// status endpoint.
type tokenJSON struct {
	ID        string `json:"id"`
	TokenType string `json:"token_type"`
	Scope     string `json:"scope"`
	ExpiresAt string `json:"expires_at"`
	IsExpired bool   `json:"is_expired"`
	CreatedAt string `json:"created_at"`
}

func serializeToken(t *models.AuthToken) tokenJSON {
	return tokenJSON{
		ID:        t.ID,
		TokenType: t.TokenType,
		Scope:     t.Scope,
		ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
		IsExpired: t.Expired(),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

package models

import "time"

// Available account types.
const (
	AccountTypeStreamer = "streamer"
	AccountTypeAdmin    = "admin"
)

// Account is a local user account. The password is stored only as a bcrypt
// hash; CreatedAt/UpdatedAt are managed by gorm and never client-settable.
type Account struct {
	ID           string `gorm:"primaryKey"` // UUID
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	FullName     string
	AccountType  string `gorm:"default:streamer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the account has the admin type.
func (a *Account) IsAdmin() bool {
	return a.AccountType == AccountTypeAdmin
}

// Package accounts implements the credential store: registration with a
// bcrypt-hashed password and email/password authentication.
package accounts

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/colbyc/lightspeed-bridge/internal/db/models"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrWeakPassword is returned when the password fails the policy.
	ErrWeakPassword = errors.New("password does not meet the policy")
	// ErrInvalidCredentials is returned on any login failure. It deliberately
	// does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("username or password does not match our records")
	// ErrNotFound is returned when an account lookup misses.
	ErrNotFound = errors.New("account not found")
)

// passwordCharset restricts passwords to letters, digits and @#$%^&+=,
// minimum 8 characters. The policy additionally requires at least one
// uppercase letter, one lowercase letter and one digit.
var passwordCharset = regexp.MustCompile(`^[A-Za-z0-9@#$%^&+=]{8,}$`)

// ValidPassword reports whether the password satisfies the policy.
func ValidPassword(password string) bool {
	if !passwordCharset.MatchString(password) {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// Store provides account persistence over gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates an account store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Register creates a new account with a hashed password.
func (s *Store) Register(email, password, fullName string) (*models.Account, error) {
	email = strings.TrimSpace(email)
	if !ValidPassword(password) {
		return nil, ErrWeakPassword
	}

	var existing models.Account
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		AccountType:  models.AccountTypeStreamer,
	}
	if err := s.db.Create(&account).Error; err != nil {
		if isUniqueConstraintError(err) {
			// Lost the race against a concurrent registration.
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &account, nil
}

// Authenticate looks up the account by email and checks the password hash.
func (s *Store) Authenticate(email, password string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&account).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &account, nil
}

// GetByID fetches an account by its identifier.
func (s *Store) GetByID(id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateFullName changes the display name and refreshes updated_at.
func (s *Store) UpdateFullName(id, fullName string) (*models.Account, error) {
	account, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	account.FullName = fullName
	if err := s.db.Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// SetPassword replaces the stored hash. Intended for admin resets.
func (s *Store) SetPassword(id, password string) error {
	if !ValidPassword(password) {
		return ErrWeakPassword
	}
	account, err := s.GetByID(id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	return s.db.Save(account).Error
}

// List returns all accounts ordered by creation time.
func (s *Store) List() ([]models.Account, error) {
	var list []models.Account
	if err := s.db.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func isUniqueConstraintError(err error) bool {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "unique constraint")
}

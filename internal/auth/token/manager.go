// Package token manages the shared Lightspeed OAuth2 token: the one-time
// authorization-code exchange, persistence and transparent refresh.
package token

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/colbyc/lightspeed-bridge/internal/config"
	"github.com/colbyc/lightspeed-bridge/internal/db/models"
)

// ErrNotAuthorized is returned when no token has ever been issued, i.e. the
// consent flow has not been run yet.
var ErrNotAuthorized = errors.New("no token found. Please authorize the app first")

// UpstreamError carries the raw error body the token endpoint responded
// with. It is propagated verbatim, never translated.
type UpstreamError struct {
	Body string
}

func (e *UpstreamError) Error() string { return e.Body }

// Manager owns the token lifecycle. No other component creates or refreshes
// AuthToken rows. Tokens are read from the store on every call; there is no
// in-memory cache, so staleness is bounded by store consistency.
type Manager struct {
	db   *gorm.DB
	conf *oauth2.Config
	http *http.Client
	now  func() time.Time
}

// NewManager creates a token manager from the integration credentials.
func NewManager(db *gorm.DB, cfg config.OAuth) *Manager {
	return &Manager{
		db: db,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{cfg.Scope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		// Token endpoint calls must fail fast rather than hang.
		http: &http.Client{Timeout: 10 * time.Second},
		now:  time.Now,
	}
}

// ConsentURL returns the authorization endpoint URL the user must visit to
// grant access. Pure construction, no network call.
func (m *Manager) ConsentURL() string {
	return m.conf.AuthCodeURL("")
}

// ExchangeCode performs the authorization-code grant and persists the result
// as the new current token.
func (m *Manager) ExchangeCode(ctx context.Context, code string) (*models.AuthToken, error) {
	tok, err := m.conf.Exchange(m.httpContext(ctx), code)
	if err != nil {
		return nil, wrapRetrieveError(err)
	}
	return m.insert(tok)
}

// RefreshAccessToken performs the refresh-token grant and persists a new
// current token row, superseding the prior one.
func (m *Manager) RefreshAccessToken(ctx context.Context, refreshToken string) (*models.AuthToken, error) {
	src := m.conf.TokenSource(m.httpContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, wrapRetrieveError(err)
	}
	return m.insert(tok)
}

// CurrentToken returns the token row with the latest creation timestamp,
// whatever its expiry state. ErrNotAuthorized when none exists.
func (m *Manager) CurrentToken() (*models.AuthToken, error) {
	var tok models.AuthToken
	err := m.db.Order("created_at DESC").First(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// GetValidToken returns the current token, refreshing it first when its
// expiry has passed. The caller never observes an expired token.
//
// Two concurrent requests may both find the token expired and both refresh;
// each inserts its own row and the latest created_at wins on the next read.
// That race is accepted rather than guarded.
func (m *Manager) GetValidToken(ctx context.Context) (*models.AuthToken, error) {
	current, err := m.CurrentToken()
	if err != nil {
		return nil, err
	}
	if current.ExpiresAt.After(m.now()) {
		return current, nil
	}
	log.Printf("🔄 Lightspeed token expired at %s, refreshing", current.ExpiresAt.Format(time.RFC3339))
	return m.RefreshAccessToken(ctx, current.RefreshToken)
}

func (m *Manager) insert(tok *oauth2.Token) (*models.AuthToken, error) {
	record := models.AuthToken{
		ID:           uuid.New().String(),
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Scope:        scopeOf(tok),
		ExpiresAt:    tok.Expiry,
	}
	if err := m.db.Create(&record).Error; err != nil {
		return nil, err
	}
	log.Printf("✅ Stored Lightspeed token (expires %s)", record.ExpiresAt.Format(time.RFC3339))
	return &record, nil
}

// httpContext injects the timeout-capped client used for token endpoint calls.
func (m *Manager) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.http)
}

// scopeOf pulls the granted scope out of the token response extras.
func scopeOf(tok *oauth2.Token) string {
	if s, ok := tok.Extra("scope").(string); ok {
		return s
	}
	return ""
}

// wrapRetrieveError converts an oauth2 retrieval failure into an
// UpstreamError carrying the upstream response body verbatim.
func wrapRetrieveError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && len(re.Body) > 0 {
		return &UpstreamError{Body: string(re.Body)}
	}
	return err
}

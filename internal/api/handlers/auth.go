// Package handlers contains the HTTP handlers for the bridge API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/colbyc/lightspeed-bridge/internal/accounts"
	"github.com/colbyc/lightspeed-bridge/internal/api/middleware"
	"github.com/colbyc/lightspeed-bridge/internal/auth/session"
)

const passwordPolicyDetail = "Password must be at least 8 characters long and contain at least " +
	"one uppercase letter, one lowercase letter and one number"

// tokenResponse is the login response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
}

// LoginHandler authenticates form-encoded credentials and issues a session
// token. Unknown email and wrong password produce the same generic 401.
func LoginHandler(store *accounts.Store, issuer *session.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed form body")
			return
		}
		email := r.PostFormValue("username")
		password := r.PostFormValue("password")

		account, err := store.Authenticate(email, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Username or password does not match our records")
			return
		}

		tokenStr, expires, err := issuer.Issue(account.ID)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Could not issue token")
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse{
			AccessToken: tokenStr,
			TokenType:   "bearer",
			ExpiresIn:   expires,
			Role:        account.AccountType,
		})
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// RegisterHandler creates a new account. 409 on duplicate email, 400 when
// the password fails the policy.
func RegisterHandler(store *accounts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed JSON body")
			return
		}

		_, err := store.Register(req.Email, req.Password, req.FullName)
		switch {
		case errors.Is(err, accounts.ErrEmailTaken):
			writeDetail(w, http.StatusConflict, "User with this email already exists")
		case errors.Is(err, accounts.ErrWeakPassword):
			writeDetail(w, http.StatusBadRequest, passwordPolicyDetail)
		case err != nil:
			writeDetail(w, http.StatusInternalServerError, "Could not create user")
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}
}

// MeHandler returns the authenticated account.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, ok := middleware.AccountFrom(r.Context())
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, serializeAccount(account))
	}
}

type updateMeRequest struct {
	FullName string `json:"full_name"`
}

// UpdateMeHandler changes the authenticated account's display name.
func UpdateMeHandler(store *accounts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, ok := middleware.AccountFrom(r.Context())
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var req updateMeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Malformed JSON body")
			return
		}
		if len(req.FullName) < 3 || len(req.FullName) > 50 {
			writeDetail(w, http.StatusBadRequest, "Full name must be between 3 and 50 characters")
			return
		}

		updated, err := store.UpdateFullName(account.ID, req.FullName)
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Could not update account")
			return
		}
		writeJSON(w, http.StatusOK, serializeAccount(updated))
	}
}

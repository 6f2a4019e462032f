package handlers

import (
	"errors"
	"net/http"

	"github.com/colbyc/lightspeed-bridge/internal/auth/token"
)

type authorizationResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// AuthorizeHandler returns the Lightspeed consent URL the user must visit.
func AuthorizeHandler(mgr *token.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, authorizationResponse{
			AuthorizationURL: mgr.ConsentURL(),
		})
	}
}

// CallbackHandler exchanges the authorization code delivered by the consent
// redirect for a persisted token. Upstream rejections surface verbatim.
func CallbackHandler(mgr *token.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			writeDetail(w, http.StatusBadRequest, "Missing authorization code")
			return
		}

		if _, err := mgr.ExchangeCode(r.Context(), code); err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDetail(w, http.StatusOK, "Token successfully created. Authorization complete")
	}
}

// TokenStatusHandler reports the current integration token, admin only.
func TokenStatusHandler(mgr *token.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := mgr.CurrentToken()
		if errors.Is(err, token.ErrNotAuthorized) {
			writeDetail(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Could not read token")
			return
		}
		writeJSON(w, http.StatusOK, serializeToken(current))
	}
}

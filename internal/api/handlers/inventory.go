package handlers

import (
	"errors"
	"net/http"

	"github.com/colbyc/lightspeed-bridge/internal/auth/token"
	"github.com/colbyc/lightspeed-bridge/internal/upstream"
)

// ItemsHandler proxies the Lightspeed item listing. The lifecycle manager is
// consulted on every request, so an expired token is refreshed before the
// upstream call is made.
func ItemsHandler(mgr *token.Manager, client *upstream.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := mgr.GetValidToken(r.Context())
		if err != nil {
			// Either the consent flow never ran or the refresh was rejected
			// upstream; both carry their own detail text.
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		body, err := client.ListItems(r.Context(), current.AccessToken)
		if err != nil {
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) {
				writeDetail(w, http.StatusBadRequest, apiErr.Body)
				return
			}
			writeDetail(w, http.StatusBadGateway, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

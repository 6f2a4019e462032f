package handlers

import (
	"net/http"

	"github.com/colbyc/lightspeed-bridge/internal/accounts"
)

// ListAccountsHandler returns every account, admin only.
func ListAccountsHandler(store *accounts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List()
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "Could not list accounts")
			return
		}
		out := make([]accountJSON, 0, len(list))
		for i := range list {
			out = append(out, serializeAccount(&list[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Package api wires the HTTP surface of the bridge.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/colbyc/lightspeed-bridge/internal/accounts"
	"github.com/colbyc/lightspeed-bridge/internal/api/handlers"
	"github.com/colbyc/lightspeed-bridge/internal/api/middleware"
	"github.com/colbyc/lightspeed-bridge/internal/auth/session"
	"github.com/colbyc/lightspeed-bridge/internal/auth/token"
	"github.com/colbyc/lightspeed-bridge/internal/logging"
	"github.com/colbyc/lightspeed-bridge/internal/upstream"
)

// NewRouter builds the chi router over the assembled components.
func NewRouter(store *accounts.Store, issuer *session.Issuer, mgr *token.Manager, client *upstream.Client) chi.Router {
	r := chi.NewRouter()
	r.Use(logging.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	requireUser := middleware.RequireUser(issuer, store)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", handlers.LoginHandler(store, issuer))
		r.Post("/register", handlers.RegisterHandler(store))
		r.With(requireUser).Get("/me", handlers.MeHandler())
		r.With(requireUser).Patch("/me", handlers.UpdateMeHandler(store))
	})

	r.Route("/api/oauth", func(r chi.Router) {
		r.Get("/authorize", handlers.AuthorizeHandler(mgr))
		r.Get("/callback", handlers.CallbackHandler(mgr))
	})

	r.Route("/api/ls/inventory", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/items", handlers.ItemsHandler(mgr, client))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireUser)
		r.Use(middleware.RequireAdmin)
		r.Get("/accounts", handlers.ListAccountsHandler(store))
		r.Get("/oauth/token", handlers.TokenStatusHandler(mgr))
	})

	return r
}

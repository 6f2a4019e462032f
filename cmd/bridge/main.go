package main

import (
	"log"
	"net/http"

	"github.com/colbyc/lightspeed-bridge/internal/accounts"
	"github.com/colbyc/lightspeed-bridge/internal/api"
	"github.com/colbyc/lightspeed-bridge/internal/auth/session"
	"github.com/colbyc/lightspeed-bridge/internal/auth/token"
	"github.com/colbyc/lightspeed-bridge/internal/config"
	"github.com/colbyc/lightspeed-bridge/internal/db"
	"github.com/colbyc/lightspeed-bridge/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store := accounts.NewStore(database)
	issuer := session.NewIssuer(cfg.SecretKey, config.SessionTTL)
	tokenManager := token.NewManager(database, cfg.OAuth)
	upstreamClient := upstream.NewClient(cfg.OAuth.APIBaseURL, cfg.OAuth.AccountID)

	r := api.NewRouter(store, issuer, tokenManager, upstreamClient)

	log.Printf("🚀 Lightspeed bridge starting on http://%s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

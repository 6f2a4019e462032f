package db

import (
	"path/filepath"
	"testing"

	"github.com/colbyc/lightspeed-bridge/internal/db/models"
)

func TestInitDBMigrates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bridge.db")

	database, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}

	if !database.Migrator().HasTable(&models.Account{}) {
		t.Fatal("expected accounts table")
	}
	if !database.Migrator().HasTable(&models.AuthToken{}) {
		t.Fatal("expected auth_tokens table")
	}
}

func TestUniqueEmailEnforced(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bridge.db")
	database, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}

	first := models.Account{ID: "acc-1", Email: "dup@x.com", PasswordHash: "h", FullName: "A"}
	if err := database.Create(&first).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	second := models.Account{ID: "acc-2", Email: "dup@x.com", PasswordHash: "h", FullName: "B"}
	if err := database.Create(&second).Error; err == nil {
		t.Fatal("expected unique constraint violation on email")
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/colbyc/lightspeed-bridge/internal/accounts"
	"github.com/colbyc/lightspeed-bridge/internal/auth/session"
	"github.com/colbyc/lightspeed-bridge/internal/db/models"
)

func newFixture(t *testing.T) (*accounts.Store, *session.Issuer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return accounts.NewStore(db), session.NewIssuer("test-secret", time.Hour), db
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AccountFrom(r.Context()); !ok {
			t.Error("expected account in context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUserMissingHeader(t *testing.T) {
	store, issuer, _ := newFixture(t)
	h := RequireUser(issuer, store)(okHandler(t))

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authenticated") {
		t.Fatalf("expected Not authenticated detail, got %s", w.Body.String())
	}
}

func TestRequireUserInvalidToken(t *testing.T) {
	store, issuer, _ := newFixture(t)
	h := RequireUser(issuer, store)(okHandler(t))

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid token") {
		t.Fatalf("expected Invalid token detail, got %s", w.Body.String())
	}
}

func TestRequireUserDeletedAccount(t *testing.T) {
	store, issuer, db := newFixture(t)
	account, err := store.Register("jdoe@acme.org", "Passw0rd", "John Doe")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	tokenStr, _, err := issuer.Issue(account.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := db.Delete(&models.Account{}, "id = ?", account.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	h := RequireUser(issuer, store)(okHandler(t))
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("valid token for a deleted account must 401, got %d", w.Code)
	}
}

func TestRequireUserSuccess(t *testing.T) {
	store, issuer, _ := newFixture(t)
	account, err := store.Register("jdoe@acme.org", "Passw0rd", "John Doe")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	tokenStr, _, err := issuer.Issue(account.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	h := RequireUser(issuer, store)(okHandler(t))
	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	store, issuer, db := newFixture(t)

	streamer, err := store.Register("user@acme.org", "Passw0rd", "Plain User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	admin, err := store.Register("admin@acme.org", "Passw0rd", "Admin User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := db.Model(&models.Account{}).Where("id = ?", admin.ID).
		Update("account_type", models.AccountTypeAdmin).Error; err != nil {
		t.Fatalf("promote: %v", err)
	}

	h := RequireUser(issuer, store)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	do := func(accountID string) *httptest.ResponseRecorder {
		tokenStr, _, err := issuer.Issue(accountID)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest("GET", "/api/admin/accounts", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := do(streamer.ID); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for streamer, got %d", w.Code)
	}
	if w := do(admin.ID); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListItems(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ItemMatrix":[{"itemMatrixID":"7"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "12345")
	body, err := client.ListItems(context.Background(), "access-token")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}

	if gotPath != "/Account/12345/ItemMatrix.json" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer access-token" {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
	if !strings.Contains(string(body), "itemMatrixID") {
		t.Fatalf("expected upstream body passthrough, got %s", body)
	}
}

func TestListItemsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "12345")
	_, err := client.ListItems(context.Background(), "stale-token")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "invalid_token") {
		t.Fatalf("expected upstream body retained, got %q", apiErr.Body)
	}
}

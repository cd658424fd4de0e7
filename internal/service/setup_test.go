package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/estatehub/estatehub/internal/auth"
	"github.com/estatehub/estatehub/internal/models"
	"github.com/estatehub/estatehub/internal/storage"
	"github.com/estatehub/estatehub/internal/storage/sqlite"
)

// setupTestServer starts the full router on a temp SQLite database.
func setupTestServer(t *testing.T) (*httptest.Server, storage.Store, *auth.JWTManager) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "estatehub-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-for-tests-only", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := httptest.NewServer(NewRouter(store, jwtManager, authenticator))
	t.Cleanup(server.Close)

	return server, store, jwtManager
}

// seedAccount creates an account directly in the store and returns a token
// for it.
func seedAccount(t *testing.T, store storage.Store, jwtManager *auth.JWTManager, email, role string) string {
	t.Helper()

	account := &models.Account{Email: email, Role: role}
	if _, err := store.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	token, err := jwtManager.Generate(email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// doJSON performs a JSON request and decodes the response body into out
// (when out is non-nil).
func doJSON(t *testing.T, method, url, token string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp
}

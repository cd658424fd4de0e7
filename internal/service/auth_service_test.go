package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/estatehub/estatehub/internal/models"
)

func TestAuthFlow(t *testing.T) {
	server, _, _ := setupTestServer(t)

	t.Run("register then login issues usable tokens", func(t *testing.T) {
		var reg tokenResponse
		resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
			"email":    "fresh@x.com",
			"name":     "Fresh",
			"password": "long-enough-password",
		}, &reg)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Register status mismatch: got %d, want 201", resp.StatusCode)
		}
		if reg.Token == "" {
			t.Fatal("Expected a token from registration")
		}
		if reg.Account.Role != models.RoleMember {
			t.Errorf("Role mismatch: got %s, want member", reg.Account.Role)
		}

		var login tokenResponse
		resp = doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
			"email":    "fresh@x.com",
			"password": "long-enough-password",
		}, &login)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Login status mismatch: got %d, want 200", resp.StatusCode)
		}

		// The token works against an authenticated route.
		resp = doJSON(t, http.MethodGet, server.URL+"/accounts/admin/fresh@x.com", login.Token, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Self admin check status mismatch: got %d, want 200", resp.StatusCode)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
			"email":    "fresh@x.com",
			"password": "not-the-password",
		}, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Status mismatch: got %d, want 401", resp.StatusCode)
		}
	})

	t.Run("short passwords are rejected at registration", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
			"email":    "short@x.com",
			"name":     "Short",
			"password": "short",
		}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Status mismatch: got %d, want 400", resp.StatusCode)
		}
	})
}

// A token outlives the privileges it was issued under: role comes from the
// store on every request, so deleting the account revokes access even
// while the token is still cryptographically valid.
func TestDeletedAccountLosesAccess(t *testing.T) {
	server, store, jwtManager := setupTestServer(t)

	adminToken := seedAccount(t, store, jwtManager, "root@x.com", models.RoleAdmin)
	doomedToken := seedAccount(t, store, jwtManager, "doomed@x.com", models.RoleAdmin)

	resp := doJSON(t, http.MethodGet, server.URL+"/admin-stats", doomedToken, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status mismatch before deletion: got %d, want 200", resp.StatusCode)
	}

	doomed, err := store.GetAccountByEmail(context.Background(), "doomed@x.com")
	if err != nil || doomed == nil {
		t.Fatalf("failed to load account: %v", err)
	}
	resp = doJSON(t, http.MethodDelete, server.URL+"/accounts/"+doomed.ID, adminToken, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Delete status mismatch: got %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/admin-stats", doomedToken, nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Status mismatch after deletion: got %d, want 403", resp.StatusCode)
	}
}

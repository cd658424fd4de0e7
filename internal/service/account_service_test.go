package service

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/estatehub/estatehub/internal/models"
)

func TestAccountAuthorization(t *testing.T) {
	server, store, jwtManager := setupTestServer(t)

	adminToken := seedAccount(t, store, jwtManager, "admin@x.com", models.RoleAdmin)
	memberToken := seedAccount(t, store, jwtManager, "member@x.com", models.RoleMember)

	t.Run("missing token yields 401", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/accounts", "", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Status mismatch: got %d, want 401", resp.StatusCode)
		}
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/accounts", "not-a-token", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Status mismatch: got %d, want 401", resp.StatusCode)
		}
	})

	t.Run("member cannot list accounts", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/accounts", memberToken, nil, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status mismatch: got %d, want 403", resp.StatusCode)
		}
	})

	t.Run("admin lists accounts", func(t *testing.T) {
		var accounts []models.Account
		resp := doJSON(t, http.MethodGet, server.URL+"/accounts", adminToken, nil, &accounts)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
		}
		if len(accounts) != 2 {
			t.Errorf("Account count mismatch: got %d, want 2", len(accounts))
		}
	})

	t.Run("admin check is self-only", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/accounts/admin/admin@x.com", memberToken, nil, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status mismatch: got %d, want 403", resp.StatusCode)
		}
	})

	t.Run("promotion grants admin and the check reflects it", func(t *testing.T) {
		target, err := store.GetAccountByEmail(context.Background(), "member@x.com")
		if err != nil || target == nil {
			t.Fatalf("failed to load member account: %v", err)
		}

		resp := doJSON(t, http.MethodPatch, server.URL+"/accounts/admin/"+target.ID, adminToken, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Promote status mismatch: got %d, want 200", resp.StatusCode)
		}

		var body struct {
			Admin bool `json:"admin"`
		}
		resp = doJSON(t, http.MethodGet, server.URL+"/accounts/admin/member@x.com", memberToken, nil, &body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("IsAdmin status mismatch: got %d, want 200", resp.StatusCode)
		}
		if !body.Admin {
			t.Error("Expected promoted account to report admin: true")
		}
	})

	t.Run("admins cannot change their own role", func(t *testing.T) {
		self, err := store.GetAccountByEmail(context.Background(), "admin@x.com")
		if err != nil || self == nil {
			t.Fatalf("failed to load admin account: %v", err)
		}

		resp := doJSON(t, http.MethodPatch, server.URL+"/accounts/admin/"+self.ID, adminToken, nil, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status mismatch: got %d, want 403", resp.StatusCode)
		}
	})
}

func TestAccountCreateIdempotent(t *testing.T) {
	server, _, _ := setupTestServer(t)

	body := map[string]string{"email": "new@x.com", "name": "New"}

	resp := doJSON(t, http.MethodPost, server.URL+"/accounts", "", body, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Status mismatch: got %d, want 201", resp.StatusCode)
	}

	var second struct {
		Message    string  `json:"message"`
		InsertedID *string `json:"insertedId"`
	}
	resp = doJSON(t, http.MethodPost, server.URL+"/accounts", "", body, &second)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
	}
	if second.InsertedID != nil {
		t.Errorf("Expected no insert on duplicate, got id %v", *second.InsertedID)
	}
	if second.Message == "" {
		t.Error("Expected an explanatory message on duplicate")
	}
}

// Simultaneous sign-ins for the same identity must create one account;
// every loser gets the duplicate acknowledgment, never an error.
func TestAccountCreateConcurrent(t *testing.T) {
	server, store, _ := setupTestServer(t)

	const callers = 4
	statuses := make([]int, callers)
	reqErrs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := strings.NewReader(`{"email":"racer@x.com","name":"Racer"}`)
			resp, err := http.Post(server.URL+"/accounts", "application/json", body)
			if err != nil {
				reqErrs[i] = err
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for i := 0; i < callers; i++ {
		if reqErrs[i] != nil {
			t.Fatalf("Request %d failed: %v", i, reqErrs[i])
		}
		switch statuses[i] {
		case http.StatusCreated:
			created++
		case http.StatusOK:
		default:
			t.Errorf("Caller %d got unexpected status %d", i, statuses[i])
		}
	}
	if created != 1 {
		t.Errorf("Expected exactly one creation, got %d (statuses %v)", created, statuses)
	}

	accounts, err := store.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("Account count mismatch: got %d, want 1", len(accounts))
	}
}

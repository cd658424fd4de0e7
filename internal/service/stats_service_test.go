package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/estatehub/estatehub/internal/models"
)

func TestAdminStatsScenario(t *testing.T) {
	server, store, jwtManager := setupTestServer(t)

	adminToken := seedAccount(t, store, jwtManager, "root@x.com", models.RoleAdmin)
	userToken := seedAccount(t, store, jwtManager, "a@x.com", models.RoleMember)

	t.Run("member is forbidden", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/admin-stats", userToken, nil, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("Status mismatch: got %d, want 403", resp.StatusCode)
		}
	})

	t.Run("promoted member reads stats with zero revenue", func(t *testing.T) {
		target, err := store.GetAccountByEmail(context.Background(), "a@x.com")
		if err != nil || target == nil {
			t.Fatalf("failed to load account: %v", err)
		}
		resp := doJSON(t, http.MethodPatch, server.URL+"/accounts/admin/"+target.ID, adminToken, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Promote status mismatch: got %d, want 200", resp.StatusCode)
		}

		var stats models.AdminStats
		resp = doJSON(t, http.MethodGet, server.URL+"/admin-stats", userToken, nil, &stats)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
		}
		if stats.Users != 2 {
			t.Errorf("Users mismatch: got %d, want 2", stats.Users)
		}
		if stats.Revenue != 0 {
			t.Errorf("Revenue mismatch: got %f, want 0", stats.Revenue)
		}
	})

	t.Run("revenue equals the sum of payment amounts", func(t *testing.T) {
		for i, amount := range []float64{10, 15.5} {
			payment := &models.Payment{
				Email:         "a@x.com",
				Amount:        amount,
				TransactionID: "tx-rev-" + string(rune('a'+i)),
			}
			if _, err := store.CreatePayment(context.Background(), payment); err != nil {
				t.Fatalf("CreatePayment failed: %v", err)
			}
		}

		var stats models.AdminStats
		resp := doJSON(t, http.MethodGet, server.URL+"/admin-stats", adminToken, nil, &stats)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
		}
		if stats.Orders != 2 {
			t.Errorf("Orders mismatch: got %d, want 2", stats.Orders)
		}
		if stats.Revenue != 25.5 {
			t.Errorf("Revenue mismatch: got %f, want 25.5", stats.Revenue)
		}
	})
}

func TestOrderStatsExcludesOrphanedLines(t *testing.T) {
	server, store, jwtManager := setupTestServer(t)
	adminToken := seedAccount(t, store, jwtManager, "root@x.com", models.RoleAdmin)

	kept := &models.MenuItem{Name: "Loft", Category: "apartments", Price: 1200}
	doomed := &models.MenuItem{Name: "Shed", Category: "outbuildings", Price: 300}
	for _, item := range []*models.MenuItem{kept, doomed} {
		if err := store.CreateMenuItem(context.Background(), item); err != nil {
			t.Fatalf("CreateMenuItem failed: %v", err)
		}
	}

	payment := &models.Payment{
		Email:         "buyer@x.com",
		Amount:        1500,
		TransactionID: "tx-orders-1",
		MenuItemIDs:   []string{kept.ID, doomed.ID},
	}
	if _, err := store.CreatePayment(context.Background(), payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	if err := store.DeleteMenuItem(context.Background(), doomed.ID); err != nil {
		t.Fatalf("DeleteMenuItem failed: %v", err)
	}

	var stats []models.CategoryStat
	resp := doJSON(t, http.MethodGet, server.URL+"/order-stats", adminToken, nil, &stats)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status mismatch: got %d, want 200", resp.StatusCode)
	}
	if len(stats) != 1 {
		t.Fatalf("Expected one category, got %d: %+v", len(stats), stats)
	}
	if stats[0].Category != "apartments" || stats[0].Quantity != 1 || stats[0].Revenue != 1200 {
		t.Errorf("Unexpected category stat: %+v", stats[0])
	}
}

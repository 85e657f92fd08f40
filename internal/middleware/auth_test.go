package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jyelen1110/alfies-server/internal/models"
	"github.com/jyelen1110/alfies-server/internal/utils"
)

const testSecret = "test-secret-key"

func protected(gotTenant *string) http.Handler {
	return Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotTenant = TenantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthValidToken(t *testing.T) {
	token, err := utils.GenerateToken(&models.UserAuth{
		ID:       "user-1",
		TenantID: "tenant-1",
		Email:    "owner@example.com",
	}, testSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotTenant string
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(&gotTenant).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotTenant != "tenant-1" {
		t.Errorf("tenant from context = %q, want tenant-1", gotTenant)
	}
}

func TestAuthRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, c := range cases {
		var gotTenant string
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		protected(&gotTenant).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", c.name, rec.Code)
		}
	}
}

func TestAuthWrongKey(t *testing.T) {
	token, err := utils.GenerateToken(&models.UserAuth{ID: "user-1", TenantID: "tenant-1"}, "other-secret")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotTenant string
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(&gotTenant).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("token signed with a different key must be rejected, got %d", rec.Code)
	}
}

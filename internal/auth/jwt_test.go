package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casavia/casavia-be/internal/models"
)

func testUser() models.User {
	return models.User{
		ID:       "user-1",
		Username: "Max Robinson",
		Roles:    []string{models.RoleUser},
	}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Username != "Max Robinson" {
		t.Errorf("Username = %q, want %q", claims.Username, "Max Robinson")
	}
	if !claims.HasRole(models.RoleUser) || claims.HasRole(models.RoleHost) {
		t.Errorf("Roles = %v, want [USER]", claims.Roles)
	}
}

func TestValidateJWT_RejectsGarbageAndExpired(t *testing.T) {
	Configure("test-secret", time.Hour)

	if _, err := ValidateJWT("dummy-token-for-user-1"); err == nil {
		t.Error("expected error for non-JWT token")
	}

	Configure("test-secret", -time.Hour)
	expired, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	Configure("test-secret", time.Hour)
	if _, err := ValidateJWT(expired); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateJWT_RejectsWrongKey(t *testing.T) {
	Configure("other-secret", time.Hour)
	token, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	Configure("test-secret", time.Hour)
	if _, err := ValidateJWT(token); err == nil {
		t.Error("expected error for token signed with a different key")
	}
}

func protectedProbe(t *testing.T, header string, mw ...func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			t.Error("claims missing from request context")
		}
		w.WriteHeader(http.StatusOK)
	})
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"missing bearer prefix", token, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := protectedProbe(t, tc.header, JWTMiddleware())
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
			if tc.want != http.StatusOK {
				if got := w.Header().Get("Content-Type"); got != "application/json" {
					t.Errorf("Content-Type = %q, want application/json error body", got)
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	Configure("test-secret", time.Hour)

	guestToken, err := GenerateJWT(testUser())
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	host := testUser()
	host.Roles = []string{models.RoleUser, models.RoleHost}
	hostToken, err := GenerateJWT(host)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if w := protectedProbe(t, "Bearer "+hostToken, JWTMiddleware(), RequireRole(models.RoleHost)); w.Code != http.StatusOK {
		t.Errorf("host token: status = %d, want 200", w.Code)
	}
	if w := protectedProbe(t, "Bearer "+guestToken, JWTMiddleware(), RequireRole(models.RoleHost)); w.Code != http.StatusForbidden {
		t.Errorf("guest token: status = %d, want 403", w.Code)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

func testToken(t *testing.T, secret, userID, coopID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"coop": coopID,
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestAuthMiddlewareInjectsIdentity(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	var gotUser, gotCoop, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotCoop, gotRole = Identity(r.Context())
	})

	req := httptest.NewRequest("GET", "/payments/summary", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, "test-secret", "u1", "c1", models.RoleMember))
	rec := httptest.NewRecorder()

	AuthMiddleware(cfg)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotUser != "u1" || gotCoop != "c1" || gotRole != models.RoleMember {
		t.Errorf("identity: got (%q, %q, %q)", gotUser, gotCoop, gotRole)
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for rejected requests")
	})

	cases := map[string]string{
		"missing header": "",
		"no bearer":      "Token abc",
		"wrong secret":   "Bearer " + testToken(t, "other-secret", "u1", "c1", models.RoleMember),
		"garbage":        "Bearer not.a.token",
	}
	for name, header := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		AuthMiddleware(cfg)(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status got %d, want 401", name, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	cases := []struct {
		role       string
		allowed    []string
		wantStatus int
	}{
		{models.RoleManager, []string{models.RoleManager}, http.StatusOK},
		{models.RoleSuperadmin, []string{models.RoleManager}, http.StatusOK},
		{models.RoleMember, []string{models.RoleManager}, http.StatusForbidden},
		{"", []string{models.RoleManager}, http.StatusForbidden},
	}
	for _, tc := range cases {
		called = false
		cfg := &config.Config{JWTSecret: "test-secret"}
		req := httptest.NewRequest("POST", "/fees", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, "test-secret", "u1", "c1", tc.role))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg)(RequireRole(tc.allowed...)(next)).ServeHTTP(rec, req)

		wantCalled := tc.wantStatus == http.StatusOK
		if tc.role == "" {
			// Empty role is rejected by the auth middleware itself.
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("role %q: status got %d, want 401", tc.role, rec.Code)
			}
			continue
		}
		if rec.Code != tc.wantStatus {
			t.Errorf("role %q: status got %d, want %d", tc.role, rec.Code, tc.wantStatus)
		}
		if called != wantCalled {
			t.Errorf("role %q: handler called = %v, want %v", tc.role, called, wantCalled)
		}
	}
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayush931/stackskills/internal/auth"
	"github.com/ayush931/stackskills/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "stackskills",
		JWTAudience: "stackskills",
		TokenTTL:    time.Hour,
		Environment: "development",
	}
	server, err := NewServer(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestAuthenticateWithoutToken(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Fatal("expected success=false")
	}
	if resp.Message != "Unauthorized - No token provided" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestAuthenticateWithInvalidToken(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Unauthorized - Invalid token" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestAdminRouteRejectsUserRole(t *testing.T) {
	server := newTestServer(t)

	token, err := server.tokens.Issue("user-1", "9876543210", auth.RoleUser, "Asha")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	resp := decodeResponse(t, rec)
	if !strings.Contains(resp.Message, "USER role does not have access") {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestUserRouteRejectsAdminRole(t *testing.T) {
	server := newTestServer(t)

	token, err := server.tokens.Issue("admin-1", "9876543210", auth.RoleAdmin, "Admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	server := newTestServer(t)

	body := `{"name":"Asha","phone":"9876543210"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rec)
	if !strings.Contains(resp.Message, "schoolName") || !strings.Contains(resp.Message, "password") {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	server := newTestServer(t)

	body := `{"name":"Asha","phone":"9876543210","schoolName":"DPS","className":"7A",` +
		`"password":"Str0ng!Pass","confirmPassword":"Other!Pass1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Password and Confirm Password should be same" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	server := newTestServer(t)

	body := `{"name":"Asha","phone":"9876543210","schoolName":"DPS","className":"7A",` +
		`"password":"password123","confirmPassword":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Success {
		t.Fatal("expected success=false")
	}
}

func TestRegisterInvalidPhone(t *testing.T) {
	server := newTestServer(t)

	body := `{"name":"Asha","phone":"1234567890","schoolName":"DPS","className":"7A",` +
		`"password":"Str0ng!Pass","confirmPassword":"Str0ng!Pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Phone number must start with 6, 7, 8, or 9" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestLoginMissingFields(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"phone":"9876543210"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Missing fields required: phone, password" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestLogoutWithoutToken(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Unauthorized - token is not available" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestVerifyWithoutToken(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Login first!!!" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestVerifyWithGarbageToken(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Login with correct credentials" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestSessionCookieFlags(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.setSessionCookie(rec, "some-token")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != sessionCookieName {
		t.Fatalf("cookie name = %q", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie SameSite = %v", cookie.SameSite)
	}
	if cookie.Secure {
		t.Fatal("cookie must not be Secure outside production")
	}
	if cookie.MaxAge != int(time.Hour/time.Second) {
		t.Fatalf("cookie MaxAge = %d", cookie.MaxAge)
	}
}

func TestClearSessionCookie(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.clearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Fatalf("cookie MaxAge = %d, want -1", cookies[0].MaxAge)
	}
}

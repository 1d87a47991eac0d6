package controller_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"username":"admin","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var marker *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "admin_token" {
			marker = cookie
		}
	}
	if marker == nil || marker.Value == "" {
		t.Fatal("expected the admin marker cookie to be set")
	}
	if !marker.HttpOnly {
		t.Error("admin marker must be http-only")
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"username":"admin","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("failed login must not set cookies")
	}
}

func TestLoginMissingFields(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"username":"admin"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCheckAuth(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/check-auth", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with marker, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/check-auth", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without marker, got %d", w.Code)
	}
}

func TestCheckAuthForgedMarker(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "true"})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("forged marker must be rejected, got %d", w.Code)
	}
}

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter() *gin.Engine {
	router := gin.New()
	router.Use(AdminMiddleware())
	router.POST("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestAdminMiddlewareMissingCookie(t *testing.T) {
	router := newGuardedRouter()

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAdminMiddlewareInvalidToken(t *testing.T) {
	router := newGuardedRouter()

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "not-a-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAdminMiddlewareValidToken(t *testing.T) {
	router := newGuardedRouter()

	token, err := GenerateAdminToken()
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestValidateAdminToken(t *testing.T) {
	token, err := GenerateAdminToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateAdminToken(token); err != nil {
		t.Errorf("fresh token must validate: %v", err)
	}
	if err := ValidateAdminToken("garbage"); err == nil {
		t.Error("garbage must not validate")
	}
}

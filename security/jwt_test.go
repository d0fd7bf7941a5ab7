package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := SignAccessToken(testSecret, "user-1", "doctor")
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	userID, role, err := VerifyAccessToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if userID != "user-1" || role != "doctor" {
		t.Errorf("got (%s, %s)", userID, role)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := SignAccessToken(testSecret, "user-1", "doctor")
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}

	if _, _, err := VerifyAccessToken("other-secret", token); err == nil {
		t.Fatal("expected verification failure with the wrong secret")
	}
}

func TestSignRequiresSecret(t *testing.T) {
	if _, err := SignAccessToken("", "user-1", "doctor"); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func middlewareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(ContextUserID),
			"role":    c.GetString(ContextRole),
		})
	})
	r.GET("/doctor-only", AuthMiddleware(testSecret), RequireRole("doctor"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	r := middlewareRouter()
	token, _ := SignAccessToken(testSecret, "user-1", "doctor")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := middlewareRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	r := middlewareRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	r := middlewareRouter()
	token, _ := SignAccessToken(testSecret, "user-2", "patient")

	req := httptest.NewRequest(http.MethodGet, "/doctor-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

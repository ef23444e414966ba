package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/utils"
)

const testSecret = "test-secret"

func runJWTAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTAuth(testSecret, "", "")
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, c
}

func TestJWTAuthRejectsMissingBearer(t *testing.T) {
	rec, _ := runJWTAuth(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := runJWTAuth(t, "Bearer nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, "", "", utils.TokenClaims{
		UserID: 42, Username: "zer", Email: "a@x.com", Role: "User",
	}, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	rec, c := runJWTAuth(t, "Bearer "+access.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if c.Get("role") != "User" || c.Get("email") != "a@x.com" || c.Get("name") != "zer" {
		t.Fatalf("claims not injected: role=%v email=%v name=%v",
			c.Get("role"), c.Get("email"), c.Get("name"))
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", "", "", utils.TokenClaims{UserID: 1, Role: "User"}, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	rec, _ := runJWTAuth(t, "Bearer "+access.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

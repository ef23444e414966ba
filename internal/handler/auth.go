package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/config"
	"github.com/kosratdiaz/barber-reservation/internal/model"
	"github.com/kosratdiaz/barber-reservation/internal/repository"
	"github.com/kosratdiaz/barber-reservation/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	if u == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// issueTokens builds a fresh access/refresh pair for the user, persists the
// rotated refresh token and sets the httponly session cookies.
func (h *AuthHandler) issueTokens(ctx context.Context, c echo.Context, u model.User) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.Issuer, h.Cfg.Audience, utils.TokenClaims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.RoleID,
	}, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Users.UpdateRefreshToken(ctx, u.ID, refresh.Raw, refresh.Exp); err != nil {
		return authResp{}, err
	}

	setSessionCookie(c, "jwt", access.Token, access.Exp)
	setSessionCookie(c, "refresh_token", refresh.Raw, refresh.Exp)

	return authResp{
		User:    userPart{ID: u.ID, Email: u.Email, Username: u.Username, Role: u.RoleID},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	}, nil
}

// Register: create user and return tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password cannot be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// New accounts always start as plain users; admins are promoted out of band.
	uid, err := h.Users.Create(ctx, req.Email, req.Username, hash, model.RoleUser)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	resp, err := h.issueTokens(ctx, c, model.User{
		ID:       uid,
		RoleID:   model.RoleUser,
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login: verify credentials and return a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ok, err := utils.VerifyPassword(u.PasswordHash, req.Password)
	if err != nil || !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issueTokens(ctx, c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh: exchange a valid refresh token for a new pair.  The old token is
// invalidated by overwrite, so each refresh token works exactly once.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := h.refreshTokenFrom(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByRefreshToken(ctx, raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if u.RefreshTokenExpiresAt == nil || time.Now().UTC().After(*u.RefreshTokenExpiresAt) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	resp, err := h.issueTokens(ctx, c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout: invalidate the caller's refresh token server side and expire the
// session cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := h.refreshTokenFrom(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw != "" {
		if u, err := h.Users.GetByRefreshToken(ctx, raw); err == nil {
			if err := h.Users.ClearRefreshToken(ctx, u.ID); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
			}
		}
	}

	expireSessionCookie(c, "jwt")
	expireSessionCookie(c, "refresh_token")
	return c.NoContent(http.StatusNoContent)
}

// Me: simple protected endpoint returning the caller's claims.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"name":    c.Get("name"),
		"email":   c.Get("email"),
		"role":    c.Get("role"),
	})
}

// refreshTokenFrom reads the refresh token from the JSON body, falling back
// to the session cookie set at login.
func (h *AuthHandler) refreshTokenFrom(c echo.Context) string {
	var req refreshReq
	_ = c.Bind(&req)
	if raw := strings.TrimSpace(req.RefreshToken); raw != "" {
		return raw
	}
	if cookie, err := c.Cookie("refresh_token"); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

func setSessionCookie(c echo.Context, name, value string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func expireSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

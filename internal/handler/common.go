package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/model"
)

// caller is the identity JWTAuth stored in the request context.  Email and
// username come straight from the token claims so booking does not need an
// extra user lookup.
type caller struct {
	UserID   uint64
	Email    string
	Username string
	Role     string
}

func (c caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// currentCaller extracts the authenticated identity from echo.Context.  It
// returns an error when the context carries no usable subject claim, which
// handlers translate into 401.
func currentCaller(c echo.Context) (caller, error) {
	id, err := getUserID(c)
	if err != nil {
		return caller{}, err
	}
	out := caller{UserID: id}
	if v, ok := c.Get("email").(string); ok {
		out.Email = v
	}
	if v, ok := c.Get("name").(string); ok {
		out.Username = v
	}
	if v, ok := c.Get("role").(string); ok {
		out.Role = v
	}
	return out, nil
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JSON numbers decode as float64, so several shapes are accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

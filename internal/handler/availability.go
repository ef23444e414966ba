package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/model"
	"github.com/kosratdiaz/barber-reservation/internal/repository"
)

// AvailabilityHandler exposes the admin-managed calendar of bookable days.
// Listing is public; publishing replaces the whole calendar at once, which
// matches how the admin UI edits it.
type AvailabilityHandler struct {
	Availability *repository.AvailabilityRepo
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(a *repository.AvailabilityRepo) *AvailabilityHandler {
	if a == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Availability: a}
}

type availabilityDay struct {
	Date      string   `json:"date"`
	TimeSlots []string `json:"time_slots"`
}

// List handles GET /v1/availability.  The route sits behind the Redis
// response cache, so most reads never reach the database.
func (h *AvailabilityHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	days, err := h.Availability.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, days)
}

// Replace handles POST /v1/availability (admin only).  The submitted days
// replace the published calendar atomically.
func (h *AvailabilityHandler) Replace(c echo.Context) error {
	var body []availabilityDay
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(body) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid availability data"})
	}
	days := make([]model.Availability, 0, len(body))
	for _, d := range body {
		date := strings.TrimSpace(d.Date)
		if date == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required for every day"})
		}
		days = append(days, model.Availability{Date: date, TimeSlots: d.TimeSlots})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Availability.ReplaceAll(ctx, days); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update availability failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "availability updated"})
}

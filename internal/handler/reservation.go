package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/model"
	"github.com/kosratdiaz/barber-reservation/internal/queue"
	"github.com/kosratdiaz/barber-reservation/internal/repository"
	queue_publisher "github.com/kosratdiaz/barber-reservation/internal/service"
)

// ReservationHandler serves booking endpoints for customers and the
// accept/cancel/listing endpoints for admins.  JWT authentication and role
// checks run in middleware before any of these methods execute; the booking
// identity (user id, email, username) is taken from the token claims, never
// from the request body.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(r *repository.ReservationRepo) *ReservationHandler {
	if r == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: r}
}

type createReservationReq struct {
	Date time.Time `json:"date"`
}

// Create handles POST /v1/reservations.  A user may hold only one active
// reservation; a second booking attempt is rejected with 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	who, err := currentCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Create(ctx, who.UserID, who.Email, who.Username, req.Date.UTC())
	if err != nil {
		if errors.Is(err, repository.ErrReservationExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	publishEvent(queue.EventReservationBooked, res)
	return c.JSON(http.StatusCreated, res)
}

// ListMine handles GET /v1/reservations/user and returns the caller's
// reservations.  An empty list is a normal 200 response.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	who, err := currentCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByEmail(ctx, who.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// ListAll handles GET /v1/reservations (admin only), ordered by date then
// username.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// Accept handles PATCH /v1/reservations/:id/accept (admin only).  Accepting
// an already accepted reservation succeeds without change.
func (h *ReservationHandler) Accept(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Accept(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept failed"})
	}

	publishEvent(queue.EventReservationAccepted, res)
	return c.JSON(http.StatusOK, res)
}

// Cancel handles PATCH /v1/reservations/:id/cancel (admin only).  An
// accepted reservation is kept as CANCELLED history; anything else is
// removed.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.Cancel(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	publishEvent(queue.EventReservationCancelled, res)
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /v1/reservations/:id.  Owners may delete while the
// reservation is still pending; admins may always delete.
func (h *ReservationHandler) Delete(c echo.Context) error {
	who, err := currentCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.Delete(ctx, id, who.UserID, who.IsAdmin()); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation deleted"})
}

// publishEvent fires a reservation lifecycle event in the background.  The
// broker being down must never fail a booking, so errors are logged inside
// the publisher and dropped here.
func publishEvent(eventType string, res model.Reservation) {
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		UserID:        res.UserID,
		Email:         res.Email,
		Username:      res.Username,
		Date:          res.Date.UTC().Format(time.RFC3339),
		Status:        res.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationEvent(ctx, ev)
	}()
}

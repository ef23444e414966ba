package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/kosratdiaz/barber-reservation/internal/model"
	"github.com/kosratdiaz/barber-reservation/internal/repository"
)

func newReservationTest(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	h := NewReservationHandler(repository.NewReservationRepo(db))
	return h, mock, func() { db.Close() }
}

// asUser injects the identity JWTAuth would have stored for a logged-in user.
func asUser(c echo.Context, id uint64, email, name, role string) {
	c.Set("user_id", float64(id)) // JSON numbers decode as float64
	c.Set("email", email)
	c.Set("name", name)
	c.Set("role", role)
}

func TestCreateReservationConflict(t *testing.T) {
	h, mock, closeDB := newReservationTest(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM reservations WHERE user_id=").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectRollback()

	e := echo.New()
	c, rec := postJSON(t, e, "/v1/reservations", `{"date":"2026-09-07T10:00:00Z"}`)
	asUser(c, 1, "a@x.com", "zer", model.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "reservation already exists") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreateReservationRequiresDate(t *testing.T) {
	h, _, closeDB := newReservationTest(t)
	defer closeDB()

	e := echo.New()
	c, rec := postJSON(t, e, "/v1/reservations", `{}`)
	asUser(c, 1, "a@x.com", "zer", model.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListMineReturnsEmptyListNotNotFound(t *testing.T) {
	h, mock, closeDB := newReservationTest(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .+ FROM reservations WHERE email=").
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "email", "username", "date", "status", "created_at", "updated_at",
		}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reservations/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	asUser(c, 1, "a@x.com", "zer", model.RoleUser)

	if err := h.ListMine(c); err != nil {
		t.Fatalf("ListMine error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %q, want empty JSON array", rec.Body.String())
	}
}

func TestDeleteReservationForbiddenForNonOwner(t *testing.T) {
	h, mock, closeDB := newReservationTest(t)
	defer closeDB()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM reservations WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "email", "username", "date", "status", "created_at", "updated_at",
		}).AddRow(7, 1, "a@x.com", "zer", now.Add(24*time.Hour), model.ReservationPending, now, now))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	asUser(c, 2, "b@x.com", "other", model.RoleUser)

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

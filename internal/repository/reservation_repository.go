package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kosratdiaz/barber-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for appointment reservations.
// A user holds at most one active (non-cancelled) reservation at a time;
// the invariant is enforced inside a transaction with a row lock so two
// concurrent bookings cannot both pass the existence check.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = "id,user_id,email,username,date,status,created_at,updated_at"

// Create books a new PENDING reservation for the user.  Email and username
// are stored as snapshots of the user at booking time.  It returns
// ErrReservationExists when the user already holds an active reservation.
func (r *ReservationRepo) Create(ctx context.Context, userID uint64, email, username string, date time.Time) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the user's existing reservation rows for the duration of the
	// transaction so a concurrent booking by the same user blocks here.
	var existing uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM reservations WHERE user_id=? AND status<>? LIMIT 1 FOR UPDATE",
		userID, model.ReservationCancelled).Scan(&existing)
	switch {
	case err == nil:
		return model.Reservation{}, ErrReservationExists
	case err != sql.ErrNoRows:
		return model.Reservation{}, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, email, username, date, status) VALUES (?,?,?,?,?)",
		userID, email, username, date, model.ReservationPending)
	if err != nil {
		return model.Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}

	var created model.Reservation
	if err := tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=?", id).
		Scan(&created.ID, &created.UserID, &created.Email, &created.Username,
			&created.Date, &created.Status, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return created, nil
}

// GetByID fetches a single reservation.  sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var res model.Reservation
	err := r.db.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=? LIMIT 1", id).
		Scan(&res.ID, &res.UserID, &res.Email, &res.Username,
			&res.Date, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

// Accept marks a reservation as accepted.  Accepting an already accepted
// reservation is a no-op success; only a missing row is an error.
func (r *ReservationRepo) Accept(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.Status == model.ReservationAccepted {
		return res, nil
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", model.ReservationAccepted, id); err != nil {
		return model.Reservation{}, err
	}
	res.Status = model.ReservationAccepted
	return res, nil
}

// Cancel handles an admin cancellation.  An accepted reservation is
// downgraded to CANCELLED so history survives and the user's booking slot
// frees up; a reservation in any other state is deleted outright.
func (r *ReservationRepo) Cancel(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.Status == model.ReservationAccepted {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE reservations SET status=? WHERE id=?", model.ReservationCancelled, id); err != nil {
			return model.Reservation{}, err
		}
		res.Status = model.ReservationCancelled
		return res, nil
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id); err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// Delete removes a reservation.  The owner may delete only while the
// reservation has not been accepted; admins may always delete.  Returns
// ErrForbidden on ownership or state violations and sql.ErrNoRows when the
// reservation does not exist.
func (r *ReservationRepo) Delete(ctx context.Context, id, callerID uint64, isAdmin bool) error {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin {
		if res.UserID != callerID {
			return ErrForbidden
		}
		if res.Status == model.ReservationAccepted {
			return ErrForbidden
		}
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	return err
}

// ListAll returns every reservation ordered by date then username.  An
// empty slice is a valid result, not an error.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations ORDER BY date, username")
}

// ListByEmail returns the reservations snapshotted under the given email,
// ordered by date.
func (r *ReservationRepo) ListByEmail(ctx context.Context, email string) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE email=? ORDER BY date", email)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.Email, &res.Username,
			&res.Date, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

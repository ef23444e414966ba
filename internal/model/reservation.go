package model

import "time"

// Reservation status values.  A reservation starts PENDING, an admin accept
// moves it to ACCEPTED, and an admin cancel of an accepted reservation moves
// it to CANCELLED while keeping the row for history.  The legacy schema kept
// three independent booleans; they collapse into this single enum so invalid
// combinations cannot be represented.
const (
	ReservationPending   = "PENDING"
	ReservationAccepted  = "ACCEPTED"
	ReservationCancelled = "CANCELLED"
)

// Reservation records a user's appointment booking.  Email and Username are
// denormalized snapshots of the user at booking time so the admin listing
// survives later profile changes.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the reservation.
//  Email     – user's email at booking time.
//  Username  – user's name at booking time.
//  Date      – appointment timestamp.
//  Status    – PENDING, ACCEPTED or CANCELLED.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64    `json:"id"`         // reservations.id
	UserID    uint64    `json:"user_id"`    // reservations.user_id
	Email     string    `json:"email"`      // reservations.email
	Username  string    `json:"username"`   // reservations.username
	Date      time.Time `json:"date"`       // reservations.date
	Status    string    `json:"status"`     // reservations.status
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
	UpdatedAt time.Time `json:"updated_at"` // reservations.updated_at
}

// Active reports whether the reservation still occupies the user's single
// booking slot.  Cancelled rows are history only.
func (r Reservation) Active() bool { return r.Status != ReservationCancelled }

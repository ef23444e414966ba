// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the reservation.events queue.
const (
	EventReservationBooked    = "reservation.booked"
	EventReservationAccepted  = "reservation.accepted"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published whenever a reservation changes state.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}

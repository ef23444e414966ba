package model

// Availability is one bookable day published by the admin, together with its
// ordered list of time slots (e.g. "09:00", "09:30").  Days are stored in
// the `availabilities` table and slots in `availability_slots`, ordered by
// their position column.
type Availability struct {
	ID        uint64   `json:"id"`         // availabilities.id
	Date      string   `json:"date"`       // availabilities.date (YYYY-MM-DD)
	TimeSlots []string `json:"time_slots"` // availability_slots.slot ordered by position
}

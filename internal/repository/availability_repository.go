package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kosratdiaz/barber-reservation/internal/model"
)

// AvailabilityRepo manages the admin-published calendar of bookable days.
// Days live in `availabilities` and their ordered time slots in
// `availability_slots`.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// List returns all published days with their slots in position order.
func (r *AvailabilityRepo) List(ctx context.Context) ([]model.Availability, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,date FROM availabilities ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	days := make([]model.Availability, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var day model.Availability
		if err := rows.Scan(&day.ID, &day.Date); err != nil {
			return nil, err
		}
		day.TimeSlots = []string{}
		index[day.ID] = len(days)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return days, nil
	}

	srows, err := r.db.QueryContext(ctx,
		"SELECT availability_id,slot FROM availability_slots ORDER BY availability_id, position")
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var dayID uint64
		var slot string
		if err := srows.Scan(&dayID, &slot); err != nil {
			return nil, err
		}
		if i, ok := index[dayID]; ok {
			days[i].TimeSlots = append(days[i].TimeSlots, slot)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

// ReplaceAll swaps the whole calendar for the given days inside a single
// transaction, so concurrent readers never observe the half-replaced state.
func (r *AvailabilityRepo) ReplaceAll(ctx context.Context, days []model.Availability) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM availability_slots"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM availabilities"); err != nil {
		return err
	}
	for _, day := range days {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO availabilities (date) VALUES (?)", day.Date)
		if err != nil {
			return err
		}
		dayID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if len(day.TimeSlots) == 0 {
			continue
		}
		// Bulk insert the day's slots in one statement.
		query := "INSERT INTO availability_slots (availability_id, slot, position) VALUES "
		placeholders := make([]string, 0, len(day.TimeSlots))
		args := make([]interface{}, 0, len(day.TimeSlots)*3)
		for i, slot := range day.TimeSlots {
			placeholders = append(placeholders, "(?,?,?)")
			args = append(args, dayID, slot, i)
		}
		if _, err := tx.ExecContext(ctx, query+strings.Join(placeholders, ","), args...); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

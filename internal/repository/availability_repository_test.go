package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kosratdiaz/barber-reservation/internal/model"
)

func TestAvailabilityReplaceAllIsTransactional(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewAvailabilityRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_slots")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availabilities")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availabilities (date) VALUES (?)")).
		WithArgs("2026-09-07").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO availability_slots (availability_id, slot, position) VALUES (?,?,?),(?,?,?)")).
		WithArgs(int64(3), "09:00", 0, int64(3), "09:30", 1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err = repo.ReplaceAll(context.Background(), []model.Availability{
		{Date: "2026-09-07", TimeSlots: []string{"09:00", "09:30"}},
	})
	if err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestAvailabilityReplaceAllRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewAvailabilityRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_slots")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availabilities")).
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err = repo.ReplaceAll(context.Background(), []model.Availability{{Date: "2026-09-07"}})
	if err == nil {
		t.Fatal("expected error from ReplaceAll")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestAvailabilityListAssemblesSlotsInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewAvailabilityRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,date FROM availabilities ORDER BY date")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date"}).
			AddRow(1, "2026-09-07").
			AddRow(2, "2026-09-08"))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT availability_id,slot FROM availability_slots ORDER BY availability_id, position")).
		WillReturnRows(sqlmock.NewRows([]string{"availability_id", "slot"}).
			AddRow(1, "09:00").
			AddRow(1, "09:30").
			AddRow(2, "14:00"))

	days, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("len(days) = %d, want 2", len(days))
	}
	if len(days[0].TimeSlots) != 2 || days[0].TimeSlots[1] != "09:30" {
		t.Fatalf("day 0 slots = %v", days[0].TimeSlots)
	}
	if len(days[1].TimeSlots) != 1 || days[1].TimeSlots[0] != "14:00" {
		t.Fatalf("day 1 slots = %v", days[1].TimeSlots)
	}
}

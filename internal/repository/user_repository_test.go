package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kosratdiaz/barber-reservation/internal/model"
)

func userRows(t *testing.T) *sqlmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "role_id", "email", "username", "password_hash", "is_email_confirmed",
		"refresh_token", "refresh_token_expires_at", "created_at", "updated_at",
	}).AddRow(1, "User", "a@x.com", "zer", "hash", false, nil, nil, now, now)
}

func TestUserRepoCreateDefaultsRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (role_id, email, username, password_hash, is_email_confirmed) VALUES (?,?,?,?,?)")).
		WithArgs("User", "a@x.com", "zer", "hash", false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.Create(context.Background(), "  A@X.com ", "zer", "hash", "")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id != 1 {
		t.Fatalf("Create() id = %d, want 1", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@x.com'"))

	if _, err := repo.Create(context.Background(), "a@x.com", "zer", "hash", "User"); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserRepoGetByEmailNormalizes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1")).
		WithArgs("a@x.com").
		WillReturnRows(userRows(t))

	u, err := repo.GetByEmail(context.Background(), " A@X.COM ")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if u.Email != "a@x.com" || u.RoleID != model.RoleUser {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.RefreshToken != "" || u.RefreshTokenExpiresAt != nil {
		t.Fatalf("expected empty refresh state, got %+v", u)
	}
}

func TestUserRepoGetByRefreshTokenNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+userColumns+" FROM users WHERE refresh_token=? LIMIT 1")).
		WithArgs("rotated-away").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByRefreshToken(context.Background(), "rotated-away"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserRepoRefreshTokenRotation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	exp := time.Now().UTC().Add(7 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE users SET refresh_token=?, refresh_token_expires_at=? WHERE id=?")).
		WithArgs("new-token", exp, uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE users SET refresh_token=NULL, refresh_token_expires_at=NULL WHERE id=?")).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), 1, "new-token", exp); err != nil {
		t.Fatalf("UpdateRefreshToken() error: %v", err)
	}
	if err := repo.ClearRefreshToken(context.Background(), 1); err != nil {
		t.Fatalf("ClearRefreshToken() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepoGetRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT role_id,name FROM roles WHERE role_id=? LIMIT 1")).
		WithArgs("Admin").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "name"}).AddRow("Admin", "Administrator"))

	role, err := repo.GetRole(context.Background(), "Admin")
	if err != nil {
		t.Fatalf("GetRole() error: %v", err)
	}
	if role.Name != "Administrator" {
		t.Fatalf("role = %+v", role)
	}
}

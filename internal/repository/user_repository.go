package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kosratdiaz/barber-reservation/internal/model"
)

const userColumns = "id,role_id,email,username,password_hash,is_email_confirmed,refresh_token,refresh_token_expires_at,created_at,updated_at"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  An empty role defaults to
// "User"; the admin role is only ever assigned out of band.
func (r *UserRepo) Create(ctx context.Context, email, username, passwordHash, roleID string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if roleID == "" {
		roleID = model.RoleUser
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (role_id, email, username, password_hash, is_email_confirmed) VALUES (?,?,?,?,?)",
		roleID, email, username, passwordHash, false)
	if err != nil {
		// 1062 = MySQL duplicate key, here only possible on the email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// GetByRefreshToken fetches the user currently holding the given opaque
// refresh token.  sql.ErrNoRows means the token is unknown or was rotated.
func (r *UserRepo) GetByRefreshToken(ctx context.Context, token string) (model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE refresh_token=? LIMIT 1", token)
}

// Update overwrites the user's mutable columns.  Last write wins; callers
// needing stronger guarantees must serialize themselves.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role_id=?, email=?, username=?, password_hash=?, is_email_confirmed=?, refresh_token=NULLIF(?,''), refresh_token_expires_at=? WHERE id=?",
		u.RoleID, strings.ToLower(strings.TrimSpace(u.Email)), u.Username, u.PasswordHash,
		u.IsEmailConfirmed, u.RefreshToken, u.RefreshTokenExpiresAt, u.ID)
	return err
}

// UpdateRefreshToken rotates the stored refresh token.  The previous token
// becomes invalid by overwrite.
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=?, refresh_token_expires_at=? WHERE id=?",
		token, exp, userID)
	return err
}

// ClearRefreshToken drops the stored refresh token so it can no longer be
// exchanged, terminating the session server side.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=NULL, refresh_token_expires_at=NULL WHERE id=?", userID)
	return err
}

// GetRole fetches a role row by its identifier.
func (r *UserRepo) GetRole(ctx context.Context, roleID string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT role_id,name FROM roles WHERE role_id=? LIMIT 1", roleID).
		Scan(&role.RoleID, &role.Name)
	return role, err
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var (
		u       model.User
		refresh sql.NullString
		refExp  sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.RoleID, &u.Email, &u.Username, &u.PasswordHash,
		&u.IsEmailConfirmed, &refresh, &refExp, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if refresh.Valid {
		u.RefreshToken = refresh.String
	}
	if refExp.Valid {
		t := refExp.Time
		u.RefreshTokenExpiresAt = &t
	}
	return u, nil
}

package model

import "time"

// Role identifiers seeded in the `roles` table.  The RoleID doubles as the
// value carried in the JWT role claim.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column.  The json tags are omitted
// because these structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//  ID                    – primary key identifier of the user.
//  RoleID                – foreign key into the roles table ("Admin"/"User").
//  Email                 – unique email address.
//  Username              – display name chosen at registration.
//  PasswordHash          – encoded PBKDF2 hash.
//  IsEmailConfirmed      – whether the address has been confirmed.
//  RefreshToken          – opaque refresh token, empty when logged out.
//  RefreshTokenExpiresAt – expiry of the refresh token (nil when unset).
//  CreatedAt / UpdatedAt – row timestamps.
type User struct {
	ID                    uint64     // users.id
	RoleID                string     // users.role_id (references roles.role_id)
	Email                 string     // users.email
	Username              string     // users.username
	PasswordHash          string     // users.password_hash
	IsEmailConfirmed      bool       // users.is_email_confirmed
	RefreshToken          string     // users.refresh_token (empty when cleared)
	RefreshTokenExpiresAt *time.Time // users.refresh_token_expires_at (nullable)
	CreatedAt             time.Time  // users.created_at
	UpdatedAt             time.Time  // users.updated_at
}

// Role represents a row in the `roles` table.  The table holds two static
// rows seeded at startup: ("Admin","Administrator") and ("User","Customer").
type Role struct {
	RoleID string // roles.role_id
	Name   string // roles.name
}

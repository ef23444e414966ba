// Package repository implements data access over the users, roles,
// reservations and availability tables using parameterized SQL.  Sentinel
// errors let handlers map failure scenarios onto HTTP statuses without
// string matching: not-found travels as sql.ErrNoRows, ownership violations
// as ErrForbidden and uniqueness/state conflicts as the Err*Exists values.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as deleting another user's reservation or
// deleting one that has already been accepted.  Handlers translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registration collides with an existing
// email address.  Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrReservationExists is returned when a user who already holds an active
// (non-cancelled) reservation attempts to book another.  Handlers translate
// this into an HTTP 409 response.
var ErrReservationExists = errors.New("reservation already exists")

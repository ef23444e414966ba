package utils // package utils provides helper functions for token creation and password hashing

import (
	"crypto/rand"       // secure random number generation for refresh tokens
	"encoding/base64"   // base64 encoding of the raw refresh token bytes
	"errors"            // sentinel errors for validation failures
	"time"              // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string.  Exp stores the
// expiration timestamp.  Access tokens are short‑lived and presented in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long‑lived opaque token used to obtain new
// access tokens.  The Raw field is returned to the client and persisted on
// the user's row; the token is not bound to any user until stored.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// TokenClaims describes the identity carried inside an access token.  The
// role claim drives the authorization policies, while name and email allow
// handlers to snapshot the caller without an extra database round trip.
type TokenClaims struct {
	UserID   uint64 // subject (sub) claim
	Username string // name claim
	Email    string // email claim
	Role     string // role claim ("Admin" or "User")
}

// ErrInvalidToken is returned by ValidateToken when a token fails signature,
// expiry, issuer or audience checks.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, optional issuer/audience values, the identity claims and a
// TTL in minutes.  The JWT includes the subject (sub), name, email and role
// claims plus the standard exp/iat pair.  Issuer and audience claims are
// only embedded when configured.
func NewAccessToken(secret, issuer, audience string, id TokenClaims, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   id.UserID,
		"name":  id.Username,
		"email": id.Email,
		"role":  id.Role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	if audience != "" {
		claims["aud"] = audience
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ValidateToken parses and verifies a serialized access token.  The
// signature and expiry are always checked; issuer and audience are checked
// only when the corresponding values are non-empty, mirroring deployments
// that have not yet pinned a domain.  On success the embedded claims are
// returned for the caller to use.
func ValidateToken(secret, issuer, audience, raw string) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewRefreshToken returns a cryptographically secure random token (raw) and
// its expiration time.  Refresh tokens live longer than access tokens and
// are exchanged for new token pairs.  The ttlDays parameter controls how
// many days the refresh token stays valid.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
	// 32 random bytes -> 44 base64 characters.
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: base64.StdEncoding.EncodeToString(buf),
		Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
	}, nil
}

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashes are self-describing blobs encoded as base64:
// version byte (0x01) | salt length (uint32, little endian) | salt | subkey.
// The subkey is derived with PBKDF2-HMAC-SHA256.
const (
	passwordHashVersion = 0x01
	pbkdf2Iterations    = 100_000
	saltSize            = 16
	subkeySize          = 32
)

// ErrEmptyPassword is returned when the plaintext is empty or whitespace only.
var ErrEmptyPassword = errors.New("password cannot be empty")

// ErrHashFormat is returned when a stored hash cannot be decoded or carries
// an unknown version byte.
var ErrHashFormat = errors.New("unknown password hash format")

// HashPassword derives a salted PBKDF2 subkey from plain and returns the
// encoded hash. Each call draws a fresh random salt, so hashing the same
// password twice yields different strings that both verify.
func HashPassword(plain string) (string, error) {
	if strings.TrimSpace(plain) == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	subkey := pbkdf2.Key([]byte(plain), salt, pbkdf2Iterations, subkeySize, sha256.New)

	out := make([]byte, 1+4+len(salt)+len(subkey))
	out[0] = passwordHashVersion
	binary.LittleEndian.PutUint32(out[1:5], uint32(len(salt)))
	copy(out[5:5+len(salt)], salt)
	copy(out[5+len(salt):], subkey)
	return base64.StdEncoding.EncodeToString(out), nil
}

// VerifyPassword re-derives the subkey from candidate using the salt stored
// in encoded and compares in constant time. It returns ErrHashFormat for
// malformed or unknown-version hashes so callers can distinguish a corrupt
// record from a plain mismatch.
func VerifyPassword(encoded, candidate string) (bool, error) {
	if strings.TrimSpace(encoded) == "" || strings.TrimSpace(candidate) == "" {
		return false, ErrEmptyPassword
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, ErrHashFormat
	}
	if len(raw) < 5 || raw[0] != passwordHashVersion {
		return false, ErrHashFormat
	}
	saltLen := int(binary.LittleEndian.Uint32(raw[1:5]))
	if saltLen <= 0 || 5+saltLen >= len(raw) {
		return false, ErrHashFormat
	}
	salt := raw[5 : 5+saltLen]
	stored := raw[5+saltLen:]

	derived := pbkdf2.Key([]byte(candidate), salt, pbkdf2Iterations, len(stored), sha256.New)
	return subtle.ConstantTimeCompare(stored, derived) == 1, nil
}

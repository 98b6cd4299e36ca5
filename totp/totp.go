package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// DefaultPeriod is the standard TOTP time-step in seconds (RFC 6238).
const DefaultPeriod = 30

// Digits is the number of digits in a generated code.
const Digits = 6

// EncodingError indicates the shared secret is not valid base32. It is
// unrecoverable: a malformed secret can never produce a valid code.
type EncodingError struct {
	Err error
}

// Error returns the underlying decoding error message.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid base32 secret: %v", e.Err)
}

// Unwrap returns the underlying base32 decoding error.
func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Generate derives the current 6-digit TOTP code from a base32-encoded
// shared secret using the standard 30-second period.
//
// Parameters:
//   - secret: Base32-encoded shared secret (case-insensitive, padding optional)
//
// Returns:
//   - The zero-padded 6-digit code for the current time window
//   - *EncodingError if the secret cannot be decoded
func Generate(secret string) (string, error) {
	return GenerateAt(secret, time.Now(), DefaultPeriod)
}

// GenerateAt derives the 6-digit TOTP code for an arbitrary time and period.
// It implements RFC 4226 dynamic truncation over an HMAC-SHA1 of the
// big-endian 8-byte time counter, keyed by the decoded secret.
//
// The function is pure: identical inputs always yield identical codes, and
// all times within the same period window yield the same code.
func GenerateAt(secret string, t time.Time, period int64) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", &EncodingError{Err: err}
	}

	counter := t.Unix() / period
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	digest := mac.Sum(nil)

	// Dynamic truncation: the low nibble of the final byte selects a 4-byte
	// window; bit 31 of that window is cleared to keep the value non-negative.
	offset := digest[len(digest)-1] & 0x0F
	code := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7FFFFFFF

	return fmt.Sprintf("%0*d", Digits, code%1000000), nil
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(secret, "="))
	return base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
}

// Package totp implements time-based one-time password generation
// (RFC 6238) over HMAC-SHA1 (RFC 4226).
//
// It is the second authentication factor for the platform admin login: the
// verifier generates a code from the shared base32 secret and the current
// wall-clock time, and the backend validates it against the same secret.
//
// The implementation follows the RFCs exactly:
//
//   - counter = floor(unix_time / period), encoded as 8 bytes big-endian
//   - digest = HMAC-SHA1(decoded_secret, counter)
//   - dynamic truncation selects a 4-byte window via the low nibble of the
//     final digest byte, clears bit 31, reduces modulo 10^6
//   - the result is zero-padded to 6 digits
//
// Any deviation (endianness, truncation offset, modulus) produces codes that
// fail authentication with no useful diagnostic, so the package is covered
// by the published RFC 6238 reference vectors in its tests.
package totp

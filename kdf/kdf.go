// Package kdf wraps PBKDF2 (RFC 2898 / RFC 8018) for password storage.
//
// It provides the three primitives a password hasher needs: fresh random
// salts, PBKDF2 derivation with an HMAC PRF chosen from a closed set of
// [Algorithm] values, and a comparison that does not leak the position of
// the first differing byte.
//
// # Quick start
//
//	salt, err := kdf.GenerateSalt()
//	if err != nil { return err }
//
//	key, err := kdf.DeriveKey(kdf.HMACSHA512, "secret", salt, 25000, kdf.HMACSHA512.Size())
//	if err != nil { return err }
//
//	same := kdf.ConstantTimeEqual(key, storedKey)
//
// Every function is free of shared mutable state and safe for concurrent use.
package kdf

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// SaltSize is the length in bytes of every salt produced by this package (256 bits).
const SaltSize = 256 / 8

// GenerateSalt returns [SaltSize] bytes read from crypto/rand.
//
// A failure to read the full salt is returned wrapped in [ErrEntropy]; the
// caller must not fall back to a weaker source.
func GenerateSalt() ([]byte, error) {
	return ReadSalt(rand.Reader)
}

// ReadSalt returns [SaltSize] bytes read from r.  It exists so callers can
// inject an entropy source; r must be a CSPRNG safe for concurrent use.
func ReadSalt(r io.Reader) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return salt, nil
}

// DeriveKey computes PBKDF2 over the UTF-8 bytes of password, using salt,
// iterations rounds of HMAC-a and keyLen bytes of output.
//
// The result depends only on the arguments.  No minimum iteration count is
// enforced here; that policy belongs to the caller's configuration.
func DeriveKey(a Algorithm, password string, salt []byte, iterations, keyLen int) ([]byte, error) {
	spec, ok := algorithmSpecs[a]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, a)
	}
	if keyLen < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, keyLen)
	}
	return pbkdf2.Key([]byte(password), salt, iterations, keyLen, spec.newHash), nil
}

// ConstantTimeEqual reports whether a and b hold the same bytes.
//
// Unequal lengths return false straight away since length is not secret.
// Equal lengths are compared position by position with the differences
// OR-accumulated, so the running time does not depend on where the first
// mismatch sits.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

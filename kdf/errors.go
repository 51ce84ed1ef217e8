package kdf

import "errors"

// Sentinel errors returned by key-derivation operations.
//
// Use [errors.Is] for comparisons:
//
//	salt, err := kdf.GenerateSalt()
//	if errors.Is(err, kdf.ErrEntropy) {
//	    // the random source is broken; do not hash anything
//	}
var (
	// ErrUnsupportedAlgorithm is returned when an [Algorithm] is not one of
	// the HMAC variants listed by [Algorithms].
	ErrUnsupportedAlgorithm = errors.New("kdf: unsupported algorithm")

	// ErrInvalidKeyLength is returned by [DeriveKey] when the requested
	// output length is less than one byte.
	ErrInvalidKeyLength = errors.New("kdf: derived key length must be positive")

	// ErrEntropy is returned when the random source cannot supply a full
	// salt.  It is never recoverable by retrying inside this package.
	ErrEntropy = errors.New("kdf: failed to read random bytes for salt")
)

package kdf

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"slices"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Algorithm names the keyed-hash function used as the PBKDF2 PRF.
// The set is closed: only the constants below are accepted.
type Algorithm string

const (
	// HMACSHA1 is HMAC over SHA-1 (20-byte digest).  Kept for RFC 2898
	// interoperability; prefer a SHA-2 or SHA-3 variant for new hashes.
	HMACSHA1 Algorithm = "hmac-sha1"
	// HMACSHA256 is HMAC over SHA-256 (32-byte digest).
	HMACSHA256 Algorithm = "hmac-sha256"
	// HMACSHA384 is HMAC over SHA-384 (48-byte digest).
	HMACSHA384 Algorithm = "hmac-sha384"
	// HMACSHA512 is HMAC over SHA-512 (64-byte digest).  This is the default.
	HMACSHA512 Algorithm = "hmac-sha512"
	// HMACSHA3_256 is HMAC over SHA3-256 (32-byte digest).
	HMACSHA3_256 Algorithm = "hmac-sha3-256"
	// HMACSHA3_512 is HMAC over SHA3-512 (64-byte digest).
	HMACSHA3_512 Algorithm = "hmac-sha3-512"
)

// algorithmSpec holds the per-algorithm parameters.
type algorithmSpec struct {
	newHash func() hash.Hash
	size    int // digest size in bytes
}

var algorithmSpecs = map[Algorithm]algorithmSpec{
	HMACSHA1:     {newHash: sha1.New, size: sha1.Size},
	HMACSHA256:   {newHash: sha256.New, size: sha256.Size},
	HMACSHA384:   {newHash: sha512.New384, size: sha512.Size384},
	HMACSHA512:   {newHash: sha512.New, size: sha512.Size},
	HMACSHA3_256: {newHash: sha3.New256, size: 32},
	HMACSHA3_512: {newHash: sha3.New512, size: 64},
}

// Supported reports whether a is a recognised algorithm.
func Supported(a Algorithm) bool {
	_, ok := algorithmSpecs[a]
	return ok
}

// Size returns the digest size of a in bytes, or -1 when a is unsupported.
// It is also the derived-key length a hasher stores for a.
func (a Algorithm) Size() int {
	if spec, ok := algorithmSpecs[a]; ok {
		return spec.size
	}
	return -1
}

// String returns the lowercase algorithm name.
func (a Algorithm) String() string { return string(a) }

// ValidateAlgorithm returns a non-nil error if a is not a recognised algorithm.
func ValidateAlgorithm(a Algorithm) error {
	if !Supported(a) {
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, a)
	}
	return nil
}

// Algorithms returns every supported algorithm, sorted by name.
func Algorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithmSpecs))
	for a := range algorithmSpecs {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// ParseAlgorithm maps a configuration value to an [Algorithm].
//
// Matching is case-insensitive and ignores "-" and "_", so "hmac-sha512",
// "HMACSHA512" and "hmac_sha512" all select [HMACSHA512].
func ParseAlgorithm(s string) (Algorithm, error) {
	want := normalizeName(s)
	for a := range algorithmSpecs {
		if normalizeName(string(a)) == want {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

package hashing

import (
	"strconv"

	"github.com/caevyn/PasswordHasher/kdf"
)

// VerificationResult is the outcome of [PasswordHasher.VerifyHashedPassword].
//
// The zero value is [Failed], so an uninitialised result never grants access.
type VerificationResult int

const (
	// Failed means the password did not match, or the stored hash was
	// malformed.  The two cases are deliberately indistinguishable.
	Failed VerificationResult = iota
	// Success means the password matched and the stored hash uses the
	// hasher's current iteration count.
	Success
	// SuccessRehashNeeded means the password matched but the stored hash
	// was produced with a different iteration count.  Callers should hash
	// the password again and persist the new value.
	SuccessRehashNeeded
)

// String returns the result name.
func (r VerificationResult) String() string {
	switch r {
	case Failed:
		return "Failed"
	case Success:
		return "Success"
	case SuccessRehashNeeded:
		return "SuccessRehashNeeded"
	default:
		return "VerificationResult(" + strconv.Itoa(int(r)) + ")"
	}
}

// Matched reports whether r is [Success] or [SuccessRehashNeeded].
func (r VerificationResult) Matched() bool {
	return r == Success || r == SuccessRehashNeeded
}

// PasswordHasher is the contract an authentication layer consumes.
//
// A nil pointer stands for an absent argument and yields an [*ArgumentError].
// A pointer to "" is a legal (if weak) password.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type PasswordHasher interface {
	// HashPassword returns a self-describing stored hash for password.
	// Two calls with the same password return different strings.
	HashPassword(password *string) (string, error)

	// VerifyHashedPassword checks providedPassword against hashedPassword.
	// The only errors are for nil arguments; every mismatch or malformed
	// stored hash is reported as [Failed].
	VerifyHashedPassword(hashedPassword, providedPassword *string) (VerificationResult, error)
}

// Hasher is the string-based convenience interface, for callers that never
// deal with absent values.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh cryptographic salt is generated for every call, so two calls
	// with the same password will produce different outputs.
	Make(password string) (string, error)

	// Check reports whether password matches hash.  A malformed hash
	// returns (false, nil).
	//
	// Comparison is performed in constant time to prevent timing attacks.
	Check(password, hash string) (bool, error)

	// NeedsRehash returns true when the hash was produced with an iteration
	// count different from the hasher's current configuration.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying it.
	// Useful for auditing, migration tooling, or logging.
	Info(hash string) (HashInfo, error)

	// Algorithm returns the PRF this hasher uses.
	Algorithm() kdf.Algorithm
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Algorithm is the PRF the hash is interpreted with.  The stored format
	// does not record it, so this is the inspecting hasher's algorithm.
	Algorithm kdf.Algorithm

	// Iterations is the PBKDF2 round count recorded in the hash.
	Iterations int

	// SaltLen and KeyLen are the decoded salt and derived-key lengths in bytes.
	SaltLen int
	KeyLen  int
}

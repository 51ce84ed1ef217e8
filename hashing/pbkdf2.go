package hashing

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/caevyn/PasswordHasher/kdf"
)

const (
	// DefaultIterations is the PBKDF2 round count used when none is configured.
	//
	// Raise it as hardware improves.  Existing hashes keep verifying and are
	// reported as [SuccessRehashNeeded] until they are re-hashed.
	DefaultIterations = 25000

	// DefaultAlgorithm is the PRF used when none is configured.
	DefaultAlgorithm = kdf.HMACSHA512
)

// PBKDF2Options configures a [PBKDF2Hasher].
type PBKDF2Options struct {
	// Iterations is the PBKDF2 round count for newly created hashes.
	// Minimum: 1.  Default: [DefaultIterations] (25000).
	Iterations int

	// Algorithm selects the HMAC variant used as the PRF.  It also fixes the
	// derived-key length (the digest size).  Default: [DefaultAlgorithm].
	Algorithm kdf.Algorithm

	// Rand is the salt entropy source.  nil means crypto/rand.Reader.
	// A custom reader must be a CSPRNG and safe for concurrent use.
	Rand io.Reader
}

// DefaultPBKDF2Options returns PBKDF2Options with [DefaultIterations] and
// [DefaultAlgorithm].
func DefaultPBKDF2Options() PBKDF2Options {
	return PBKDF2Options{
		Iterations: DefaultIterations,
		Algorithm:  DefaultAlgorithm,
	}
}

func validatePBKDF2Options(opts PBKDF2Options) error {
	if opts.Iterations < 1 {
		return fmt.Errorf("%w: pbkdf2 iterations must be ≥ 1, got %d", ErrInvalidOption, opts.Iterations)
	}
	if err := kdf.ValidateAlgorithm(opts.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	return nil
}

// PBKDF2Hasher hashes passwords with PBKDF2 and stores them as
//
//	<iterations>.<base64(salt ‖ key)>
//
// with a 32-byte random salt and a key as long as the algorithm's digest.
//
// # Thread safety
//
// PBKDF2Hasher is immutable after construction and safe for concurrent use.
type PBKDF2Hasher struct {
	opts PBKDF2Options
}

var (
	_ PasswordHasher = (*PBKDF2Hasher)(nil)
	_ Hasher         = (*PBKDF2Hasher)(nil)
)

// NewPBKDF2Hasher constructs a PBKDF2Hasher with the provided options.
// Returns [ErrInvalidOption] if Iterations is below 1 or Algorithm is not
// supported.
func NewPBKDF2Hasher(opts PBKDF2Options) (*PBKDF2Hasher, error) {
	if err := validatePBKDF2Options(opts); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	return &PBKDF2Hasher{opts: opts}, nil
}

// Algorithm returns the configured PRF.
func (h *PBKDF2Hasher) Algorithm() kdf.Algorithm { return h.opts.Algorithm }

// Iterations returns the configured round count for new hashes.
func (h *PBKDF2Hasher) Iterations() int { return h.opts.Iterations }

// HashPassword hashes *password with a fresh salt.  A nil password returns
// an [*ArgumentError]; an empty password is hashed normally.
func (h *PBKDF2Hasher) HashPassword(password *string) (string, error) {
	if password == nil {
		return "", nilArgument("password")
	}
	salt, err := kdf.ReadSalt(h.opts.Rand)
	if err != nil {
		return "", fmt.Errorf("hashing: pbkdf2: %w", err)
	}
	key, err := kdf.DeriveKey(h.opts.Algorithm, *password, salt, h.opts.Iterations, h.opts.Algorithm.Size())
	if err != nil {
		return "", fmt.Errorf("hashing: pbkdf2: %w", err)
	}
	return StoredHash{Iterations: h.opts.Iterations, Salt: salt, Key: key}.String(), nil
}

// VerifyHashedPassword checks *providedPassword against *hashedPassword.
//
// Nil arguments return an [*ArgumentError] (hashedPassword is checked
// first).  Otherwise the error is always nil: a malformed stored hash and a
// wrong password both yield [Failed].  A match yields [Success] when the
// stored iteration count equals the configured one and
// [SuccessRehashNeeded] otherwise.
func (h *PBKDF2Hasher) VerifyHashedPassword(hashedPassword, providedPassword *string) (VerificationResult, error) {
	if hashedPassword == nil {
		return Failed, nilArgument("hashedPassword")
	}
	if providedPassword == nil {
		return Failed, nilArgument("providedPassword")
	}

	stored, err := ParseStoredHash(*hashedPassword, h.opts.Algorithm.Size())
	if err != nil {
		return Failed, nil
	}
	computed, err := kdf.DeriveKey(h.opts.Algorithm, *providedPassword, stored.Salt, stored.Iterations, len(stored.Key))
	if err != nil {
		return Failed, nil
	}
	if !kdf.ConstantTimeEqual(stored.Key, computed) {
		return Failed, nil
	}
	if stored.Iterations != h.opts.Iterations {
		return SuccessRehashNeeded, nil
	}
	return Success, nil
}

// Make hashes password and returns the stored hash string.
func (h *PBKDF2Hasher) Make(password string) (string, error) {
	return h.HashPassword(&password)
}

// Check reports whether password matches hash, regardless of whether the
// hash needs re-hashing.  Returns (false, nil) on mismatch or malformed hash.
func (h *PBKDF2Hasher) Check(password, hash string) (bool, error) {
	res, err := h.VerifyHashedPassword(&hash, &password)
	if err != nil {
		return false, err
	}
	return res.Matched(), nil
}

// NeedsRehash returns true if the iteration count stored in hash differs
// from the configured one.  Unlike verification it reports a malformed hash
// as [ErrInvalidHash], since it is meant for tooling rather than login paths.
func (h *PBKDF2Hasher) NeedsRehash(hash string) (bool, error) {
	stored, err := ParseStoredHash(hash, h.opts.Algorithm.Size())
	if err != nil {
		return false, err
	}
	return stored.Iterations != h.opts.Iterations, nil
}

// Info parses hash and returns its parameters without verifying it.
func (h *PBKDF2Hasher) Info(hash string) (HashInfo, error) {
	stored, err := ParseStoredHash(hash, h.opts.Algorithm.Size())
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Algorithm:  h.opts.Algorithm,
		Iterations: stored.Iterations,
		SaltLen:    len(stored.Salt),
		KeyLen:     len(stored.Key),
	}, nil
}

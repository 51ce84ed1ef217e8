// Package hashing provides PBKDF2 password hashing with self-describing
// stored hashes and work-factor upgrades.
//
// # Architecture
//
// [PasswordHasher] is the contract an authentication layer consumes: hash a
// password, verify a candidate against a stored hash.  [PBKDF2Hasher] is the
// implementation; it also satisfies the string-based [Hasher] interface.
// [ThrottledHasher] wraps any PasswordHasher to cap concurrent derivations
// and to honour context deadlines.
//
// Key derivation, salts and constant-time comparison live in the kdf
// package; this package owns the stored format and the verification rules.
//
// # Quick start
//
//	h, err := hashing.NewPBKDF2Hasher(hashing.DefaultPBKDF2Options()) // 25000 rounds, HMAC-SHA512
//	if err != nil { log.Fatal(err) }
//
//	pw := "my-secret-password"
//	stored, _ := h.HashPassword(&pw)
//	res, _    := h.VerifyHashedPassword(&stored, &pw) // hashing.Success
//
// # Stored hash format
//
//	<iterations>.<base64(salt ‖ key)>
//
// for example "25000.q0V5…==".  The salt is 32 random bytes, the key is as
// long as the PRF digest (64 bytes for HMAC-SHA512) and base64 is the
// standard padded alphabet.  The algorithm is not recorded, so a hash can
// only be verified by a hasher configured with the algorithm that made it.
//
// # Work-factor upgrades
//
// Raise Iterations in the options whenever hardware allows.  Old hashes keep
// verifying and report [SuccessRehashNeeded]; re-hash and persist them:
//
//	switch res, _ := h.VerifyHashedPassword(&stored, &pw); res {
//	case hashing.SuccessRehashNeeded:
//	    newHash, _ := h.HashPassword(&pw)
//	    persist(userID, newHash)
//	    fallthrough
//	case hashing.Success:
//	    // logged in
//	default:
//	    // wrong password or corrupted record; indistinguishable on purpose
//	}
//
// # Errors
//
// Only absent arguments (nil pointers) and entropy failures are errors.
// A malformed stored hash verifies as [Failed], the same as a wrong
// password, so callers cannot tell a corrupted record from a bad guess.
package hashing

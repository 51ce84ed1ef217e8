package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/caevyn/PasswordHasher/kdf"
)

// separator joins the iteration count and the payload in a stored hash.
const separator = "."

const asciiSpace = " \t\n\v\f\r"

// StoredHash is the decoded form of a stored hash string:
//
//	<iterations>.<base64(salt ‖ key)>
//
// The payload uses standard base64 with padding.  The salt is always
// [kdf.SaltSize] bytes; the key length is the digest size of the PRF, which
// the string itself does not record.
type StoredHash struct {
	Iterations int
	Salt       []byte
	Key        []byte
}

// Payload returns the base64 encoding of Salt ‖ Key, i.e. the stored hash
// without its iteration prefix.
func (s StoredHash) Payload() string {
	buf := make([]byte, 0, len(s.Salt)+len(s.Key))
	buf = append(buf, s.Salt...)
	buf = append(buf, s.Key...)
	return base64.StdEncoding.EncodeToString(buf)
}

// String encodes s in the stored hash format.
func (s StoredHash) String() string {
	return strconv.Itoa(s.Iterations) + separator + s.Payload()
}

// ParseStoredHash decodes encoded, expecting a derived key of keyLen bytes.
//
// ASCII whitespace around the iteration count is ignored.
//
// Every failure wraps [ErrInvalidHash]:
//   - keyLen is negative
//   - encoded does not contain exactly one "." separator
//   - the iteration count is not a base-10 integer in [1, MaxInt32]
//   - the payload is not valid base64
//   - the payload does not decode to exactly kdf.SaltSize+keyLen bytes
func ParseStoredHash(encoded string, keyLen int) (StoredHash, error) {
	if keyLen < 0 {
		return StoredHash{}, fmt.Errorf("%w: negative key length %d", ErrInvalidHash, keyLen)
	}

	parts := strings.Split(encoded, separator)
	if len(parts) != 2 {
		return StoredHash{}, fmt.Errorf("%w: expected 2 segments, got %d", ErrInvalidHash, len(parts))
	}

	iterations, err := strconv.ParseInt(strings.Trim(parts[0], asciiSpace), 10, 32)
	if err != nil {
		return StoredHash{}, fmt.Errorf("%w: iteration count: %v", ErrInvalidHash, err)
	}
	if iterations < 1 {
		return StoredHash{}, fmt.Errorf("%w: iteration count %d is not positive", ErrInvalidHash, iterations)
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return StoredHash{}, fmt.Errorf("%w: invalid payload base64: %v", ErrInvalidHash, err)
	}
	if want := kdf.SaltSize + keyLen; len(raw) != want {
		return StoredHash{}, fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidHash, len(raw), want)
	}

	return StoredHash{
		Iterations: int(iterations),
		Salt:       raw[:kdf.SaltSize:kdf.SaltSize],
		Key:        raw[kdf.SaltSize:],
	}, nil
}

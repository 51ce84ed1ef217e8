package hashing

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	info, err := hasher.Info(stored)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // stored hash is malformed
//	}
//
// Verification never returns ErrInvalidHash: a malformed stored hash is
// reported as [Failed], exactly like a wrong password.
var (
	// ErrInvalidHash is returned when a stored hash string cannot be parsed:
	// wrong number of segments, a non-numeric or non-positive iteration
	// count, invalid base64, or a payload of the wrong length.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range (e.g., an
	// iteration count below 1).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrNilArgument is wrapped by every [ArgumentError].  It signals a
	// caller bug: a required input was absent.
	ErrNilArgument = errors.New("hashing: required argument is nil")
)

// ArgumentError reports a required argument that was absent (a nil pointer).
// An empty string is never an ArgumentError.
//
//	_, err := h.HashPassword(nil)
//	var argErr *hashing.ArgumentError
//	if errors.As(err, &argErr) {
//	    fmt.Println(argErr.Name) // "password"
//	}
type ArgumentError struct {
	// Name is the parameter name, e.g. "password" or "hashedPassword".
	Name string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%v: %s", ErrNilArgument, e.Name)
}

// Unwrap returns [ErrNilArgument].
func (e *ArgumentError) Unwrap() error { return ErrNilArgument }

func nilArgument(name string) error { return &ArgumentError{Name: name} }

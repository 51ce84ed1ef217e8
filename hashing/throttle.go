package hashing

import (
	"context"
	"fmt"
)

// ThrottledHasher bounds how many PBKDF2 derivations run at once and lets
// callers stop waiting when a context ends.
//
// A derivation that has started always runs to completion on its own
// goroutine and keeps its slot until then; a cancelled caller only stops
// waiting for it and the result is discarded.  So at most maxConcurrent
// derivations are ever in flight, whatever the callers do.
//
// ThrottledHasher is safe for concurrent use.
type ThrottledHasher struct {
	next PasswordHasher
	sema chan struct{}
}

var _ PasswordHasher = (*ThrottledHasher)(nil)

// NewThrottledHasher wraps next so that at most maxConcurrent calls execute
// at the same time.  Returns [ErrInvalidOption] if maxConcurrent < 1 or
// next is nil.
func NewThrottledHasher(next PasswordHasher, maxConcurrent int) (*ThrottledHasher, error) {
	if next == nil {
		return nil, fmt.Errorf("%w: wrapped hasher must not be nil", ErrInvalidOption)
	}
	if maxConcurrent < 1 {
		return nil, fmt.Errorf("%w: max concurrency must be ≥ 1, got %d", ErrInvalidOption, maxConcurrent)
	}
	return &ThrottledHasher{
		next: next,
		sema: make(chan struct{}, maxConcurrent),
	}, nil
}

type hashResult struct {
	hash string
	err  error
}

type verifyResult struct {
	res VerificationResult
	err error
}

// HashPasswordContext is [PasswordHasher.HashPassword] bounded by the
// concurrency limit.  It returns ctx.Err() if ctx ends before the hash is
// ready.
func (t *ThrottledHasher) HashPasswordContext(ctx context.Context, password *string) (string, error) {
	if password == nil {
		return "", nilArgument("password")
	}
	pw := *password
	out, err := throttle(ctx, t.sema, func() hashResult {
		hash, err := t.next.HashPassword(&pw)
		return hashResult{hash, err}
	})
	if err != nil {
		return "", err
	}
	return out.hash, out.err
}

// VerifyHashedPasswordContext is [PasswordHasher.VerifyHashedPassword]
// bounded by the concurrency limit.  It returns [Failed] and ctx.Err() if
// ctx ends before verification completes.
func (t *ThrottledHasher) VerifyHashedPasswordContext(ctx context.Context, hashedPassword, providedPassword *string) (VerificationResult, error) {
	if hashedPassword == nil {
		return Failed, nilArgument("hashedPassword")
	}
	if providedPassword == nil {
		return Failed, nilArgument("providedPassword")
	}
	stored, pw := *hashedPassword, *providedPassword
	out, err := throttle(ctx, t.sema, func() verifyResult {
		res, err := t.next.VerifyHashedPassword(&stored, &pw)
		return verifyResult{res, err}
	})
	if err != nil {
		return Failed, err
	}
	return out.res, out.err
}

// HashPassword calls [ThrottledHasher.HashPasswordContext] with
// context.Background().
func (t *ThrottledHasher) HashPassword(password *string) (string, error) {
	return t.HashPasswordContext(context.Background(), password)
}

// VerifyHashedPassword calls [ThrottledHasher.VerifyHashedPasswordContext]
// with context.Background().
func (t *ThrottledHasher) VerifyHashedPassword(hashedPassword, providedPassword *string) (VerificationResult, error) {
	return t.VerifyHashedPasswordContext(context.Background(), hashedPassword, providedPassword)
}

// throttle acquires a slot from sema, runs fn on a new goroutine and waits
// for its result or for ctx to end.  The slot is released by the goroutine.
func throttle[T any](ctx context.Context, sema chan struct{}, fn func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	select {
	case sema <- struct{}{}:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	done := make(chan T, 1)
	go func() {
		defer func() { <-sema }()
		done <- fn()
	}()

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

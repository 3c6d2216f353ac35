// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

package crypto

import "errors"

// Sentinel errors returned by the credential engine. Callers should match
// against these values with [errors.Is].
var (
	// ErrPasswordMismatch is returned by VerifyPassword when the supplied
	// password does not reproduce the stored digest.
	ErrPasswordMismatch = errors.New("password does not match stored hash")

	// ErrHashMalformed is returned when a stored PHC string cannot be
	// parsed back into algorithm, version, costs, salt and digest.
	ErrHashMalformed = errors.New("malformed password hash string")

	// ErrUnsupportedAlgorithm is returned when a stored hash names an
	// algorithm other than argon2id.
	ErrUnsupportedAlgorithm = errors.New("unsupported password hash algorithm")

	// ErrIncompatibleVersion is returned when a stored hash was produced
	// by an Argon2 version this build cannot reproduce.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

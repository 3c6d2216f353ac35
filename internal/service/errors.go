// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

package service

import "errors"

// Sentinel errors returned by the service layer. They are the tagged errors
// carried across the command boundary; the HTTP layer maps each one to a
// status code and error kind with [errors.Is].
var (
	// ErrEmptyProfileName is returned when the profile name is empty after
	// trimming. Validation happens before any file or directory is touched.
	ErrEmptyProfileName = errors.New("profile name is required")

	// ErrEmptyPassword is returned when the password is empty after
	// trimming. Validation happens before any file or directory is touched.
	ErrEmptyPassword = errors.New("password is required")

	// ErrProfileNotFound is returned when the referenced profile id is not
	// in the catalog. Deliberately distinct from a wrong-password failure;
	// see DESIGN.md for the recorded decision.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrCorruptProfileEntry is returned when a catalog entry cannot be
	// used (e.g. undecodable key salt). An environment/setup fault, not an
	// authentication one.
	ErrCorruptProfileEntry = errors.New("profile catalog entry is corrupt")

	// ErrKeyCheckMismatch is returned when the derived key fails the
	// checksum stored at profile creation. The password verified, so this
	// points at damaged catalog data rather than user error.
	ErrKeyCheckMismatch = errors.New("derived key failed its stored checksum")

	// ErrInvalidPatientInput is returned when a required patient field is
	// missing.
	ErrInvalidPatientInput = errors.New("invalid patient data provided")
)

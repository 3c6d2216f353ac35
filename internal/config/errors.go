package config

import "errors"

// Sentinel errors reported when the merged configuration cannot be used.
// All of them are environment/setup faults, terminal at startup.
var (
	// ErrUnresolvedDataDir is returned when no data directory is
	// configured and the per-user default cannot be resolved.
	ErrUnresolvedDataDir = errors.New("application data directory could not be resolved")

	// ErrInvalidServerConfigs is returned when the command surface has no
	// listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configs")

	// ErrInvalidKDFConfigs is returned when the Argon2id cost settings are
	// unusable (zero costs or a too-short key).
	ErrInvalidKDFConfigs = errors.New("invalid kdf configs")
)

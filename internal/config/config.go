// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

package config

import (
	"time"

	"github.com/smaillet/cabinet/models"
)

// StructuredConfig is the top-level configuration container for cabinetd.
// It is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the key-derivation cost settings applied to newly created
	// profiles, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the location of the application data directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the command surface.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of environment and flag values when non-empty.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// KDFMemory is the Argon2id memory cost in KiB for new profiles.
	// Env: APP_KDF_MEMORY
	KDFMemory uint32 `env:"KDF_MEMORY"`

	// KDFTime is the Argon2id iteration count for new profiles.
	// Env: APP_KDF_TIME
	KDFTime uint32 `env:"KDF_TIME"`

	// KDFThreads is the Argon2id parallelism degree for new profiles.
	// Env: APP_KDF_THREADS
	KDFThreads uint8 `env:"KDF_THREADS"`

	// KDFKeyLen is the derived storage-key length in bytes.
	// Env: APP_KDF_KEY_LEN
	KDFKeyLen uint32 `env:"KDF_KEY_LEN"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// KDFParams converts the configured costs into the per-profile parameter
// record persisted in the catalog.
func (a App) KDFParams() models.KDFParams {
	return models.KDFParams{
		Memory:    a.KDFMemory,
		Time:      a.KDFTime,
		Threads:   a.KDFThreads,
		OutputLen: a.KDFKeyLen,
	}
}

// Storage holds the persistence settings.
type Storage struct {
	// DataDir is the application data root: the profile catalog lives at
	// DataDir/profiles.json, each encrypted store under
	// DataDir/profiles/<id>/.
	// Env: STORAGE_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Server holds network and timeout settings for the command surface.
type Server struct {
	// HTTPAddress is the TCP address the command surface listens on.
	// Loopback by default: the API is an IPC channel for the UI shell,
	// not a network service.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

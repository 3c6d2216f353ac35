package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// defaultConfig supplies the values used when no other source sets a field.
// The KDF costs match the profile defaults; the listen address stays on
// loopback because the command surface is an IPC channel, not a service.
func defaultConfig() (*StructuredConfig, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			KDFMemory:  19456, // KiB
			KDFTime:    2,
			KDFThreads: 1,
			KDFKeyLen:  32,
		},
		Storage: Storage{
			DataDir: dataDir,
		},
		Server: Server{
			HTTPAddress:    "127.0.0.1:8787",
			RequestTimeout: 30 * time.Second,
		},
	}, nil
}

// defaultDataDir resolves the per-user application data directory.
// Failure here is an environment fault: without a data dir there is nowhere
// to keep the catalog or the stores.
func defaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnresolvedDataDir, err)
	}
	return filepath.Join(base, "cabinet"), nil
}

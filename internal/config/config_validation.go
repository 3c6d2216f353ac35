// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the rest of the application assumes at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DataDir == "" {
		return ErrUnresolvedDataDir
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	// anything below 16 bytes is not a usable storage key
	if cfg.App.KDFKeyLen < 16 {
		return ErrInvalidKDFConfigs
	}
	if cfg.App.KDFMemory == 0 || cfg.App.KDFTime == 0 || cfg.App.KDFThreads == 0 {
		return ErrInvalidKDFConfigs
	}

	return nil
}

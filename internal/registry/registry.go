// Package registry owns the durable catalog of profiles: a single JSON
// file holding every StoredProfile. It is the only writer to that file.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/models"
)

// catalogFile is the catalog file name under the application data dir.
const catalogFile = "profiles.json"

// ProfileRegistry is the durable catalog of profile metadata.
type ProfileRegistry interface {
	// List reads the catalog. A missing catalog is not an error: the
	// first run simply has no profiles yet.
	List() ([]models.StoredProfile, error)

	// Append loads the current catalog, appends profile, and rewrites
	// the whole file. The serialized form is fully constructed and
	// written aside before the real location is touched, so a crash
	// mid-write never corrupts previously valid entries.
	Append(profile models.StoredProfile) error
}

// fileRegistry is the JSON-file implementation of [ProfileRegistry].
// The mutex serializes writers; reads go straight to the file.
type fileRegistry struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileRegistry constructs a [ProfileRegistry] storing its catalog as
// profiles.json inside dataDir.
func NewFileRegistry(dataDir string, log *logger.Logger) ProfileRegistry {
	log.Debug().Str("data_dir", dataDir).Msg("creating profile registry")
	return &fileRegistry{
		path:   filepath.Join(dataDir, catalogFile),
		logger: log,
	}
}

// List implements [ProfileRegistry].
func (r *fileRegistry) List() ([]models.StoredProfile, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.StoredProfile{}, nil
		}
		return nil, fmt.Errorf("read profile catalog: %w", err)
	}

	var profiles []models.StoredProfile
	if err = json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogMalformed, err)
	}

	return profiles, nil
}

// Append implements [ProfileRegistry].
func (r *fileRegistry) Append(profile models.StoredProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles, err := r.List()
	if err != nil {
		return err
	}
	profiles = append(profiles, profile)

	if err = os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	payload, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile catalog: %w", err)
	}

	// Write next to the catalog, then rename over it. Rename is atomic on
	// the same filesystem, so a crash leaves either the old or the new
	// catalog, never a truncated one.
	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write profile catalog: %w", err)
	}
	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace profile catalog: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/registry"
	"github.com/smaillet/cabinet/internal/session"
	"github.com/smaillet/cabinet/models"
)

// storeFileName is the database file name inside each profile directory.
const storeFileName = "cabinet.db"

// profileService is the concrete implementation of [ProfileService].
type profileService struct {
	registry  registry.ProfileRegistry
	engine    crypto.CredentialEngine
	sessions  session.Holder
	openStore StoreOpener

	// dataDir is the application data root; profile stores live under
	// dataDir/profiles/<id>/.
	dataDir string

	// kdfParams are the costs applied to new profiles. Existing profiles
	// always use the costs persisted in their catalog entry.
	kdfParams models.KDFParams

	logger *logger.Logger
}

// NewProfileService constructs a [ProfileService].
func NewProfileService(
	reg registry.ProfileRegistry,
	engine crypto.CredentialEngine,
	sessions session.Holder,
	openStore StoreOpener,
	dataDir string,
	kdfParams models.KDFParams,
	log *logger.Logger,
) ProfileService {
	log.Debug().Str("data_dir", dataDir).Msg("creating profile service")
	return &profileService{
		registry:  reg,
		engine:    engine,
		sessions:  sessions,
		openStore: openStore,
		dataDir:   dataDir,
		kdfParams: kdfParams,
		logger:    log,
	}
}

// ListProfiles implements [ProfileService].
func (s *profileService) ListProfiles(ctx context.Context) ([]models.ProfileSummary, error) {
	log := logger.FromContext(ctx)

	profiles, err := s.registry.List()
	if err != nil {
		log.Err(err).Msg("listing profiles failed")
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	summaries := make([]models.ProfileSummary, 0, len(profiles))
	for _, profile := range profiles {
		summaries = append(summaries, profile.Summary())
	}

	return summaries, nil
}

// CreateProfile implements [ProfileService].
func (s *profileService) CreateProfile(ctx context.Context, name, password string) (models.ProfileSummary, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return models.ProfileSummary{}, ErrEmptyProfileName
	}
	if strings.TrimSpace(password) == "" {
		return models.ProfileSummary{}, ErrEmptyPassword
	}

	id := uuid.NewString()

	passwordHash, err := s.engine.HashPassword(password, s.kdfParams)
	if err != nil {
		log.Err(err).Msg("hashing profile password failed")
		return models.ProfileSummary{}, fmt.Errorf("hashing password: %w", err)
	}

	keySalt, err := s.engine.GenerateSalt()
	if err != nil {
		log.Err(err).Msg("generating key salt failed")
		return models.ProfileSummary{}, fmt.Errorf("generating key salt: %w", err)
	}

	// Same password, independent salt, independent derivation call: the
	// catalog never holds two values an attacker could cross-derive.
	key := s.engine.DeriveStorageKey(password, keySalt, s.kdfParams)
	keyCheck := s.engine.KeyChecksum(key)
	crypto.Zeroize(key)

	stored := models.StoredProfile{
		ID:              id,
		Name:            name,
		CreatedAt:       time.Now().UTC(),
		StorageLocation: filepath.Join(s.dataDir, "profiles", id, storeFileName),
		PasswordHash:    passwordHash,
		KeySalt:         base64.StdEncoding.EncodeToString(keySalt),
		KDFParams:       s.kdfParams,
		KeyCheck:        keyCheck,
	}

	if err = s.registry.Append(stored); err != nil {
		log.Err(err).Str("profile_id", id).Msg("saving profile failed")
		return models.ProfileSummary{}, fmt.Errorf("saving profile: %w", err)
	}

	log.Info().Str("profile_id", id).Msg("profile created")

	return stored.Summary(), nil
}

// OpenProfile implements [ProfileService].
func (s *profileService) OpenProfile(ctx context.Context, profileID, password string) (models.ProfileSummary, error) {
	log := logger.FromContext(ctx)

	profiles, err := s.registry.List()
	if err != nil {
		log.Err(err).Msg("loading profile catalog failed")
		return models.ProfileSummary{}, fmt.Errorf("loading profiles: %w", err)
	}

	var profile models.StoredProfile
	found := false
	for _, candidate := range profiles {
		if candidate.ID == profileID {
			profile = candidate
			found = true
			break
		}
	}
	if !found {
		return models.ProfileSummary{}, ErrProfileNotFound
	}

	if err = s.engine.VerifyPassword(password, profile.PasswordHash); err != nil {
		log.Warn().Str("profile_id", profileID).Msg("password verification failed")
		return models.ProfileSummary{}, fmt.Errorf("verifying password: %w", err)
	}

	keySalt, err := base64.StdEncoding.DecodeString(profile.KeySalt)
	if err != nil {
		log.Err(err).Str("profile_id", profileID).Msg("key salt is not valid base64")
		return models.ProfileSummary{}, fmt.Errorf("%w: decoding key salt: %w", ErrCorruptProfileEntry, err)
	}

	// Deliberately slow: runs outside the session lock.
	key := s.engine.DeriveStorageKey(password, keySalt, profile.KDFParams)
	defer crypto.Zeroize(key)

	if s.engine.KeyChecksum(key) != profile.KeyCheck {
		log.Error().Str("profile_id", profileID).Msg("derived key failed checksum")
		return models.ProfileSummary{}, ErrKeyCheckMismatch
	}

	// Prove the store opens with this key before adopting the session.
	handle, err := s.openStore(ctx, profile.StorageLocation, key, s.logger)
	if err != nil {
		log.Err(err).Str("profile_id", profileID).Msg("opening encrypted store failed")
		return models.ProfileSummary{}, fmt.Errorf("opening store: %w", err)
	}
	if err = handle.Close(); err != nil {
		log.Err(err).Str("profile_id", profileID).Msg("closing probe handle failed")
		return models.ProfileSummary{}, fmt.Errorf("closing store: %w", err)
	}

	s.sessions.Open(models.ActiveSession{
		ProfileID:       profile.ID,
		StorageLocation: profile.StorageLocation,
		DerivedKey:      key,
	})

	log.Info().Str("profile_id", profileID).Msg("profile opened")

	return profile.Summary(), nil
}

// CloseProfile implements [ProfileService].
func (s *profileService) CloseProfile(ctx context.Context) {
	s.sessions.Close()
}

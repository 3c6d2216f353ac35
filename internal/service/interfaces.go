package service

import (
	"context"

	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/store"
	"github.com/smaillet/cabinet/models"
)

// ProfileService is the profile side of the command surface: catalog
// listing, profile creation, and the unlock flow that installs the single
// active session.
type ProfileService interface {
	// ListProfiles returns the public projection of every catalog entry.
	// Hash and salt material is never included.
	ListProfiles(ctx context.Context) ([]models.ProfileSummary, error)

	// CreateProfile validates the trimmed name and password, hashes the
	// password, derives the key checksum, and appends the profile to the
	// catalog. It does not open the new store and does not touch the
	// active session.
	CreateProfile(ctx context.Context, name, password string) (models.ProfileSummary, error)

	// OpenProfile verifies the password, derives the storage key, checks
	// it against the stored checksum, proves the store opens, and then
	// replaces the active session. Key derivation runs before the session
	// lock is taken.
	OpenProfile(ctx context.Context, profileID, password string) (models.ProfileSummary, error)

	// CloseProfile ends the active session, wiping its key material.
	// A no-op when nothing is open.
	CloseProfile(ctx context.Context)
}

// PatientService is the record side of the command surface. Every call
// re-validates the active session and opens a fresh keyed store handle for
// the duration of the one operation.
type PatientService interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	CreatePatient(ctx context.Context, input models.PatientInput) (models.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
}

// PatientStore is the slice of the encrypted store the services need.
type PatientStore interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	CreatePatient(ctx context.Context, input models.PatientInput) (models.Patient, error)
	DeletePatient(ctx context.Context, id string) error
	Close() error
}

// StoreOpener opens a keyed [PatientStore]. Swappable in tests.
type StoreOpener func(ctx context.Context, storageLocation string, key []byte, log *logger.Logger) (PatientStore, error)

// defaultStoreOpener wires [store.Open] as the production opener.
func defaultStoreOpener(ctx context.Context, storageLocation string, key []byte, log *logger.Logger) (PatientStore, error) {
	return store.Open(ctx, storageLocation, key, log)
}

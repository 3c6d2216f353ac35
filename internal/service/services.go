package service

import (
	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/registry"
	"github.com/smaillet/cabinet/internal/session"
	"github.com/smaillet/cabinet/models"
)

// Services bundles the business-logic layer handed to the command surface.
type Services struct {
	Profiles ProfileService
	Patients PatientService
}

// NewServices wires the production services: file-backed registry catalog,
// Argon2id credential engine, the shared session holder, and the real
// encrypted-store opener.
func NewServices(
	reg registry.ProfileRegistry,
	engine crypto.CredentialEngine,
	sessions session.Holder,
	dataDir string,
	kdfParams models.KDFParams,
	log *logger.Logger,
) *Services {
	return &Services{
		Profiles: NewProfileService(reg, engine, sessions, defaultStoreOpener, dataDir, kdfParams, log),
		Patients: NewPatientService(sessions, defaultStoreOpener, log),
	}
}

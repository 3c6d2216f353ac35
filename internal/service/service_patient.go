package service

import (
	"context"
	"fmt"

	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/session"
	"github.com/smaillet/cabinet/models"
)

// patientService is the concrete implementation of [PatientService].
//
// There is no pooled handle: every operation re-validates the session and
// runs the full open sequence (key pragma, foreign keys, schema check)
// against a fresh handle, closing it when done.
type patientService struct {
	sessions  session.Holder
	openStore StoreOpener
	logger    *logger.Logger
}

// NewPatientService constructs a [PatientService].
func NewPatientService(sessions session.Holder, openStore StoreOpener, log *logger.Logger) PatientService {
	log.Debug().Msg("creating patient service")
	return &patientService{
		sessions:  sessions,
		openStore: openStore,
		logger:    log,
	}
}

// withStore runs fn against a freshly opened store for the active session.
// Absence of a session surfaces as [session.ErrNoActiveSession] before any
// storage work happens.
func (s *patientService) withStore(ctx context.Context, fn func(PatientStore) error) error {
	sess, err := s.sessions.Current()
	if err != nil {
		return err
	}
	defer crypto.Zeroize(sess.DerivedKey)

	handle, err := s.openStore(ctx, sess.StorageLocation, sess.DerivedKey, s.logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer handle.Close()

	return fn(handle)
}

// ListPatients implements [PatientService].
func (s *patientService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	log := logger.FromContext(ctx)

	var patients []models.Patient
	err := s.withStore(ctx, func(st PatientStore) error {
		var err error
		patients, err = st.ListPatients(ctx)
		return err
	})
	if err != nil {
		log.Err(err).Msg("listing patients failed")
		return nil, err
	}

	return patients, nil
}

// CreatePatient implements [PatientService].
func (s *patientService) CreatePatient(ctx context.Context, input models.PatientInput) (models.Patient, error) {
	log := logger.FromContext(ctx)

	if !input.Validate() {
		return models.Patient{}, ErrInvalidPatientInput
	}

	var patient models.Patient
	err := s.withStore(ctx, func(st PatientStore) error {
		var err error
		patient, err = st.CreatePatient(ctx, input)
		return err
	})
	if err != nil {
		log.Err(err).Msg("creating patient failed")
		return models.Patient{}, err
	}

	log.Info().Str("patient_id", patient.ID).Msg("patient created")

	return patient, nil
}

// DeletePatient implements [PatientService]. Idempotent: deleting an id
// that never existed succeeds.
func (s *patientService) DeletePatient(ctx context.Context, patientID string) error {
	log := logger.FromContext(ctx)

	err := s.withStore(ctx, func(st PatientStore) error {
		return st.DeletePatient(ctx, patientID)
	})
	if err != nil {
		log.Err(err).Str("patient_id", patientID).Msg("deleting patient failed")
		return err
	}

	return nil
}

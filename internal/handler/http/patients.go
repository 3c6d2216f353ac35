package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/models"
)

func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	patients, err := h.services.Patients.ListPatients(ctx)
	if err != nil {
		log.Err(err).Msg("listing patients failed")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, patients)
}

func (h *Handler) createPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.PatientInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Error:   KindValidation,
			Message: "invalid JSON was passed",
		})
		return
	}

	patient, err := h.services.Patients.CreatePatient(ctx, input)
	if err != nil {
		log.Err(err).Msg("creating patient failed")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, patient)
}

func (h *Handler) deletePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	patientID := chi.URLParam(r, "patientID")

	if err := h.services.Patients.DeletePatient(ctx, patientID); err != nil {
		log.Err(err).Str("patient_id", patientID).Msg("deleting patient failed")
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

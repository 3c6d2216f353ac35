package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smaillet/cabinet/internal/logger"
)

// createProfileRequest is the create_profile command input. The password
// travels only in the request body; it is never logged or echoed back.
type createProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// openProfileRequest is the open_profile command input.
type openProfileRequest struct {
	Password string `json:"password"`
}

func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	summaries, err := h.services.Profiles.ListProfiles(ctx)
	if err != nil {
		log.Err(err).Msg("listing profiles failed")
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summaries)
}

func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Error:   KindValidation,
			Message: "invalid JSON was passed",
		})
		return
	}

	summary, err := h.services.Profiles.CreateProfile(ctx, req.Name, req.Password)
	if err != nil {
		log.Err(err).Msg("profile creation failed")
		writeError(w, r, err)
		return
	}

	log.Info().Str("profile_id", summary.ID).Msg("profile created")
	writeJSON(w, r, http.StatusCreated, summary)
}

func (h *Handler) openProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	profileID := chi.URLParam(r, "profileID")

	var req openProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Error:   KindValidation,
			Message: "invalid JSON was passed",
		})
		return
	}

	summary, err := h.services.Profiles.OpenProfile(ctx, profileID, req.Password)
	if err != nil {
		log.Err(err).Str("profile_id", profileID).Msg("opening profile failed")
		writeError(w, r, err)
		return
	}

	log.Info().Str("profile_id", summary.ID).Msg("profile opened")
	writeJSON(w, r, http.StatusOK, summary)
}

func (h *Handler) closeProfile(w http.ResponseWriter, r *http.Request) {
	h.services.Profiles.CloseProfile(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

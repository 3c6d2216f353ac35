package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestLog)

	router.Route("/api", func(r chi.Router) {
		r.Get("/profiles", h.listProfiles)
		r.Post("/profiles", h.createProfile)
		r.Post("/profiles/{profileID}/open", h.openProfile)
		r.Post("/session/close", h.closeProfile)

		// patient commands require an active session; the service layer
		// enforces it on every call
		r.Get("/patients", h.listPatients)
		r.Post("/patients", h.createPatient)
		r.Delete("/patients/{patientID}", h.deletePatient)
	})

	return router
}

// Package http is the command surface exposed to the UI shell: a localhost
// JSON API over chi. Failures cross the boundary as a tagged kind plus a
// user-displayable message, never as a bare string.
package http

import (
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/smaillet/cabinet/internal/logger"
)

// responseWriter captures status and size for the logging middleware.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// errorResponse is the failure body: tagged kind plus displayable message.
type errorResponse struct {
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("encoding response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	class := classifyError(err)
	writeJSON(w, r, class.status, errorResponse{
		Error:   class.kind,
		Message: err.Error(),
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withRequestLog is the single observability middleware: it assigns each
// request a trace id (reusing one supplied by the caller), echoes it on the
// response, attaches a request-scoped logger carrying it, and emits one
// completion line with status, size and duration.
func (h *Handler) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		w.Header().Set(traceIDHeader, traceID)

		reqLog := h.logger.GetChildLogger()
		reqLog.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(reqLog.WithContext(r.Context()))

		lw := &responseWriter{ResponseWriter: w}

		start := time.Now()
		next.ServeHTTP(lw, r)

		reqLog.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}

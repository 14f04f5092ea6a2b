package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
)

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-ID"

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogger installs a request-scoped logger carrying a request id, method
// and path, logs one line per request and turns panics into a 500.
func RequestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)

			log := base.With().
				Str("request.id", reqID).
				Str("http.method", r.Method).
				Str("url.path", r.URL.Path).
				Logger()
			rec := &statusRecorder{ResponseWriter: w}
			r = r.WithContext(logutil.WithLogger(r.Context(), log))

			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.Error().Interface("panic", p).Msg("handler panicked")
					if rec.status == 0 {
						httpx.WriteError(rec, http.StatusInternalServerError, "Server error")
					}
				}
				status := rec.status
				if status == 0 {
					status = http.StatusOK
				}
				ev := log.Info()
				if status >= http.StatusInternalServerError {
					ev = log.Error()
				}
				ev.Int("http.status", status).
					Int("http.bytes", rec.bytes).
					Dur("duration", time.Since(start)).
					Msg("request")
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

package handler

import (
	"context"
	"net/http"
	"time"

	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
)

const pingTimeout = 2 * time.Second

// Pinger checks a dependency is reachable. *pgxpool.Pool implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server reports liveness and database readiness on GET /.
type Server struct {
	db  Pinger
	now func() time.Time
}

// NewServer returns a health server. db may be nil, in which case only
// liveness is reported.
func NewServer(db Pinger) *Server {
	return &Server{db: db, now: time.Now}
}

type healthResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthCheck answers 200 OK, or 503 DEGRADED when the database ping fails.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Message:   "Portfolio API is running",
		Status:    "OK",
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	code := http.StatusOK
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			logger := logutil.GetOrDefault(r.Context())
			logger.Warn().Err(err).Msg("health: database ping failed")
			resp.Status = "DEGRADED"
			code = http.StatusServiceUnavailable
		}
	}
	httpx.WriteJSON(w, code, resp)
}

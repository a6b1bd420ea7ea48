package web

import (
	"net/http"

	"diaconisas/internal/adapters/http/perf"
	"diaconisas/internal/adapters/storage"
)

const healthTopRoutes = 5

type healthResponse struct {
	Status  string              `json:"status"`
	Queries  *storage.QueryStats `json:"queries,omitempty"`
	Requests perf.Summary        `json:"requests"`
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health == nil {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Requests: s.opts.Perf.Summarize(healthTopRoutes)})
		return
	}
	if err := s.opts.Health.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Requests: s.opts.Perf.Summarize(healthTopRoutes)})
		return
	}
	st := s.opts.Health.Stats()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Queries: &st, Requests: s.opts.Perf.Summarize(healthTopRoutes)})
}

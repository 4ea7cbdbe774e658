package api

import (
	"net/http"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/server"
)

// HealthHandler answers liveness probes without authentication.
type HealthHandler struct{}

// Routes implements [server.Handler].
func (HealthHandler) Routes() []server.Route {
	return []server.Route{{Method: http.MethodGet, Path: "/health", Handler: http.HandlerFunc(health)}}
}

func health(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

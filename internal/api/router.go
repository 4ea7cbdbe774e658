package api

import (
	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/server"
	"github.com/charmbracelet/log"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Playlists models.PlaylistStore
	Users     models.UserLookup
	Tokens    server.TokenVerifier
	Logger    *log.Logger
}

// NewRouter wires the public health check and the authenticated playlist routes.
func NewRouter(deps Deps) *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(server.Defaults(deps.Logger)...)

	router.Handler(HealthHandler{})
	router.Handler(
		NewPlaylistHandler(deps.Playlists, deps.Logger),
		server.RequireUser(deps.Tokens, deps.Users, deps.Logger),
	)

	return router
}

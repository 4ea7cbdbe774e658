package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/server"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"github.com/charmbracelet/log"
)

// Prefixes are the mount points of the playlist collection.
var Prefixes = []string{"/playlists", "/api/v1/playlists"}

const maxBodyBytes = 1 << 20

// PlaylistHandler serves the playlist CRUD endpoints for the authenticated user.
type PlaylistHandler struct {
	store  models.PlaylistStore
	logger *log.Logger
}

// NewPlaylistHandler creates a PlaylistHandler backed by store.
func NewPlaylistHandler(store models.PlaylistStore, logger *log.Logger) *PlaylistHandler {
	return &PlaylistHandler{store: store, logger: logger}
}

// Routes implements [server.Handler].
//
// Each prefix also gets method-less fallbacks so unknown methods and sub-paths are answered
// after authentication rather than by the mux.
func (h *PlaylistHandler) Routes() []server.Route {
	var routes []server.Route
	for _, prefix := range Prefixes {
		item := prefix + "/{id}"
		routes = append(routes,
			server.Route{Method: http.MethodGet, Path: prefix, Handler: http.HandlerFunc(h.List)},
			server.Route{Method: http.MethodPost, Path: prefix, Handler: http.HandlerFunc(h.Create)},
			server.Route{Method: http.MethodGet, Path: item, Handler: http.HandlerFunc(h.Show)},
			server.Route{Method: http.MethodPatch, Path: item, Handler: http.HandlerFunc(h.Update)},
			server.Route{Method: http.MethodPut, Path: item, Handler: http.HandlerFunc(h.Update)},
			server.Route{Method: http.MethodDelete, Path: item, Handler: http.HandlerFunc(h.Destroy)},
			server.Route{Path: prefix, Handler: methodNotAllowed("GET, POST")},
			server.Route{Path: item, Handler: methodNotAllowed("GET, PATCH, PUT, DELETE")},
			server.Route{Path: prefix + "/", Handler: http.HandlerFunc(notFound)},
		)
	}
	return routes
}

// List returns every playlist owned by the caller.
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := server.UserFromContext(r.Context())
	if !ok {
		server.Forbidden(w, r)
		return
	}

	playlists, err := h.store.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.internal(w, r, "list", err)
		return
	}
	server.WriteJSON(w, r, http.StatusOK, playlists)
}

// Create stores a playlist and its nested videos for the caller.
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := server.UserFromContext(r.Context())
	if !ok {
		server.Forbidden(w, r)
		return
	}

	var attrs models.PlaylistAttributes
	if err := decodePlaylist(w, r, &attrs); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	if err := attrs.Validate(); err != nil {
		h.createError(w, r, err)
		return
	}

	playlist, err := h.store.CreateWithVideos(r.Context(), user.ID, attrs)
	if err != nil {
		h.createError(w, r, err)
		return
	}

	h.logger.Debug("created playlist", "id", playlist.ID, "user_id", user.ID, "videos", len(attrs.Videos))
	server.WriteJSON(w, r, http.StatusCreated, playlist)
}

// Show returns one playlist owned by the caller.
func (h *PlaylistHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := server.UserFromContext(r.Context())
	if !ok {
		server.Forbidden(w, r)
		return
	}

	id, err := playlistID(r)
	if err != nil {
		h.showError(w, r, err)
		return
	}

	playlist, err := h.store.FindByIDForUser(r.Context(), id, user.ID)
	if err != nil {
		h.showError(w, r, err)
		return
	}
	server.WriteJSON(w, r, http.StatusOK, playlist)
}

// Update changes the supplied fields of a playlist owned by the caller.
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := server.UserFromContext(r.Context())
	if !ok {
		server.Forbidden(w, r)
		return
	}

	id, err := playlistID(r)
	if err != nil {
		h.updateError(w, r, err)
		return
	}

	var patch models.PlaylistPatch
	if err := decodePlaylist(w, r, &patch); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	playlist, err := h.store.UpdateFields(r.Context(), id, user.ID, patch)
	if err != nil {
		h.updateError(w, r, err)
		return
	}
	server.WriteJSON(w, r, http.StatusOK, playlist)
}

// Destroy deletes a playlist owned by the caller together with its videos.
func (h *PlaylistHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	user, ok := server.UserFromContext(r.Context())
	if !ok {
		server.Forbidden(w, r)
		return
	}

	id, err := playlistID(r)
	if err != nil {
		h.destroyError(w, r, err)
		return
	}

	if err := h.store.DestroyCascade(r.Context(), id, user.ID); err != nil {
		h.destroyError(w, r, err)
		return
	}

	h.logger.Debug("deleted playlist", "id", id, "user_id", user.ID)
	server.WriteJSON(w, r, http.StatusOK, SuccessBody{Success: "Playlist deleted"})
}

// playlistID parses the {id} path value. Ids that cannot exist are reported as not found.
func playlistID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", shared.ErrPlaylistNotFound, raw)
	}
	return id, nil
}

// decodePlaylist reads a {"playlist": {...}} envelope into dst. Unknown fields are ignored.
func decodePlaylist(w http.ResponseWriter, r *http.Request, dst any) error {
	var envelope struct {
		Playlist json.RawMessage `json:"playlist"`
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: playlist", shared.ErrMissingArgument)
		}
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	if len(envelope.Playlist) == 0 || string(envelope.Playlist) == "null" {
		return fmt.Errorf("%w: playlist", shared.ErrMissingArgument)
	}

	if err := json.Unmarshal(envelope.Playlist, dst); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

func methodNotAllowed(allow string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		server.WriteJSON(w, r, http.StatusMethodNotAllowed, errorBody("base", "Method not allowed"))
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	server.WriteJSON(w, r, http.StatusNotFound, errorBody("base", "Not found"))
}

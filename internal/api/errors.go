package api

import (
	"errors"
	"net/http"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/server"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgNotFound     = "No playlist found with the given id"
	msgDeleteFailed = "Playlist failed to delete"
	msgInvalidJSON  = "is not valid JSON"
	msgMissingParam = "is missing"
)

// ErrorBody is the field-keyed error response used by every playlist operation.
type ErrorBody struct {
	Errors map[string][]string `json:"errors"`
}

// SuccessBody is returned by destroy.
type SuccessBody struct {
	Success string `json:"success"`
}

func errorBody(field string, msgs ...string) ErrorBody {
	return ErrorBody{Errors: map[string][]string{field: msgs}}
}

func (h *PlaylistHandler) internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error("playlist request failed",
		"op", op,
		"error", err,
		"request_id", middleware.GetReqID(r.Context()),
	)
	server.InternalError(w, r)
}

// writeValidation answers 422 when err carries field problems and reports whether it did.
func writeValidation(w http.ResponseWriter, r *http.Request, err error) bool {
	var problems models.ValidationErrors
	if !errors.As(err, &problems) {
		return false
	}
	server.WriteJSON(w, r, http.StatusUnprocessableEntity, ErrorBody{Errors: problems})
	return true
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	msg := msgInvalidJSON
	if errors.Is(err, shared.ErrMissingArgument) {
		msg = msgMissingParam
	}
	server.WriteJSON(w, r, http.StatusBadRequest, errorBody("playlist", msg))
}

func (h *PlaylistHandler) createError(w http.ResponseWriter, r *http.Request, err error) {
	if writeValidation(w, r, err) {
		return
	}
	h.internal(w, r, "create", err)
}

func (h *PlaylistHandler) showError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		server.WriteJSON(w, r, http.StatusNotFound, errorBody("playlist", msgNotFound))
		return
	}
	h.internal(w, r, "show", err)
}

func (h *PlaylistHandler) updateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrPlaylistNotFound):
		server.WriteJSON(w, r, http.StatusNotFound, errorBody("playlist", msgNotFound))
	case writeValidation(w, r, err):
	default:
		h.internal(w, r, "update", err)
	}
}

// destroyError uses one body for both outcomes; only the status tells them apart.
func (h *PlaylistHandler) destroyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrPlaylistNotFound):
		server.WriteJSON(w, r, http.StatusNotFound, errorBody("playlist", msgDeleteFailed))
	case errors.Is(err, shared.ErrDeleteFailed):
		h.logger.Warn("playlist delete failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		server.WriteJSON(w, r, http.StatusUnprocessableEntity, errorBody("playlist", msgDeleteFailed))
	default:
		h.internal(w, r, "destroy", err)
	}
}

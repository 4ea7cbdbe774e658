package server

import (
	"net/http"

	"github.com/go-chi/render"
)

// ForbiddenMessage is the single message returned for every authentication failure.
const ForbiddenMessage = "You must include a JWT token!"

type message struct {
	Message string `json:"message"`
}

// ForbiddenBody is the response body for requests without a usable token.
type ForbiddenBody struct {
	Errors []message `json:"errors"`
}

// InternalBody is the response body for unexpected failures.
type InternalBody struct {
	Errors map[string][]string `json:"errors"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Forbidden writes the 403 authentication failure response.
func Forbidden(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusForbidden, ForbiddenBody{Errors: []message{{Message: ForbiddenMessage}}})
}

// InternalError writes the generic 500 response. Details belong in the log, not the body.
func InternalError(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusInternalServerError, InternalBody{
		Errors: map[string][]string{"base": {"Something went wrong"}},
	})
}

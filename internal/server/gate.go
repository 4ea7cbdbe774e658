package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/auth"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
)

type userKey struct{}

// TokenVerifier resolves a bearer token to the user id it names.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by [RequireUser].
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey{}).(*models.User)
	return user, ok && user != nil
}

// RequireUser rejects requests that do not carry a valid token for an existing user.
//
// A missing header, a malformed header, a bad token and an unknown user all produce the same
// 403 response so a caller cannot tell them apart. Lookup failures other than a missing user are
// reported as 500.
func RequireUser(tokens TokenVerifier, users models.UserLookup, logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.GetReqID(r.Context())

			token, err := auth.FromHeader(r.Header.Get("Authorization"))
			if err != nil {
				logger.Debug("rejected request", "reason", err, "request_id", reqID)
				Forbidden(w, r)
				return
			}

			userID, err := tokens.VerifyToken(token)
			if err != nil {
				logger.Debug("rejected token", "reason", err, "request_id", reqID)
				Forbidden(w, r)
				return
			}

			user, err := users.Get(r.Context(), userID)
			if errors.Is(err, shared.ErrUserNotFound) {
				logger.Debug("token names unknown user", "user_id", userID, "request_id", reqID)
				Forbidden(w, r)
				return
			}
			if err != nil {
				logger.Error("failed to load user", "user_id", userID, "error", err, "request_id", reqID)
				InternalError(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

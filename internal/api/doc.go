// Package api implements the JSON endpoints of the playlist dashboard.
//
// Playlist routes are served under both /playlists and /api/v1/playlists and always run behind
// [server.RequireUser]; the handlers read the caller from the request context and pass its id to
// the store, which scopes every query to that owner.
//
// Each operation maps store errors to its own response body (see errors.go). The shapes differ
// between operations and clients depend on them, so they are kept as they are.
package api

// package server contains the router, middleware & HTTP lifecycle for the playlist API
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, panic recovery, request ids, etc.
type Middleware func(http.Handler) http.Handler

// Route binds a method and path pattern to a handler.
//
// Path uses [http.ServeMux] wildcard syntax, e.g. "/playlists/{id}".
type Route struct {
	Method  string
	Path    string
	Handler http.Handler
}

// Pattern returns the [http.ServeMux] pattern for the route.
func (r Route) Pattern() string {
	if r.Method == "" {
		return r.Path
	}
	return r.Method + " " + r.Path
}

// Handler defines the interface for groups of HTTP endpoints.
// Implementations declare their own routes so the definitions stay next to the code serving them.
type Handler interface {
	Routes() []Route // Routes returns the endpoints this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                      // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler)  // Handle registers a handler for the specified method and path
	Handler(handler Handler, middleware ...Middleware) // Handler registers every route of a Handler, behind middleware
	ServeHTTP(w http.ResponseWriter, r *http.Request)  // ServeHTTP implements http.Handler for the entire router
}

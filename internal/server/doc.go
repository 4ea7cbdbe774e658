// Package server provides HTTP routing, middleware, and the server lifecycle for the playlist API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /playlists/{id}"),
// so path parameters are read with [http.Request.PathValue].
//
// # Handler Interface
//
// Groups of endpoints implement the [Handler] interface and return their own [Route] table.
// [BasicRouter.Handler] registers the table behind extra route-level middleware, which is how the
// playlist endpoints sit behind [RequireUser] while /health stays public.
//
// # Authentication
//
// [RequireUser] reads the Authorization header, verifies the token and loads the user it names.
// The user is then available to handlers through [UserFromContext]. Every failure answers with
// the same 403 body.
//
// # Lifecycle
//
// [Server] wraps [http.Server]. [Server.ListenAndServe] blocks until its context is cancelled and
// then drains in-flight requests for the configured shutdown timeout.
package server

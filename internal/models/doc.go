// Package models defines domain entities, request attributes and persistence interfaces for the
// ytdash playlist API.
//
// The package contains three categories of types:
//
// 1. Persistent Entities: database-backed records serialized by the API
//   - [User] : Account that owns playlists, referenced by id in bearer tokens
//   - [Playlist] : A user's playlist with its external (YouTube) playlist id
//   - [Video] : A video belonging to exactly one playlist
//
// 2. Attributes: request payloads used to create or patch entities
//   - [PlaylistAttributes] : Playlist fields plus nested [VideoAttributes]
//   - [PlaylistPatch] : Optional fields for partial updates
//
// 3. Exports: [PlaylistExport] pairs a playlist with its videos for the CLI exporters
//
// 4. Interfaces: [PlaylistStore] and [UserLookup], implemented by the repositories package.
//
// Validation failures are reported as [ValidationErrors], keyed by JSON field name.
package models

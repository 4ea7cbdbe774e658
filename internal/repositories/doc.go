// Package repositories implements SQLite persistence for users, playlists and videos.
//
// Key Implementations:
//   - [UserRepository] : User accounts with bcrypt password digests and username lookups
//   - [PlaylistRepository] : The ownership-scoped [models.PlaylistStore]
//   - [VideoRepository] : Video rows, written only inside a playlist's transaction
//
// Ownership is enforced in SQL: every playlist query carries "id = ? AND user_id = ?", so a
// missing playlist and another user's playlist are the same [shared.ErrPlaylistNotFound].
// Writes that touch more than one row run inside a single transaction (see [withTx]); a failure
// at any step rolls the whole unit back.
package repositories

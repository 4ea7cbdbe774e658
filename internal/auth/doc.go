// Package auth issues and verifies the bearer tokens that identify API users.
//
// Tokens are HS256 JWTs carrying a single user_id claim. Requests present them in the
// Authorization header as "Bearer: <token>"; the colon is part of the scheme.
//
// [TokenService.VerifyToken] reports every failure (bad signature, wrong algorithm, malformed
// claims, expiry) as [shared.ErrInvalidToken], so callers can map them to one response.
package auth

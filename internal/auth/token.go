package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Scheme is the literal prefix of the Authorization header value, including the trailing space.
const Scheme = "Bearer: "

// Claims is the payload of an API token.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies API tokens with a shared secret.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. A zero ttl issues tokens that never expire.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token secret is empty", shared.ErrInvalidConfig)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("%w: token ttl must not be negative", shared.ErrInvalidConfig)
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// IssueToken returns a signed token naming userID.
func (s *TokenService) IssueToken(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("%w: user id %d", shared.ErrInvalidArgument, userID)
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       shared.GenerateID(),
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry of token and returns the user id it names.
func (s *TokenService) VerifyToken(token string) (int64, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: empty token", shared.ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: missing user_id", shared.ErrInvalidToken)
	}

	return claims.UserID, nil
}

// FromHeader extracts the token from an Authorization header value.
//
// Only the exact "Bearer: " prefix is accepted.
func FromHeader(value string) (string, error) {
	if value == "" {
		return "", shared.ErrNotAuthenticated
	}
	token, ok := strings.CutPrefix(value, Scheme)
	if !ok {
		return "", fmt.Errorf("%w: unsupported authorization scheme", shared.ErrInvalidToken)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", shared.ErrNotAuthenticated)
	}
	return token, nil
}

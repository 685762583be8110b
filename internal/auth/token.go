// Package auth implements the token service: issuing and verifying the
// signed access and refresh tokens used by the HTTP layer.  The service is
// purely cryptographic; it holds no state beyond the secrets and lifetimes
// injected at construction.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FINZ1-ops/shop-api/internal/model"
)

// refreshTTL is the fixed lifetime of refresh tokens.
const refreshTTL = 7 * 24 * time.Hour

var (
	// ErrExpired is returned when a token's signature is valid but its
	// expiry has passed.  Callers surface this distinctly from ErrInvalid
	// so clients can tell "log in again" apart from "bad token".
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for malformed, tampered or otherwise
	// unverifiable tokens.
	ErrInvalid = errors.New("invalid token")
)

// Config carries the signing material and lifetimes for the token service.
// Access and refresh tokens are signed with distinct secrets so one cannot
// be replayed as the other.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
}

// Service issues and verifies HS256 tokens.
type Service struct {
	cfg Config
}

// NewService returns a token service bound to the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a refresh token; only the subject
// (user id) is embedded.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// NewAccessToken signs an access token embedding the user id, email and
// role.  Tokens for the admin role carry no expiry claim at all and never
// expire by construction; all other roles expire after the configured TTL.
func (s *Service) NewAccessToken(userID uint64, email string, role model.Role) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  formatID(userID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if role != model.RoleAdmin {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.AccessTTL))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.AccessSecret))
}

// NewRefreshToken signs a refresh token embedding the user id only.  The
// lifetime is fixed at seven days and the signing secret is distinct from
// the access-token secret.
func (s *Service) NewRefreshToken(userID uint64) (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   formatID(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.RefreshSecret))
}

// ParseAccess verifies an access token and returns its claims.  Expired
// tokens yield ErrExpired; every other failure yields ErrInvalid.
func (s *Service) ParseAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(raw, claims, s.cfg.AccessSecret); err != nil {
		return nil, err
	}
	if _, ok := model.ParseRole(string(claims.Role)); !ok {
		return nil, ErrInvalid
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token against the refresh secret.
func (s *Service) ParseRefresh(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(raw, claims, s.cfg.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// parse runs jwt verification with the HS256 method pinned and maps the
// library's error space onto the two sentinel errors.
func (s *Service) parse(raw string, claims jwt.Claims, secret string) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalid
	}
	if !tok.Valid {
		return ErrInvalid
	}
	return nil
}

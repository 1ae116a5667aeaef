package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenStore keeps the bearer token of the v1 API.
type TokenStore struct {
	repo  metadata.Repository
	clock clock.Clock
}

func NewTokenStore(repo metadata.Repository, clk clock.Clock) *TokenStore {
	return &TokenStore{repo: repo, clock: clk}
}

func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenKey, []byte(token))
}

// LoadToken returns "" when no token is stored.
func (s *TokenStore) LoadToken(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenKey)
}

// Expired reports whether token is a JWT whose exp claim has passed. The
// signature is not checked: only the server can do that. Opaque tokens and
// JWTs without exp are never expired here.
func (s *TokenStore) Expired(token string) bool {
	claims, ok := parseClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return false
	}
	return !s.clock.Now().Before(claims.ExpiresAt.Time)
}

// Subject returns the sub claim of a JWT token, or "".
func Subject(token string) string {
	claims, ok := parseClaims(token)
	if !ok {
		return ""
	}
	return claims.Subject
}

// ExpiresAt returns the exp claim of a JWT token, or the zero time.
func ExpiresAt(token string) time.Time {
	claims, ok := parseClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

func parseClaims(token string) (*jwt.RegisteredClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

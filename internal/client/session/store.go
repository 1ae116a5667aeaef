// Package session persists the client's proof of authentication in the
// local store. Store keeps the widget-scheme SessionRecord under
// "telegram_auth"; TokenStore keeps the bearer token under "access_token".
// The two slots are independent and never read each other.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
)

// Store reads and writes the SessionRecord slot. It is used from one flow
// at a time and does no locking of its own.
type Store struct {
	repo  metadata.Repository
	clock clock.Clock
	ttl   time.Duration
}

func NewStore(repo metadata.Repository, clk clock.Clock) *Store {
	return &Store{repo: repo, clock: clk, ttl: common.SessionTTL}
}

// Save replaces any stored record with {identity, issuedAt}.
func (s *Store) Save(ctx context.Context, identity models.Assertion, issuedAt time.Time) error {
	b, err := json.Marshal(models.SessionRecord{Identity: identity, IssuedAt: issuedAt})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.repo.Set(ctx, common.SessionKey, b)
}

// Load returns the stored record, or (nil, nil) when there is none.
//
// A record that does not decode or carries no user id is removed and
// reported as common.ErrMalformedSession. The caller gets nil in that case
// and should treat it like an absent session.
func (s *Store) Load(ctx context.Context) (*models.SessionRecord, error) {
	b, err := s.repo.Get(ctx, common.SessionKey)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	var rec models.SessionRecord
	if err := json.Unmarshal(b, &rec); err != nil || !rec.Identity.HasIdentity() {
		if cerr := s.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, common.ErrMalformedSession
	}
	return &rec, nil
}

// IsValid reports whether rec was issued less than 24h ago.
func (s *Store) IsValid(rec *models.SessionRecord) bool {
	if rec == nil {
		return false
	}
	return s.clock.Now().Sub(rec.IssuedAt) < s.ttl
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.SessionKey)
}

// Package services contains the client's application services: the auth
// flow that turns a host identity assertion into a persisted session, and
// the dialog service that reads conversations with that session.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/client"
	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tgdialogs/internal/client/session"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
	"github.com/dmitrijs2005/tgdialogs/internal/dbx"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
)

// State is the position of the auth flow.
type State int

const (
	StateUnauthenticated State = iota
	StateVerifying
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SessionStatus describes what the local store currently holds.
type SessionStatus struct {
	Scheme    Scheme
	Present   bool
	Valid     bool
	User      string
	ExpiresAt time.Time // zero when unknown
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Authenticate: verify an assertion with the backend and persist the
//     result. Nothing is written unless the backend confirms.
//   - State: the current flow state.
//   - Status: inspect the stored session without calling the backend.
//   - Logout: remove both the session record and the access token.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Authenticate(ctx context.Context, a models.Assertion) error
	State() State
	Status(ctx context.Context) (SessionStatus, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	clock  clock.Clock
	scheme Scheme
	logger logging.Logger

	mu    sync.Mutex
	state State
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(c client.Client, db *sql.DB, clk clock.Clock, scheme Scheme, logger logging.Logger) AuthService {
	return &authService{
		client: c,
		db:     db,
		clock:  clk,
		scheme: scheme,
		logger: logger,
		state:  StateUnauthenticated,
	}
}

func (a *authService) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) setState(ctx context.Context, s State) {
	a.mu.Lock()
	prev := a.state
	a.state = s
	a.mu.Unlock()
	a.logger.Debug(ctx, "auth state", "from", prev.String(), "to", s.String(), "scheme", string(a.scheme))
}

// Authenticate runs one pass of the flow. On failure the state becomes
// StateFailed and the error wraps either common.ErrMissingIdentity or
// common.ErrVerificationFailed.
func (a *authService) Authenticate(ctx context.Context, assertion models.Assertion) error {
	if !assertion.HasIdentity() {
		a.setState(ctx, StateFailed)
		return common.ErrMissingIdentity
	}

	a.setState(ctx, StateVerifying)

	var token string
	switch a.scheme {
	case SchemeBearer:
		t, err := a.client.ExchangeIdentity(ctx, assertion)
		if err != nil {
			a.setState(ctx, StateFailed)
			return fmt.Errorf("%w: %w", common.ErrVerificationFailed, err)
		}
		token = t
	default:
		if err := a.client.VerifyIdentity(ctx, assertion); err != nil {
			a.setState(ctx, StateFailed)
			return fmt.Errorf("%w: %w", common.ErrVerificationFailed, err)
		}
	}

	if err := a.persist(ctx, assertion, token); err != nil {
		a.setState(ctx, StateFailed)
		return fmt.Errorf("session saving error: %w", err)
	}

	a.setState(ctx, StateAuthenticated)
	a.logger.Info(ctx, "authenticated", "user_id", assertion.ID, "scheme", string(a.scheme))
	return nil
}

// persist writes the confirmed identity, and the token when there is one,
// in a single transaction.
func (a *authService) persist(ctx context.Context, assertion models.Assertion, token string) error {
	issuedAt := a.clock.Now()
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := session.NewStore(repo, a.clock).Save(ctx, assertion, issuedAt); err != nil {
			return err
		}
		if token == "" {
			return nil
		}
		return session.NewTokenStore(repo, a.clock).SaveToken(ctx, token)
	})
}

func (a *authService) Status(ctx context.Context) (SessionStatus, error) {
	repo := metadata.NewSQLiteRepository(a.db)
	st := SessionStatus{Scheme: a.scheme}

	if a.scheme == SchemeBearer {
		tokens := session.NewTokenStore(repo, a.clock)
		token, err := tokens.LoadToken(ctx)
		if err != nil {
			return st, err
		}
		if token == "" {
			return st, nil
		}
		st.Present = true
		st.Valid = !tokens.Expired(token)
		st.User = session.Subject(token)
		st.ExpiresAt = session.ExpiresAt(token)
		return st, nil
	}

	store := session.NewStore(repo, a.clock)
	rec, err := store.Load(ctx)
	if err != nil {
		return st, err
	}
	if rec == nil {
		return st, nil
	}
	st.Present = true
	st.Valid = store.IsValid(rec)
	st.User = rec.Identity.DisplayName()
	st.ExpiresAt = rec.IssuedAt.Add(common.SessionTTL)
	return st, nil
}

// Logout clears both slots regardless of the scheme in use.
func (a *authService) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := session.NewStore(repo, a.clock).Clear(ctx); err != nil {
			return err
		}
		return session.NewTokenStore(repo, a.clock).ClearToken(ctx)
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.setState(ctx, StateUnauthenticated)
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

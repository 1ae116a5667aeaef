package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tgdialogs/internal/client/client"
	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tgdialogs/internal/client/session"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
)

// Message page bounds accepted by the backend.
const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 100
)

// DialogService reads conversations with the stored session.
//
// Fetch returns one of common.ErrSessionMissing, common.ErrSessionExpired,
// common.ErrMalformedSession or common.ErrUnauthorized when the user has to
// log in again; see common.NeedsAuth. Messages and Send exist on the bearer
// scheme only.
type DialogService interface {
	Fetch(ctx context.Context) ([]models.Dialog, error)
	Messages(ctx context.Context, dialogID string, limit, offsetID int) ([]models.Message, error)
	Send(ctx context.Context, dialogID, text string, replyTo *int64) (models.Message, error)
}

type dialogService struct {
	client client.Client
	store  *session.Store
	tokens *session.TokenStore
	scheme Scheme
}

// NewDialogService constructs a DialogService bound to the given API client and DB.
func NewDialogService(c client.Client, db *sql.DB, clk clock.Clock, scheme Scheme) DialogService {
	repo := metadata.NewSQLiteRepository(db)
	return &dialogService{
		client: c,
		store:  session.NewStore(repo, clk),
		tokens: session.NewTokenStore(repo, clk),
		scheme: scheme,
	}
}

// Fetch validates the local session and, only if it is usable, makes one
// request for the dialog list.
func (s *dialogService) Fetch(ctx context.Context) ([]models.Dialog, error) {
	if s.scheme == SchemeBearer {
		return s.fetchWithToken(ctx)
	}

	rec, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, common.ErrSessionMissing
	}
	if !s.store.IsValid(rec) {
		if err := s.store.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, common.ErrSessionExpired
	}

	dialogs, err := s.client.UserDialogs(ctx, rec.Identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
	}
	return dialogs, nil
}

func (s *dialogService) fetchWithToken(ctx context.Context) ([]models.Dialog, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	dialogs, err := s.client.Dialogs(ctx, token)
	if err != nil {
		if aerr := s.dropRejectedToken(ctx, err); aerr != nil {
			return nil, aerr
		}
		return nil, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
	}
	return dialogs, nil
}

func (s *dialogService) Messages(ctx context.Context, dialogID string, limit, offsetID int) ([]models.Message, error) {
	if s.scheme != SchemeBearer {
		return nil, fmt.Errorf("messages: %w", ErrSchemeUnsupported)
	}

	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	msgs, err := s.client.Messages(ctx, token, dialogID, clampLimit(limit), max(offsetID, 0))
	if err != nil {
		if aerr := s.dropRejectedToken(ctx, err); aerr != nil {
			return nil, aerr
		}
		return nil, fmt.Errorf("fetch messages error: %w", err)
	}
	return msgs, nil
}

func (s *dialogService) Send(ctx context.Context, dialogID, text string, replyTo *int64) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, common.ErrEmptyMessage
	}
	if s.scheme != SchemeBearer {
		return models.Message{}, fmt.Errorf("send: %w", ErrSchemeUnsupported)
	}

	token, err := s.token(ctx)
	if err != nil {
		return models.Message{}, err
	}

	msg, err := s.client.SendMessage(ctx, token, dialogID, models.SendMessageRequest{Text: text, ReplyTo: replyTo})
	if err != nil {
		if aerr := s.dropRejectedToken(ctx, err); aerr != nil {
			return models.Message{}, aerr
		}
		return models.Message{}, fmt.Errorf("send message error: %w", err)
	}
	return msg, nil
}

// token returns the stored access token, clearing it first if its exp
// claim has already passed.
func (s *dialogService) token(ctx context.Context) (string, error) {
	token, err := s.tokens.LoadToken(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrSessionMissing
	}
	if s.tokens.Expired(token) {
		if err := s.tokens.ClearToken(ctx); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: token expired", common.ErrUnauthorized)
	}
	return token, nil
}

// dropRejectedToken clears the token when the backend refused it and
// returns the error to report; nil means err was not an auth failure.
func (s *dialogService) dropRejectedToken(ctx context.Context, err error) error {
	if !errors.Is(err, common.ErrUnauthorized) {
		return nil
	}
	if cerr := s.tokens.ClearToken(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultMessageLimit
	case limit > MaxMessageLimit:
		return MaxMessageLimit
	default:
		return limit
	}
}

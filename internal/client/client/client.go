package client

import (
	"context"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
)

// Client is the backend API contract. The legacy widget endpoints and the
// v1 bearer endpoints are two independent auth schemes.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// POST /api/auth and GET /api/dialogs?user_id=<id>.
	VerifyIdentity(ctx context.Context, a models.Assertion) error
	UserDialogs(ctx context.Context, userID int64) ([]models.Dialog, error)

	// POST /api/v1/auth/telegram and the bearer-protected /api/v1/dialogs.
	ExchangeIdentity(ctx context.Context, a models.Assertion) (string, error)
	Dialogs(ctx context.Context, token string) ([]models.Dialog, error)
	Messages(ctx context.Context, token string, dialogID string, limit, offsetID int) ([]models.Message, error)
	SendMessage(ctx context.Context, token string, dialogID string, req models.SendMessageRequest) (models.Message, error)
}

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
	"github.com/dmitrijs2005/tgdialogs/internal/netx"
	"github.com/google/uuid"
)

// ErrRejected is returned when a legacy endpoint answers success:false.
var ErrRejected = errors.New("rejected by server")

// HTTPClient talks to the backend over its JSON REST API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	logger  logging.Logger
}

type legacyResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Dialogs []models.Dialog `json:"dialogs,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewHTTPClient validates baseURL and builds a client. A zero timeout means
// requests wait for as long as the server takes.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	start := time.Now()
	err := netx.DoJSON(c.hc, req, out)
	c.logger.Debug(req.Context(), "api call",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"duration", time.Since(start),
		"error", err,
	)
	return c.mapError(err)
}

// mapError folds transport and status failures into the common sentinels.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, se.Status)
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return fmt.Errorf("%w: %s", common.ErrUnavailable, se.Status)
		default:
			return fmt.Errorf("api error: %w", err)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	return err
}

// Ping probes GET /health.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("%w: health status %q", common.ErrUnavailable, resp.Status)
	}
	return nil
}

func (c *HTTPClient) VerifyIdentity(ctx context.Context, a models.Assertion) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth", a)
	if err != nil {
		return err
	}

	var resp legacyResponse
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return rejected(resp.Error)
	}
	return nil
}

func (c *HTTPClient) UserDialogs(ctx context.Context, userID int64) ([]models.Dialog, error) {
	q := url.Values{"user_id": {strconv.FormatInt(userID, 10)}}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/dialogs?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp legacyResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(resp.Error)
	}
	return resp.Dialogs, nil
}

func (c *HTTPClient) ExchangeIdentity(ctx context.Context, a models.Assertion) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/auth/telegram", a)
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", rejected("empty access token")
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) authorizedRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req, nil
}

func (c *HTTPClient) Dialogs(ctx context.Context, token string) ([]models.Dialog, error) {
	req, err := c.authorizedRequest(ctx, http.MethodGet, "/api/v1/dialogs/", token, nil)
	if err != nil {
		return nil, err
	}

	var dialogs []models.Dialog
	if err := c.do(req, &dialogs); err != nil {
		return nil, err
	}
	return dialogs, nil
}

func (c *HTTPClient) Messages(ctx context.Context, token string, dialogID string, limit, offsetID int) ([]models.Message, error) {
	q := url.Values{
		"limit":     {strconv.Itoa(limit)},
		"offset_id": {strconv.Itoa(offsetID)},
	}
	path := "/api/v1/dialogs/" + url.PathEscape(dialogID) + "/messages?" + q.Encode()

	req, err := c.authorizedRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := c.do(req, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, token string, dialogID string, body models.SendMessageRequest) (models.Message, error) {
	path := "/api/v1/dialogs/" + url.PathEscape(dialogID) + "/messages"

	req, err := c.authorizedRequest(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return models.Message{}, err
	}

	var msg models.Message
	if err := c.do(req, &msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func rejected(msg string) error {
	if msg == "" {
		return ErrRejected
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

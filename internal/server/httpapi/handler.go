package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
	"github.com/dmitrijs2005/tgdialogs/internal/server/auth"
	"github.com/dmitrijs2005/tgdialogs/internal/server/dialogs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultMessageLimit = 20
	maxMessageLimit     = 100
	maxBodyBytes        = 64 << 10
)

// Verifier checks a Telegram identity assertion.
type Verifier interface {
	Verify(a models.Assertion) error
}

type Handler struct {
	store     dialogs.Store
	verifier  Verifier
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    logging.Logger
}

func NewHandler(store dialogs.Store, verifier Verifier, secretKey string, tokenTTL time.Duration, l logging.Logger) *Handler {
	return &Handler{
		store:     store,
		verifier:  verifier,
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
		logger:    l.With("module", "http_handler"),
	}
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Post("/api/auth", h.legacyAuth)
	r.Get("/api/dialogs", h.legacyDialogs)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/telegram", h.issueToken)

		r.Route("/dialogs", func(r chi.Router) {
			r.Use(h.accessTokenMiddleware)
			r.Get("/", h.listDialogs)
			r.Get("/{dialogID}/messages", h.listMessages)
			r.Post("/{dialogID}/messages", h.sendMessage)
		})
	})

	return r
}

type legacyResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Dialogs []models.Dialog `json:"dialogs,omitempty"`
}

type tokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	User        models.Assertion `json:"user"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) legacyAuth(w http.ResponseWriter, r *http.Request) {
	var a models.Assertion
	if err := decodeBody(w, r, &a); err != nil {
		writeJSON(w, http.StatusBadRequest, legacyResponse{Error: "invalid request body"})
		return
	}
	if !a.HasIdentity() {
		writeJSON(w, http.StatusBadRequest, legacyResponse{Error: "missing user id"})
		return
	}

	if err := h.verifier.Verify(a); err != nil {
		h.logger.Warn(r.Context(), "widget auth rejected", "user_id", a.ID, "error", err)
		writeJSON(w, http.StatusOK, legacyResponse{Error: err.Error()})
		return
	}

	h.logger.Info(r.Context(), "widget auth accepted", "user_id", a.ID)
	writeJSON(w, http.StatusOK, legacyResponse{Success: true})
}

func (h *Handler) legacyDialogs(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		writeJSON(w, http.StatusBadRequest, legacyResponse{Error: "user_id is required"})
		return
	}

	ds, err := h.store.Dialogs(r.Context(), userID)
	if err != nil {
		h.logger.Error(r.Context(), "dialogs error", "error", err)
		writeJSON(w, http.StatusInternalServerError, legacyResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, legacyResponse{Success: true, Dialogs: ds})
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var a models.Assertion
	if err := decodeBody(w, r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !a.HasIdentity() {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := h.verifier.Verify(a); err != nil {
		h.logger.Warn(r.Context(), "token exchange rejected", "user_id", a.ID, "error", err)
		writeError(w, http.StatusUnauthorized, "Invalid Telegram authentication data")
		return
	}

	token, err := auth.GenerateToken(strconv.FormatInt(a.ID, 10), h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error(r.Context(), "token generation error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.Hash = ""
	h.logger.Info(r.Context(), "token issued", "user_id", a.ID)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", User: a})
}

func (h *Handler) listDialogs(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	ds, err := h.store.Dialogs(r.Context(), userID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	q := r.URL.Query()

	limit := defaultMessageLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxMessageLimit {
			writeError(w, http.StatusUnprocessableEntity, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	var offsetID int64
	if v := q.Get("offset_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusUnprocessableEntity, "offset_id must be a non-negative integer")
			return
		}
		offsetID = n
	}

	msgs, err := h.store.Messages(r.Context(), userID, chi.URLParam(r, "dialogID"), limit, offsetID)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var body models.SendMessageRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.store.Send(r.Context(), userID, chi.URLParam(r, "dialogID"), body.Text, body.ReplyTo)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dialogs.ErrDialogNotFound):
		writeError(w, http.StatusNotFound, "dialog not found")
	case errors.Is(err, common.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "text is required")
	default:
		h.logger.Error(r.Context(), "store error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody reads a JSON request body of at most maxBodyBytes.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

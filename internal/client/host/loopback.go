package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	nonceBytes      = 16
	shutdownTimeout = 2 * time.Second
	maxBodyBytes    = 64 << 10
)

// LoopbackHost runs a short-lived HTTP server on a local address that the
// Telegram login widget redirects to (data-auth-url), or that a Mini App
// page can POST its initData user to. Paths carry a random nonce so only
// the URL shown to the user is accepted.
type LoopbackHost struct {
	addr   string
	nonce  string
	logger logging.Logger

	// Ready, if set, is called with the callback URL once the server listens.
	Ready func(url string)
}

// NewLoopbackHost prepares a host on addr ("127.0.0.1:0" picks a free port).
func NewLoopbackHost(addr string, logger logging.Logger) (*LoopbackHost, error) {
	nonce, err := common.MakeRandHexString(nonceBytes)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return &LoopbackHost{addr: addr, nonce: nonce, logger: logger}, nil
}

func (h *LoopbackHost) path() string {
	return "/auth/telegram/" + h.nonce
}

type delivery struct {
	err error
}

// Listen serves until one assertion has been handed to cb, or ctx is done.
func (h *LoopbackHost) Listen(ctx context.Context, cb AuthCallback) error {
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", h.addr, err)
	}

	done := make(chan delivery, 1)
	srv := &http.Server{
		Handler:           h.routes(ctx, cb, done),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	url := "http://" + ln.Addr().String() + h.path()
	h.logger.Debug(ctx, "loopback host listening", "url", url)
	if h.Ready != nil {
		h.Ready(url)
	}

	var result error
	select {
	case d := <-done:
		result = d.err
	case err := <-serveErr:
		result = fmt.Errorf("loopback server: %w", err)
	case <-ctx.Done():
		result = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	return result
}

func (h *LoopbackHost) routes(ctx context.Context, cb AuthCallback, done chan<- delivery) http.Handler {
	var delivered atomic.Bool

	handle := func(w http.ResponseWriter, r *http.Request, a models.Assertion) {
		if !delivered.CompareAndSwap(false, true) {
			writeResult(w, http.StatusConflict, errors.New("assertion already received"))
			return
		}

		err := cb(ctx, a)
		done <- delivery{err: err}

		if err != nil {
			writeResult(w, http.StatusUnauthorized, err)
			return
		}
		writeResult(w, http.StatusOK, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/auth/telegram/{nonce}", func(r chi.Router) {
		r.Use(h.checkNonce)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			a, err := models.AssertionFromQuery(r.URL.Query())
			if err != nil {
				writeResult(w, http.StatusBadRequest, err)
				return
			}
			handle(w, r, a)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var a models.Assertion
			if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&a); err != nil {
				writeResult(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
				return
			}
			handle(w, r, a)
		})
	})

	return r
}

func (h *LoopbackHost) checkNonce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "nonce") != h.nonce {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeResult(w http.ResponseWriter, status int, err error) {
	body := map[string]any{"success": err == nil}
	if err != nil {
		body["error"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

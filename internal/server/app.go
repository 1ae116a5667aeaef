// Package server wires the development backend together: config, logger,
// the in-memory dialog store, the widget verifier and the HTTP API, and
// runs it until a termination signal arrives.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
	"github.com/dmitrijs2005/tgdialogs/internal/server/auth"
	"github.com/dmitrijs2005/tgdialogs/internal/server/config"
	"github.com/dmitrijs2005/tgdialogs/internal/server/dialogs"
	"github.com/dmitrijs2005/tgdialogs/internal/server/httpapi"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler *httpapi.Handler
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	clk := clock.Real()

	verifier := auth.NewTelegramVerifier(c.BotToken, c.AuthMaxAge, clk)
	if !verifier.Enabled() {
		logger.Warn(context.Background(), "bot token is empty, widget hashes are not checked")
	}

	store := dialogs.NewMemoryStore(clk)
	h := httpapi.NewHandler(store, verifier, c.SecretKey, c.AccessTokenValidityDuration, logger)

	return &App{config: c, logger: logger, handler: h}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.handler.Routes())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tgdialogs/internal/client/client"
	"github.com/dmitrijs2005/tgdialogs/internal/client/config"
	"github.com/dmitrijs2005/tgdialogs/internal/client/host"
	"github.com/dmitrijs2005/tgdialogs/internal/client/services"
	"github.com/dmitrijs2005/tgdialogs/internal/client/view"
	"github.com/dmitrijs2005/tgdialogs/internal/clock"
	"github.com/dmitrijs2005/tgdialogs/internal/logging"
)

// Screen is what the user is looking at: the auth prompt or the dialog list.
type Screen string

const (
	ScreenAuth    Screen = "auth"
	ScreenDialogs Screen = "dialogs"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	dialogService services.DialogService
	printer       *view.Printer
	logger        logging.Logger
	clock         clock.Clock
	db            *sql.DB
	reader        *bufio.Reader
	out           io.Writer

	// newHost builds the host used by "login"; tests replace it.
	newHost func() (host.Host, error)

	userName string
	Screen   Screen
}

// NewApp opens the local store and builds the services for cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	scheme, err := services.ParseScheme(cfg.AuthScheme)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, cfg.StatePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.StatePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(cfg.APIURL, cfg.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	clk := clock.Real()
	a := &App{
		config:        cfg,
		authService:   services.NewAuthService(apiClient, db, clk, scheme, logger),
		dialogService: services.NewDialogService(apiClient, db, clk, scheme),
		printer:       view.NewPrinter(os.Stdout),
		logger:        logger,
		clock:         clk,
		db:            db,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}
	a.newHost = a.loopbackHost
	return a, nil
}

func (a *App) loopbackHost() (host.Host, error) {
	h, err := host.NewLoopbackHost(a.config.CallbackAddr, a.logger)
	if err != nil {
		return nil, err
	}
	h.Ready = func(url string) {
		fmt.Fprintf(a.out, "Open the Telegram login widget with data-auth-url set to:\n  %s\nWaiting for the redirect...\n", url)
	}
	return h, nil
}

func (a *App) setScreen(ctx context.Context, s Screen) {
	if a.Screen != s {
		a.Screen = s
		a.logger.Debug(ctx, "switched screen", "screen", string(s))
	}
}

func (a *App) isAuthenticated() bool {
	return a.Screen == ScreenDialogs
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Screen != "" {
		s = s + string(a.Screen)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run performs the start-up fetch and then serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to tgdialogs (type 'help' for commands)")
	_ = a.Start(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Start is the equivalent of opening the dialogs page: one session check
// and, if it passes, one fetch. The user name is read only after the fetch
// succeeded so that the fetch is the one reporting a bad stored session.
func (a *App) Start(ctx context.Context) error {
	if err := a.Dialogs(ctx); err != nil {
		return err
	}
	a.refreshUser(ctx)
	return nil
}

func (a *App) refreshUser(ctx context.Context) {
	st, err := a.authService.Status(ctx)
	if err != nil {
		a.logger.Debug(ctx, "session status", "error", err)
	}
	if err != nil || !st.Present {
		a.userName = ""
		return
	}
	a.userName = st.User
}

func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "close api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "close local store", "error", err)
		}
	}
}

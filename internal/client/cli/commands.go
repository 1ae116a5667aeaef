package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tgdialogs/internal/client/host"
	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"github.com/dmitrijs2005/tgdialogs/internal/client/view"
	"github.com/dmitrijs2005/tgdialogs/internal/common"
)

const (
	loginTimeout = 5 * time.Minute
	pingTimeout  = 3 * time.Second
)

// errUsage marks a command invoked with bad arguments.
var errUsage = errors.New("usage")

// Dialogs fetches the dialog list and prints it. Errors that mean the
// session is gone switch the app to the auth screen.
func (a *App) Dialogs(ctx context.Context) error {
	dialogs, err := a.dialogService.Fetch(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	a.setScreen(ctx, ScreenDialogs)
	return a.printer.Print(view.Render(dialogs, a.clock.Now()))
}

func (a *App) reportError(ctx context.Context, err error) {
	a.logger.Debug(ctx, "command failed", "error", err)

	if common.NeedsAuth(err) {
		a.setScreen(ctx, ScreenAuth)
		a.userName = ""
		a.printer.Notice("%s. Type 'login' to authenticate.", sessionReason(err))
		return
	}
	a.printer.Notice("Error: %v", err)
}

func sessionReason(err error) string {
	switch {
	case errors.Is(err, common.ErrSessionMissing):
		return "Not logged in"
	case errors.Is(err, common.ErrSessionExpired):
		return "Session expired"
	case errors.Is(err, common.ErrMalformedSession):
		return "Stored session was unreadable and has been removed"
	default:
		return "Authorization rejected"
	}
}

// Login waits for an assertion from the loopback host, then shows dialogs.
func (a *App) Login(ctx context.Context) error {
	h, err := a.newHost()
	if err != nil {
		a.printer.Notice("Error: %v", err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()
	return a.login(ctx, h)
}

// LoginJSON authenticates with an assertion read from path. Without a path
// the user is asked for one.
func (a *App) LoginJSON(ctx context.Context, path string) error {
	if path == "" {
		p, err := getSimpleText(a.reader, "Path to the assertion JSON file", a.out)
		if err != nil {
			return err
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		a.printer.Notice("Error: %v", err)
		return err
	}
	defer f.Close()

	return a.login(ctx, host.NewReaderHost(f))
}

func (a *App) login(ctx context.Context, h host.Host) error {
	err := h.Listen(ctx, func(ctx context.Context, assertion models.Assertion) error {
		if err := a.authService.Authenticate(ctx, assertion); err != nil {
			return err
		}
		a.userName = assertion.DisplayName()
		return nil
	})
	if err != nil {
		a.setScreen(ctx, ScreenAuth)
		a.printer.Notice("Login unsuccessful: %v", err)
		return err
	}

	a.printer.Notice("Login successful")
	return a.Dialogs(ctx)
}

// Messages prints messages of a dialog: messages <id> [limit].
func (a *App) Messages(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		printlnFn("Usage: messages <dialog id> [limit]")
		return errUsage
	}

	limit := 0
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			printlnFn("Usage: messages <dialog id> [limit]")
			return errUsage
		}
		limit = n
	}

	msgs, err := a.dialogService.Messages(ctx, args[0], limit, 0)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	return a.printer.PrintMessages(msgs, a.clock.Now())
}

// Send posts a message: send <id> <text...>. Without text the user is asked
// for it, ending with an empty line.
func (a *App) Send(ctx context.Context, args []string) error {
	if len(args) < 1 {
		printlnFn("Usage: send <dialog id> <text>")
		return errUsage
	}

	text := strings.Join(args[1:], " ")
	if text == "" {
		t, err := getMultiline(a.reader, "Message text", a.out)
		if err != nil {
			return err
		}
		text = t
	}

	msg, err := a.dialogService.Send(ctx, args[0], text, nil)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}
	a.printer.Notice("Sent message %d", msg.ID)
	return nil
}

// Status prints what the local store holds and whether the server answers.
func (a *App) Status(ctx context.Context) error {
	st, err := a.authService.Status(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Auth scheme: %s\n", st.Scheme)
	switch {
	case !st.Present:
		fmt.Fprintln(a.out, "Session: none")
	case st.Valid:
		fmt.Fprintf(a.out, "Session: %s, valid%s\n", st.User, expiry(st.ExpiresAt))
	default:
		fmt.Fprintf(a.out, "Session: %s, expired\n", st.User)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := a.authService.Ping(pingCtx); err != nil {
		fmt.Fprintf(a.out, "Server: unreachable (%v)\n", err)
	} else {
		fmt.Fprintln(a.out, "Server: online")
	}
	return nil
}

func expiry(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return " until " + t.Local().Format("02.01.2006 15:04")
}

// Logout removes the stored session and token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.printer.Notice("Error: %v", err)
		return err
	}
	a.userName = ""
	a.setScreen(ctx, ScreenAuth)
	a.printer.Notice("Logged out")
	return nil
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Login(ctx context.Context) error
	LoginJSON(ctx context.Context, path string) error
	Dialogs(ctx context.Context) error
	Messages(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the tgdialogs CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Auth screen:
//	  - help                 show available commands
//	  - login                log in through the loopback login host
//	  - login-json [file]    log in with a saved assertion
//	  - status               show session and server state
//	  - exit | quit          leave the program
//
//	Dialogs screen, additionally:
//	  - dialogs | d          refresh the dialog list
//	  - messages <id> [n]    show messages of a dialog
//	  - send <id> <text>     send a message
//	  - logout               forget the session
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. A failed command never ends the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tgd %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isAuthenticated() {
				printlnFn("Available commands: (d)ialogs, messages <id> [limit], send <id> <text>, status, logout, exit")
			} else {
				printlnFn("Available commands: login, login-json <file>, dialogs, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "login-json":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			_ = a.LoginJSON(ctx, path)

		case "d", "dialogs":
			_ = a.Dialogs(ctx)

		case "messages":
			_ = a.Messages(ctx, args)

		case "send":
			_ = a.Send(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// Package cli provides the interactive tgdialogs command-line client.
//
// It wires configuration, the local store, the API client, the auth and
// dialog services and a REPL. On start the client behaves like opening the
// dialogs page: it checks the stored session and either prints the dialog
// list or switches to the auth view and asks the user to log in.
//
// Commands:
//   - login             authenticate through the loopback login host
//   - login-json <file> authenticate with an assertion saved as JSON
//   - dialogs           fetch and print the dialog list
//   - messages <id> [n] print the last n messages of a dialog
//   - send <id> <text>  send a message
//   - status            show the stored session and server reachability
//   - logout            forget the stored session and token
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

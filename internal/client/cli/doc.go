// Package cli provides the interactive command-line client.
//
// It wires configuration, the HTTP API client and a saved session token
// into a REPL. A token saved by an earlier login is reused if the server
// still accepts it.
//
// Key features:
//   - Register / Login / Logout, profile view and edit
//   - List resources (all, mine, by availability) and show one
//   - Add, edit, toggle availability of and delete own resources
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

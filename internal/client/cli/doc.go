// Package cli provides the interactive bookit terminal client.
//
// It wires configuration, token storage, the API client, the session
// manager and the role router, then runs a REPL on top of them. Typical
// flow: restore the saved session, start the background re-verification
// watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Show and edit the profile, change the password
//   - List notifications
//   - Navigate with "open <path>" through the role-based route guard
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the session package for details.
package cli

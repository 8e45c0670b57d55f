// Package client contains the marketplace API client and local database
// bootstrap for bookit.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login, Register, FetchCurrentUser, UpdateProfile, ChangePassword.
//  2. An HTTP/JSON implementation (see HTTPClient). The bearer credential is
//     attached per request from the context (WithAccessToken); the client
//     never keeps it, so several sessions can share one HTTPClient.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx answers come back as *APIError carrying the server's message and
// status code. errors.Is(err, ErrUnauthorized) matches 401/403. Transport
// failures wrap ErrUnavailable.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client

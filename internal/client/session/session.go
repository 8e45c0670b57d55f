// Package session is the single source of truth for who is signed in.
//
// A Manager owns the authentication state of one running application. It
// combines the token store, the credential verifier and the API client, and
// hands consumers read-only snapshots through the View interface.
//
// State machine:
//
//	UNINITIALIZED → VERIFYING → {AUTHENTICATED, ANONYMOUS}
//
// Init, Login, Register and Logout take a sequence number when issued. A
// result is applied only if no operation issued later has been applied
// already; otherwise it is dropped and ErrSuperseded is returned. A login
// that resolves after a logout therefore never resurrects the session.
// Refresh and UpdateProfile take no number: their results are dropped when
// one of those operations is issued while they are in flight, and a Refresh
// result also yields to any change applied meanwhile.
package session

import (
	"errors"

	"github.com/dmitrijs2005/bookit/internal/client/models"
)

var (
	// ErrInvalidInput is returned when client-side validation rejects a
	// request before anything is sent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthenticated is returned by operations that need a signed-in
	// session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSuperseded is returned when a result arrived after a newer session
	// operation had already been applied.
	ErrSuperseded = errors.New("superseded by a newer session operation")

	errEmptyProfile = errors.New("server returned an empty profile")
)

type State int

const (
	StateUninitialized State = iota
	StateVerifying
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the authentication state.
// IsAuthenticated implies User != nil.
type Session struct {
	User            *models.UserProfile
	IsAuthenticated bool
	Loading         bool
	State           State
}

// View is the read-only face of a Manager given to consumers.
type View interface {
	Snapshot() Session
	Subscribe(fn func(Session)) (unsubscribe func())
}

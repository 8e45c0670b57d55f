package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookit/internal/client/client"
	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/client/tokenstore"
	"github.com/dmitrijs2005/bookit/internal/client/verifier"
	"github.com/dmitrijs2005/bookit/internal/logging"
	"github.com/dmitrijs2005/bookit/internal/metrics"
)

// Manager owns the session state of one application. It is safe for
// concurrent use; construct it with NewManager and share it explicitly.
type Manager struct {
	store   tokenstore.Store
	api     client.Client
	log     logging.Logger
	metrics metrics.Recorder
	now     func() time.Time

	mu      sync.RWMutex
	state   State
	user    *models.UserProfile
	issued  uint64
	applied uint64
	version uint64

	subMu   sync.Mutex
	subs    map[int]func(Session)
	nextSub int
}

var _ View = (*Manager)(nil)

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(m *Manager) { m.metrics = r }
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager in the UNINITIALIZED state. Call Init once
// before handing it to consumers.
func NewManager(store tokenstore.Store, api client.Client, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		api:     api,
		log:     logging.Nop(),
		metrics: metrics.Nop{},
		now:     time.Now,
		subs:    make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change and must not block.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

// Init performs the initial load: it restores the session from the stored
// token, or settles in ANONYMOUS. It never fails; problems are logged.
func (m *Manager) Init(ctx context.Context) Session {
	m.mu.Lock()
	m.issued++
	t := ticket{kind: claim, seq: m.issued}
	m.setLocked(StateVerifying, nil)
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)

	m.verify(ctx, "init", t)
	return m.Snapshot()
}

// Refresh re-verifies an authenticated session: it re-checks the stored
// token and re-fetches the profile. Any failure signs the user out.
// It is a no-op for a session that is not authenticated. Its result is
// dropped if any other operation was issued or applied meanwhile, so a
// background check never cancels a login.
func (m *Manager) Refresh(ctx context.Context) Session {
	if !m.Snapshot().IsAuthenticated {
		return m.Snapshot()
	}
	m.verify(ctx, "refresh", m.observe(watch))
	return m.Snapshot()
}

// Watch calls Refresh every interval until ctx is done.
func (m *Manager) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

// Login authenticates with the backend, stores the returned token and
// switches to AUTHENTICATED. On failure the session is left as it was.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	if err := (loginInput{Email: email, Password: password}).Validate(); err != nil {
		return nil, invalid(err)
	}

	t := m.begin()
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, "login", t, resp)
}

// Register creates an account and signs it in. An empty user type
// registers a customer.
func (m *Manager) Register(ctx context.Context, payload models.RegisterPayload) (*models.UserProfile, error) {
	if payload.UserType == "" {
		payload.UserType = models.RoleUser
	}
	if err := (registerInput{payload}).Validate(); err != nil {
		return nil, invalid(err)
	}

	t := m.begin()
	resp, err := m.api.Register(ctx, payload)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, "register", t, resp)
}

// Logout forgets the session locally. It makes no network call and is
// idempotent; a storage failure is logged but does not keep the user in.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.issued++
	m.applied = m.issued
	m.version++
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear stored token on logout", "error", err)
	}
	m.setLocked(StateAnonymous, nil)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
}

// UpdateProfile sends patch and replaces the profile with the server's
// answer.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.UserProfile, error) {
	if err := (profileInput{patch}).Validate(); err != nil {
		return nil, invalid(err)
	}

	token, err := m.bearer(ctx)
	if err != nil {
		return nil, err
	}

	t := m.observe(follow)
	user, err := m.api.UpdateProfile(client.WithAccessToken(ctx, token), patch)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, errEmptyProfile
	}

	err = m.apply(ctx, "update_profile", t, func() error {
		if m.state != StateAuthenticated {
			return ErrNotAuthenticated
		}
		m.setLocked(StateAuthenticated, user.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// ChangePassword validates the new password locally and then asks the
// backend to change it. The session itself is not modified.
func (m *Manager) ChangePassword(ctx context.Context, current, next, confirm string) (string, error) {
	if err := (passwordInput{Current: current, Next: next, Confirm: confirm}).Validate(); err != nil {
		return "", invalid(err)
	}

	token, err := m.bearer(ctx)
	if err != nil {
		return "", err
	}

	return m.api.ChangePassword(client.WithAccessToken(ctx, token), current, next)
}

// verify drives the stored token through verification and profile fetch,
// settling in AUTHENTICATED or ANONYMOUS.
func (m *Manager) verify(ctx context.Context, op string, t ticket) {
	token, err := m.store.Read(ctx)
	if err != nil {
		m.log.Warn(ctx, "token store unavailable", "op", op, "error", err)
		m.settleAnonymous(ctx, op, t, false)
		return
	}
	if token == "" {
		m.settleAnonymous(ctx, op, t, false)
		return
	}

	if _, err := verifier.Check(token, m.now()); err != nil {
		m.log.Info(ctx, "stored token rejected", "op", op, "error", err)
		m.settleAnonymous(ctx, op, t, true)
		return
	}

	user, err := m.api.FetchCurrentUser(client.WithAccessToken(ctx, token))
	if err == nil && (user == nil || user.ID == "") {
		err = errEmptyProfile
	}
	if err != nil {
		m.log.Warn(ctx, "failed to fetch current user", "op", op, "error", err)
		m.settleAnonymous(ctx, op, t, true)
		return
	}

	err = m.apply(ctx, op, t, func() error {
		m.setLocked(StateAuthenticated, user.Clone())
		return nil
	})
	if err == nil {
		m.log.Debug(ctx, "session verified", "op", op, "user_id", user.ID, "role", user.UserType)
	}
}

func (m *Manager) settleAnonymous(ctx context.Context, op string, t ticket, clear bool) {
	_ = m.apply(ctx, op, t, func() error {
		if clear {
			if err := m.store.Clear(ctx); err != nil {
				m.log.Warn(ctx, "failed to clear stored token", "op", op, "error", err)
			}
		}
		m.setLocked(StateAnonymous, nil)
		return nil
	})
}

// establish persists the token from an auth response and switches to
// AUTHENTICATED. Token and user are applied together or not at all.
func (m *Manager) establish(ctx context.Context, op string, t ticket, resp *models.AuthResponse) (*models.UserProfile, error) {
	if _, err := verifier.Check(resp.Token, m.now()); err != nil {
		return nil, fmt.Errorf("%s: server issued an unusable token: %w", op, err)
	}

	user := resp.User.Clone()
	err := m.apply(ctx, op, t, func() error {
		if err := m.store.Save(ctx, resp.Token); err != nil {
			return err
		}
		m.setLocked(StateAuthenticated, user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.log.Info(ctx, "signed in", "op", op, "user_id", user.ID, "role", user.UserType)
	return user.Clone(), nil
}

// bearer returns the stored token for an authenticated session.
func (m *Manager) bearer(ctx context.Context) (string, error) {
	if !m.Snapshot().IsAuthenticated {
		return "", ErrNotAuthenticated
	}
	token, err := m.store.Read(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// ticketKind decides which later events make a ticket stale.
type ticketKind int

const (
	// claim takes a new sequence number and supersedes older claims.
	claim ticketKind = iota
	// follow takes no number; it is stale once a claim is issued or applied
	// after it.
	follow
	// watch takes no number; it is stale once anything else is issued or
	// applied after it.
	watch
)

// ticket is the position in the operation sequence a result is applied
// against.
type ticket struct {
	kind    ticketKind
	seq     uint64
	applied uint64
	version uint64
}

func (m *Manager) staleLocked(t ticket) bool {
	switch t.kind {
	case follow:
		return t.seq != m.issued || t.applied != m.applied
	case watch:
		return t.seq != m.issued || t.version != m.version
	default:
		return t.seq < m.applied
	}
}

func (m *Manager) begin() ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	return ticket{kind: claim, seq: m.issued}
}

func (m *Manager) observe(kind ticketKind) ticket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ticket{kind: kind, seq: m.issued, applied: m.applied, version: m.version}
}

// apply runs fn under the lock unless t has gone stale. fn returning an
// error leaves the state untouched.
func (m *Manager) apply(ctx context.Context, op string, t ticket, fn func() error) error {
	m.mu.Lock()
	if m.staleLocked(t) {
		m.mu.Unlock()
		m.metrics.RecordStaleResponse(op)
		m.log.Debug(ctx, "discarding stale result", "op", op, "seq", t.seq)
		return ErrSuperseded
	}

	prevState, prevUser := m.state, m.user
	if err := fn(); err != nil {
		m.state, m.user = prevState, prevUser
		m.mu.Unlock()
		return err
	}
	if t.kind == claim {
		m.applied = t.seq
	}
	m.version++
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return nil
}

func (m *Manager) setLocked(state State, user *models.UserProfile) {
	if state != StateAuthenticated {
		user = nil
	}
	changed := m.state != state
	m.state = state
	m.user = user
	if changed {
		m.metrics.RecordTransition(state.String())
	}
}

func (m *Manager) snapshotLocked() Session {
	return Session{
		User:            m.user.Clone(),
		IsAuthenticated: m.state == StateAuthenticated,
		Loading:         m.state == StateUninitialized || m.state == StateVerifying,
		State:           m.state,
	}
}

func (m *Manager) notify(s Session) {
	m.subMu.Lock()
	fns := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

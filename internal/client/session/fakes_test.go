package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookit/internal/client/client"
	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/common"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func makeToken(t *testing.T, userID string, role models.Role, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       userID,
		"userType": string(role),
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func profile(id string, role models.Role) *models.UserProfile {
	return &models.UserProfile{
		ID:       id,
		Name:     "Test " + id,
		Email:    id + "@example.com",
		UserType: role,
		Notifications: []models.Notification{
			{ID: "n1", Message: "welcome", Read: false},
		},
	}
}

// fakeAPI is a scripted client.Client. Gates, when set, block the call
// until closed; started channels are signalled when the call begins.
type fakeAPI struct {
	mu sync.Mutex

	calls       []string
	lastToken   string
	lastEmail   string
	lastPass    string
	lastPayload models.RegisterPayload
	lastPatch   models.ProfilePatch
	lastCurrent string
	lastNext    string

	authResp *models.AuthResponse
	authErr  error
	user     *models.UserProfile
	userErr  error
	message  string
	msgErr   error

	loginStarted chan struct{}
	loginGate    chan struct{}
	fetchStarted chan struct{}
	fetchGate    chan struct{}

	updateStarted chan struct{}
	updateGate    chan struct{}
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(ctx context.Context, call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	token, _ := client.AccessTokenFromContext(ctx)
	f.lastToken = token
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) calledWith(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastToken
}

func signal(ch chan struct{}) {
	if ch != nil {
		ch <- struct{}{}
	}
}

func wait(gate chan struct{}) {
	if gate != nil {
		<-gate
	}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.record(ctx, "login")
	f.mu.Lock()
	f.lastEmail, f.lastPass = email, password
	resp, err := f.authResp, f.authErr
	f.mu.Unlock()

	signal(f.loginStarted)
	wait(f.loginGate)
	return resp, err
}

func (f *fakeAPI) Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResponse, error) {
	f.record(ctx, "register")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPayload = payload
	return f.authResp, f.authErr
}

func (f *fakeAPI) FetchCurrentUser(ctx context.Context) (*models.UserProfile, error) {
	f.record(ctx, "me")
	f.mu.Lock()
	user, err := f.user, f.userErr
	f.mu.Unlock()

	signal(f.fetchStarted)
	wait(f.fetchGate)
	return user.Clone(), err
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.UserProfile, error) {
	f.record(ctx, "update_profile")
	f.mu.Lock()
	f.lastPatch = patch
	f.mu.Unlock()

	signal(f.updateStarted)
	wait(f.updateGate)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user.Clone(), f.userErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, current, next string) (string, error) {
	f.record(ctx, "change_password")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCurrent, f.lastNext = current, next
	return f.message, f.msgErr
}

func (f *fakeAPI) Close() error { return nil }

// brokenStore fails every operation the way a real backend outage would.
type brokenStore struct{}

func (brokenStore) Save(context.Context, string) error {
	return fmt.Errorf("%w: save token: disk full", common.ErrStorageUnavailable)
}

func (brokenStore) Read(context.Context) (string, error) {
	return "", fmt.Errorf("%w: read token: disk gone", common.ErrStorageUnavailable)
}

func (brokenStore) Clear(context.Context) error {
	return fmt.Errorf("%w: clear token: disk gone", common.ErrStorageUnavailable)
}

// recordingMetrics captures what the manager reports.
type recordingMetrics struct {
	mu          sync.Mutex
	transitions []string
	stale       []string
}

func (r *recordingMetrics) RecordRequest(string, int, time.Duration) {}

func (r *recordingMetrics) RecordTransition(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, state)
}

func (r *recordingMetrics) RecordStaleResponse(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = append(r.stale, op)
}

package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookit/internal/client/config"
	"github.com/dmitrijs2005/bookit/internal/client/models"
	"github.com/dmitrijs2005/bookit/internal/client/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	var c config.Config
	c.LoadDefaults()
	c.DatabasePath = filepath.Join(t.TempDir(), "bookit.db")
	c.VerifyInterval = 0
	return &c
}

func TestNewApp_SQLiteStorage(t *testing.T) {
	cfg := testConfig(t)

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.NotNil(t, app.session)
	assert.NotNil(t, app.router)
	assert.Len(t, app.closers, 2, "database and api client")
	assert.FileExists(t, cfg.DatabasePath)
}

func TestNewApp_MemoryStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.TokenStorage = config.StorageMemory
	cfg.LogFormat = "zap"
	cfg.RateLimit = 5

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
}

func TestNewApp_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.TokenStorage = "etcd"
	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.LogFormat = "xml"
	_, err = NewApp(context.Background(), cfg)
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.TokenStorage = config.StorageMemory
	cfg.ServerURL = "ftp://example.org"
	_, err = NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestRun_RestoresAnonymousSessionAndExits(t *testing.T) {
	capturePrints(t)
	cfg := testConfig(t)
	cfg.TokenStorage = config.StorageMemory

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	var out strings.Builder
	app.out = &out
	app.reader = rdr("open /admin/dashboard\nexit\n")

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Welcome to bookit")
	assert.Contains(t, out.String(), "Redirected to /login")
	assert.Equal(t, session.StateAnonymous, app.session.Snapshot().State)
	assert.Equal(t, "/admin/dashboard", app.router.DeepLink())
}

func TestGetStatus(t *testing.T) {
	api := &fakeAPI{}
	a, _ := newTestApp(t, api)
	assert.Equal(t, "(guest)", a.getStatus())

	a, _ = loggedInApp(t, api, models.RoleAdmin)
	assert.Equal(t, "(alice@example.org admin)", a.getStatus())
}

func TestWhoamiAndNotifications(t *testing.T) {
	api := &fakeAPI{}
	a, out := loggedInApp(t, api, models.RoleVendor)
	ctx := context.Background()

	require.NoError(t, a.Whoami(ctx))
	assert.Contains(t, out.String(), "Alice <alice@example.org>")
	assert.Contains(t, out.String(), "/vendor/dashboard")

	out.Reset()
	require.NoError(t, a.Notifications(ctx))
	assert.Contains(t, out.String(), "No notifications")

	api.user = &models.UserProfile{
		ID: "42", Name: "Alice", Email: "alice@example.org", UserType: models.RoleVendor,
		Notifications: []models.Notification{
			{ID: "1", Message: "New booking", CreatedAt: time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC)},
			{ID: "2", Message: "Payout sent", Read: true, CreatedAt: time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)},
		},
	}
	a.session.Refresh(ctx)

	out.Reset()
	require.NoError(t, a.Notifications(ctx))
	assert.Contains(t, out.String(), "* 2026-01-02 10:30  New booking")
	assert.Contains(t, out.String(), "  2026-01-03 09:00  Payout sent")
}

func TestWhoami_Anonymous(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{})
	require.NoError(t, a.Whoami(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")
}

func TestUpdateProfile(t *testing.T) {
	api := &fakeAPI{}
	a, out := loggedInApp(t, api, models.RoleUser)
	updated := *api.user
	updated.Name = "Alice B"
	api.user = &updated

	stubInputs(t, []string{"Alice B", "", "", ""}, nil)
	require.NoError(t, a.UpdateProfile(context.Background()))

	require.NotNil(t, api.patch.Name)
	assert.Equal(t, "Alice B", *api.patch.Name)
	assert.Nil(t, api.patch.Email)
	assert.Equal(t, "Alice B", a.session.Snapshot().User.Name)
	assert.Contains(t, out.String(), "Profile updated")
}

func TestUpdateProfile_NothingToDo(t *testing.T) {
	api := &fakeAPI{}
	a, out := loggedInApp(t, api, models.RoleUser)
	calls := api.calls

	stubInputs(t, []string{"", "", "", ""}, nil)
	require.NoError(t, a.UpdateProfile(context.Background()))
	assert.Equal(t, calls, api.calls)
	assert.Contains(t, out.String(), "Nothing to update")
}

func TestOpen(t *testing.T) {
	a, out := loggedInApp(t, &fakeAPI{}, models.RoleVendor)
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "/vendor/services"))
	assert.Contains(t, out.String(), "Opened /vendor/services")

	require.NoError(t, a.Open(ctx, "/admin"))
	assert.Contains(t, out.String(), "Redirected to /vendor/dashboard")
}

func TestSessionChange_SignedOutInBackground(t *testing.T) {
	api := &fakeAPI{}
	a, out := loggedInApp(t, api, models.RoleUser)
	ctx := context.Background()

	unsubscribe := a.session.Subscribe(a.onSessionChange(ctx))
	t.Cleanup(unsubscribe)

	a.session.Refresh(ctx)
	assert.NotContains(t, out.String(), "signed out")

	api.userErr = assert.AnError
	a.session.Refresh(ctx)
	assert.Contains(t, out.String(), "You have been signed out.")
}

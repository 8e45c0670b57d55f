package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/bookit/internal/server/config"
)

func testConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.BcryptCost = bcrypt.MinCost
	c.Addr = "127.0.0.1:0"
	c.LogLevel = "error"
	return &c
}

func TestNewApp_SeedsAdmin(t *testing.T) {
	cfg := testConfig()
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(app.handler)
	t.Cleanup(srv.Close)

	body := `{"email":"admin@bookit.local","password":"admin12345"}`
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_NoSeed(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmail = ""
	_, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "loud"
	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "256.0.0.1:bad"
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.Error(t, err)
}

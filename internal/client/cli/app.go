package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/bookit/internal/client/client"
	"github.com/dmitrijs2005/bookit/internal/client/config"
	"github.com/dmitrijs2005/bookit/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookit/internal/client/router"
	"github.com/dmitrijs2005/bookit/internal/client/session"
	"github.com/dmitrijs2005/bookit/internal/client/tokenstore"
	"github.com/dmitrijs2005/bookit/internal/logging"
	"github.com/dmitrijs2005/bookit/internal/metrics"
)

// App is the terminal client: one session manager, the router that reads
// it and the REPL that drives both.
type App struct {
	config  *config.Config
	session *session.Manager
	router  *router.Router
	api     client.Client
	log     logging.Logger

	registry *prometheus.Registry
	closers  []func() error

	// set while the user's own logout runs
	loggingOut atomic.Bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the client from cfg: logger, metrics, token storage, API
// client, session manager and router.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	app := &App{
		config:   cfg,
		log:      logger,
		registry: registry,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}

	store, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	opts := []client.Option{
		client.WithTimeout(cfg.RequestTimeout),
		client.WithMetrics(collector),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(cfg.RateLimit, 1))
	}
	api, err := client.NewHTTPClient(cfg.ServerURL, opts...)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.api = api
	app.closers = append(app.closers, api.Close)

	app.session = session.NewManager(store, api,
		session.WithLogger(logger.With("component", "session")),
		session.WithMetrics(collector),
	)
	app.router = router.New(app.session)

	return app, nil
}

// openStore opens the configured token storage backend.
func (a *App) openStore(ctx context.Context) (tokenstore.Store, error) {
	switch a.config.TokenStorage {
	case config.StorageMemory:
		return tokenstore.NewMemoryStore(), nil

	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: a.config.RedisAddr,
			DB:   a.config.RedisDB,
		})
		a.closers = append(a.closers, rdb.Close)
		return tokenstore.NewRedisStore(rdb, a.config.RedisPrefix), nil

	case config.StorageSQLite, "":
		db, err := client.InitDatabase(ctx, a.config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return tokenstore.NewSQLiteStore(metadata.NewSQLiteRepository(db)), nil

	default:
		return nil, fmt.Errorf("unknown token storage %q", a.config.TokenStorage)
	}
}

// Run restores the session, starts the background workers and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := a.session.Subscribe(a.onSessionChange(ctx))
	defer unsubscribe()

	if a.config.MetricsAddr != "" {
		go a.serveMetrics(ctx)
	}

	fmt.Fprintln(a.out, "Welcome to bookit (type 'help' for commands)")
	a.session.Init(ctx)

	if a.config.VerifyInterval > 0 {
		go a.session.Watch(ctx, a.config.VerifyInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases storage and client resources. It is safe to call twice.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}

func (a *App) getStatus() string {
	s := a.session.Snapshot()
	switch {
	case s.Loading:
		return "(verifying)"
	case s.IsAuthenticated:
		return fmt.Sprintf("(%s %s)", s.User.Email, s.User.UserType)
	default:
		return "(guest)"
	}
}

// onSessionChange tells the user when a background re-verification signs
// them out. An explicit logout is reported by Logout itself.
func (a *App) onSessionChange(ctx context.Context) func(session.Session) {
	var wasAuthenticated atomic.Bool
	return func(s session.Session) {
		a.log.Debug(ctx, "session changed", "state", s.State.String())
		if wasAuthenticated.Swap(s.IsAuthenticated) && !s.IsAuthenticated && !a.loggingOut.Load() {
			a.router.Reset()
			fmt.Fprintln(a.out, "You have been signed out.")
		}
	}
}

func (a *App) serveMetrics(ctx context.Context) {
	srv := &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           metrics.Handler(a.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info(ctx, "serving metrics", "addr", a.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error(ctx, "metrics server failed", "error", err)
	}
}

// Package httpapi exposes the development backend over HTTP/JSON with the
// same routes, payloads and {message} error bodies the bookit client
// expects.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/bookit/internal/logging"
	"github.com/dmitrijs2005/bookit/internal/server/users"
)

// UserService is what the handlers need from the user domain.
type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.AuthResult, error)
	Login(ctx context.Context, email, password string) (*users.AuthResult, error)
	Authenticate(token string) (string, error)
	Get(ctx context.Context, id string) (*users.Profile, error)
	UpdateProfile(ctx context.Context, id string, upd users.ProfileUpdate) (*users.Profile, error)
	ChangePassword(ctx context.Context, id, current, next string) error
}

type Handler struct {
	service UserService
	logger  logging.Logger
}

// NewRouter builds the API routes:
//
//	POST /api/auth/login
//	POST /api/auth/register
//	GET  /api/auth/me          (bearer)
//	PUT  /api/users/profile    (bearer)
//	PUT  /api/users/password   (bearer)
func NewRouter(service UserService, logger logging.Logger) http.Handler {
	h := &Handler{service: service, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
		r.With(h.requireToken).Get("/me", h.Me)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(h.requireToken)
		r.Put("/profile", h.UpdateProfile)
		r.Put("/password", h.ChangePassword)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

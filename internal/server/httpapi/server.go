// Package httpapi exposes the caet JSON API over HTTP: routing, middleware,
// cookie sessions and the per-route handlers.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/caet/internal/logging"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/dmitrijs2005/caet/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// UserService is the account logic the handlers depend on.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ExternalLogin(ctx context.Context, externalToken string) (string, error)
	Authenticate(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, in services.ProfileInput) error
	ForgotPassword(ctx context.Context, email string) error
}

type FileService interface {
	Upload(ctx context.Context, name string, r io.Reader) error
	List(ctx context.Context) ([]models.FileInfo, error)
}

// Pinger reports storage readiness (*sql.DB satisfies it).
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address   string
	users     UserService
	files     FileService
	ready     Pinger
	logger    logging.Logger
	csrfToken string
	handler   http.Handler
}

func NewHTTPServer(a string, l logging.Logger, us UserService, fs FileService, ready Pinger, csrfToken string) *HTTPServer {
	s := &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		files:     fs,
		ready:     ready,
		csrfToken: csrfToken,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

func (s *HTTPServer) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(metricsMiddleware)
	r.Use(s.recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, failure("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, failure("method not allowed"))
	})

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/google-login", s.handleGoogleLogin)
	r.Post("/logout", s.handleLogout)
	r.Post("/forgot-password", s.handleForgotPassword)
	r.Post("/upload", s.handleUpload)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/profile", s.handleGetProfile)
		r.Post("/profile", s.handleUpdateProfile)
		r.Get("/files", s.handleListFiles)
	})

	r.Get("/health/live", s.handleLive)
	r.Get("/health/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

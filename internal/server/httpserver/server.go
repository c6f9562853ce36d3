// Package httpserver exposes the user and resource services over a JSON
// HTTP API.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/logging"
	"github.com/OscarDom1/community-resource-platform/internal/server/auth"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
	"github.com/OscarDom1/community-resource-platform/internal/server/services"
)

// UserService is the account API consumed by the handlers.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.PublicUser, error)
	Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
	Me(ctx context.Context, s auth.Session) (*models.PublicUser, error)
	Update(ctx context.Context, s auth.Session, id string, in services.UpdateUserInput) (*models.PublicUser, error)
}

// ResourceService is the resource API consumed by the handlers.
type ResourceService interface {
	Create(ctx context.Context, s auth.Session, in services.CreateResourceInput) (*models.Resource, error)
	List(ctx context.Context, f models.ResourceFilter) ([]*models.Resource, error)
	Get(ctx context.Context, id string) (*models.Resource, error)
	Update(ctx context.Context, s auth.Session, id string, p models.ResourcePatch) (*models.Resource, error)
	Delete(ctx context.Context, s auth.Session, id string) error
}

// TokenValidator turns a bearer token into claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

type HTTPServer struct {
	address         string
	users           UserService
	resources       ResourceService
	tokens          TokenValidator
	logger          logging.Logger
	shutdownTimeout time.Duration

	mux     *http.ServeMux
	handler http.Handler
}

func NewHTTPServer(a string, l logging.Logger, us UserService, rs ResourceService, tv TokenValidator, shutdownTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		resources:       rs,
		tokens:          tv,
		shutdownTimeout: shutdownTimeout,
		mux:             http.NewServeMux(),
	}

	s.routes()

	s.handler = chain(s.mux, s.recoverer, s.accessLog, cors)

	return s
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}

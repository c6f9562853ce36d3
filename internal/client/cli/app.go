package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OscarDom1/community-resource-platform/internal/client/api"
	"github.com/OscarDom1/community-resource-platform/internal/client/config"
	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

// APIClient is the subset of api.Client the commands use.
type APIClient interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) (*models.PublicUser, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context, token string) (*models.PublicUser, error)
	UpdateUser(ctx context.Context, token, id string, upd api.UserUpdate) (*models.PublicUser, error)
	ListResources(ctx context.Context, opts api.ListOptions) ([]*models.Resource, error)
	GetResource(ctx context.Context, id string) (*models.Resource, error)
	CreateResource(ctx context.Context, token string, in api.NewResource) (*models.Resource, error)
	UpdateResource(ctx context.Context, token, id string, upd api.ResourceUpdate) (*models.Resource, error)
	DeleteResource(ctx context.Context, token, id string) error
}

type App struct {
	api    APIClient
	tokens TokenStore
	token  string
	user   *models.PublicUser
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	store, err := NewFileTokenStore(c.TokenDir)
	if err != nil {
		return nil, err
	}
	return &App{api: client, tokens: store, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run restores a saved session if it is still valid and starts the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the resource sharing CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintln(a.out, "Server is not reachable:", err)
	}
	a.restoreSession(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	token, err := a.tokens.Load()
	if err != nil || token == "" {
		return
	}
	u, err := a.api.Me(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrTokenInvalid) {
			_ = a.tokens.Clear()
		}
		return
	}
	a.token, a.user = token, u
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return "(" + a.user.Email + ")"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// report prints err in user terms. An expired or rejected token ends the
// local session.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, common.ErrTokenInvalid):
		if a.isLoggedIn() {
			a.dropSession()
			a.println("Session expired, please log in again.")
		} else {
			a.println("Invalid email or password.")
		}
	case errors.Is(err, common.ErrOwnershipDenied):
		a.println("Not allowed: you can only change your own resources.")
	case errors.Is(err, common.ErrNotFound):
		a.println("Not found.")
	case errors.Is(err, common.ErrAlreadyExists):
		a.println("Already exists.")
	case errors.Is(err, common.ErrValidation):
		a.println("Invalid input.")
	default:
		a.println("Error:", err)
	}
	return err
}

func (a *App) dropSession() {
	a.token, a.user = "", nil
	_ = a.tokens.Clear()
}

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		a.println("Please log in first.")
		return false
	}
	return true
}

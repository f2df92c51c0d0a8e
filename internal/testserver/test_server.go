// Package testserver runs the full HTTP stack over an in-memory database.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/cadence/internal/app"
	"github.com/rpggio/cadence/internal/domain/account"
	"github.com/rpggio/cadence/internal/mcp"
	"github.com/rpggio/cadence/internal/sqlite"
	"github.com/rpggio/cadence/internal/transport"
)

// Default credentials of the user every authenticated server starts with.
const (
	UserName     = "Test User"
	UserEmail    = "test@example.com"
	UserPassword = "correct horse battery"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	DB     *sqlite.DB
	Token  string
	UserID string
}

// URL returns the base URL of the server.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// New starts an authenticated server and registers the default user.
func New(t *testing.T) *TestServer {
	t.Helper()
	ts := start(t, true)

	sess, err := ts.App.Services.Accounts.Register(context.Background(), account.RegisterRequest{
		Name:     UserName,
		Email:    UserEmail,
		Password: UserPassword,
	})
	require.NoError(t, err)
	ts.Token = sess.Token
	ts.UserID = sess.User.ID
	return ts
}

// NewLocal starts a server with auth disabled; every request acts as the local user.
func NewLocal(t *testing.T) *TestServer {
	t.Helper()
	ts := start(t, false)
	ts.UserID = transport.DefaultLocalUserID
	return ts
}

func start(t *testing.T, authEnabled bool) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	a := app.New(db, app.Options{})

	mcpServer := mcp.NewServer(mcp.Config{
		Services:      a.MCPServices(),
		Resolver:      a.Services.Accounts,
		AuthEnabled:   authEnabled,
		TransportMode: "http",
		LocalUserID:   transport.DefaultLocalUserID,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Services:    a.Services,
		AuthEnabled: authEnabled,
		MCP:         mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, App: a, DB: db}
}

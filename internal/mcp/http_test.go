package mcp_test

import (
	"context"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/cadence/internal/domain/content"
	"github.com/rpggio/cadence/internal/testserver"
)

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	if b.token != "" {
		r.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.base.RoundTrip(r)
}

func connectHTTP(t *testing.T, ts *testserver.TestServer, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.URL() + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestStreamableHTTP_CreateContentAsTokenUser(t *testing.T) {
	ts := testserver.New(t)
	session := connectHTTP(t, ts, ts.Token)

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "create_content",
		Arguments: map[string]any{"title": "From the assistant", "contentType": "story"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var item content.Item
	decodeText(t, result, &item)
	require.Equal(t, ts.UserID, item.UserID)
	require.Equal(t, content.TypeStory, item.ContentType)

	page, err := ts.App.Services.Content.List(context.Background(), ts.UserID, content.ListRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalItems)
}

func TestStreamableHTTP_RejectsInvalidToken(t *testing.T) {
	ts := testserver.New(t)
	session := connectHTTP(t, ts, "not-a-token")

	_, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "list_content",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}

func TestStreamableHTTP_LocalModeNeedsNoToken(t *testing.T) {
	ts := testserver.NewLocal(t)
	session := connectHTTP(t, ts, "")

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "create_content",
		Arguments: map[string]any{"title": "Offline idea"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var item content.Item
	decodeText(t, result, &item)
	require.Equal(t, ts.UserID, item.UserID)
}

// Package testserver wires an in-memory store behind an MCP server for tests.
package testserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/app"
	"github.com/rpggio/personalos/internal/mcp"
	"github.com/rpggio/personalos/internal/sqlite"
)

// TestServer is an MCP server over an in-memory store with a connected client.
type TestServer struct {
	App     *app.App
	Server  *sdkmcp.Server
	Session *sdkmcp.ClientSession
}

// New starts a server and connects a client to it over in-memory transports.
func New(t *testing.T) *TestServer {
	t.Helper()
	ctx := context.Background()

	a, server := newServer(t)

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
		serverSession.Wait()
	})

	return &TestServer{App: a, Server: server, Session: session}
}

// HTTPServer serves the MCP server over streamable HTTP.
type HTTPServer struct {
	App    *app.App
	Server *httptest.Server
}

// NewHTTP starts the streamable HTTP handler on a local listener.
func NewHTTP(t *testing.T) *HTTPServer {
	t.Helper()
	a, server := newServer(t)
	hs := httptest.NewServer(mcp.NewHTTPHandler(server, nil))
	t.Cleanup(hs.Close)
	return &HTTPServer{App: a, Server: hs}
}

func newServer(t *testing.T) (*app.App, *sdkmcp.Server) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := app.New(db, nil)
	server := mcp.NewServer(mcp.Config{Services: a.MCPServices(), Version: "test"})
	return a, server
}

// Call invokes a tool and returns the raw result and whether it was a tool error.
func (ts *TestServer) Call(t *testing.T, name string, args map[string]any) (json.RawMessage, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if args == nil {
		args = map[string]any{}
	}
	result, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content, "tool %s returned no content", name)

	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(text.Text), result.IsError
		}
	}
	t.Fatalf("tool %s returned no text content", name)
	return nil, false
}

// CallTool invokes a tool that must succeed and decodes its result into out.
func (ts *TestServer) CallTool(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	raw, isErr := ts.Call(t, name, args)
	require.False(t, isErr, "tool %s returned error: %s", name, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

// CallToolError invokes a tool that must fail and returns its error payload.
func (ts *TestServer) CallToolError(t *testing.T, name string, args map[string]any) mcp.APIError {
	t.Helper()
	raw, isErr := ts.Call(t, name, args)
	require.True(t, isErr, "tool %s unexpectedly succeeded: %s", name, raw)
	var apiErr mcp.APIError
	require.NoError(t, json.Unmarshal(raw, &apiErr))
	return apiErr
}

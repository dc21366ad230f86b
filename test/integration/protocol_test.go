package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/daycontext"
	"github.com/rpggio/personalos/internal/testserver"
)

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatal("no text content")
	return ""
}

// TestStreamableHTTPProtocol exercises the HTTP transport with the SDK client.
func TestStreamableHTTPProtocol(t *testing.T) {
	hs := testserver.NewHTTP(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := http.Get(hs.Server.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: hs.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer session.Close()

	require.Equal(t, "personalos", session.InitializeResult().ServerInfo.Name)

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "add_task",
		Arguments: map[string]any{"title": "Over HTTP", "scheduledDate": "2024-03-10"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, textOf(t, result))

	result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_context",
		Arguments: map[string]any{"date": "2024-03-10"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, textOf(t, result))

	var agg daycontext.DayAggregate
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &agg))
	require.Len(t, agg.Tasks, 1)
	require.Equal(t, "Over HTTP", agg.Tasks[0].Title)
}

// TestStdioProtocol runs the built binary over stdio with the SDK client.
func TestStdioProtocol(t *testing.T) {
	binaryPath := "./bin/personalos"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/personalos"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Build it with 'go build -o bin/personalos ./cmd/personalos' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "serve")
	cmd.Env = append(os.Environ(),
		"PERSONALOS_TRANSPORT=stdio",
		"PERSONALOS_DB_PATH=:memory:",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Greater(t, len(tools.Tools), 20)

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "ensure_day",
		Arguments: map[string]any{"date": "2024-03-10"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, textOf(t, result))
	require.Contains(t, textOf(t, result), `"date":"2024-03-10"`)
}

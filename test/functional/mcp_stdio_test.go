package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/personalos/internal/domain/day"
)

type stdioSession struct {
	session *sdkmcp.ClientSession
}

func newStdioSession(t *testing.T, extraEnv ...string) *stdioSession {
	t.Helper()

	binaryPath := "./bin/personalos"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/personalos"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Build it with 'go build -o bin/personalos ./cmd/personalos' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath, "serve", "--transport", "stdio")
	cmd.Env = append(os.Environ(), "PERSONALOS_DB_PATH=:memory:")
	cmd.Env = append(cmd.Env, extraEnv...)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return &stdioSession{session: session}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)

	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(text.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestStdioFunctional_DayRoundTrip(t *testing.T) {
	s := newStdioSession(t)

	_ = s.callTool(t, "set_intention", map[string]any{"date": "2024-03-10", "text": "Rest"})

	var d day.Day
	require.NoError(t, json.Unmarshal(s.callTool(t, "ensure_day", map[string]any{"date": "2024-03-10"}), &d))
	assert.Equal(t, "Rest", d.Intention)
}

func TestStdioFunctional_DocumentationResources(t *testing.T) {
	s := newStdioSession(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := s.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "personalos://docs/overview"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Contents)
	assert.Contains(t, res.Contents[0].Text, "get_context")
}

func TestStdioFunctional_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "personalos.log")
	s := newStdioSession(t,
		"PERSONALOS_LOG_PATH="+logPath,
		"PERSONALOS_LOG_LEVEL=debug",
	)

	_ = s.callTool(t, "list_habits", nil)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		text := string(data)
		return strings.Contains(text, `msg="mcp traffic"`) &&
			strings.Contains(text, "stage=request") &&
			strings.Contains(text, "stage=response")
	}, 5*time.Second, 100*time.Millisecond)
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxLoggedPayload bounds how much of a request or result is written to the debug log.
const maxLoggedPayload = 2048

// trafficLoggingMiddleware writes a debug line for each message and its
// result. Tool calls are tagged with the tool name and whether the tool failed.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			base := []any{"direction", direction, "method", method}
			if id := sessionIDFrom(ctx); id != "" {
				base = append(base, "session_id", id)
			} else if id := requestSessionID(req); id != "" {
				base = append(base, "session_id", id)
			}
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				base = append(base, "tool", call.Params.Name)
			}
			base = slices.Clip(base)

			logger.Debug("mcp traffic", append(base, "stage", "request", "params", payloadOf(req))...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs := append(base, "stage", "response", "elapsed", time.Since(start), "result", formatPayload(result))
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil && res.IsError {
				attrs = append(attrs, "tool_error", true)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp traffic", attrs...)
			return result, err
		}
	}
}

func payloadOf(req sdkmcp.Request) (out string) {
	if req == nil {
		return formatPayload(nil)
	}
	defer func() {
		if recover() != nil {
			out = "<unavailable>"
		}
	}()
	return formatPayload(req.GetParams())
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	if len(data) > maxLoggedPayload {
		return string(data[:maxLoggedPayload]) + "..."
	}
	return string(data)
}

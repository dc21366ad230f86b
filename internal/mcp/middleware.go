package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const sessionIDKey contextKey = iota

func sessionIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// sessionMiddleware puts the MCP session identity in the context so the
// traffic log of one client can be followed. Streamable HTTP requests carry it
// in the Mcp-Session-Id header; stdio requests fall back to the SDK session.
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if id := requestSessionID(req); id != "" {
				ctx = context.WithValue(ctx, sessionIDKey, id)
			}
			return next(ctx, method, req)
		}
	}
}

func requestSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	// Requests built by the SDK for some notifications have nil sessions.
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()

	if extra := req.GetExtra(); extra != nil && extra.Header != nil {
		if h := extra.Header.Get("Mcp-Session-Id"); h != "" {
			return h
		}
	}
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

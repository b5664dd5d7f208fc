// Package mcpserver exposes the SDK's operations as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ryu-ryuk/omnidim-go/pkg/logger"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
)

// Name is the server name reported during MCP initialization.
const Name = "omnidim"

// Server is an MCP server backed by one SDK client. Tool calls may run
// concurrently; the client is safe for that.
type Server struct {
	mcp *server.MCPServer
	log *slog.Logger
}

// New registers every tool and resource against c.
func New(c *sdk.Client, log *slog.Logger) *Server {
	log = log.With(logger.Scope("mcp"))

	s := server.NewMCPServer(Name, sdk.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(logCalls(log)),
	)

	tools := Tools(c)
	serverTools := make([]server.ServerTool, 0, len(tools))
	for _, t := range tools {
		serverTools = append(serverTools, server.ServerTool{Tool: t.Definition, Handler: t.Handler})
	}
	s.AddTools(serverTools...)
	s.AddResourceTemplates(Resources(c)...)

	log.Debug("mcp server ready", slog.Int("tools", len(tools)))
	return &Server{mcp: s, log: log}
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over in/out until in reaches EOF or ctx is cancelled.
// Nothing but protocol frames is written to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError))

	s.log.Info("serving mcp over stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func logCalls(log *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)

			attrs := []any{
				slog.String("tool", req.Params.Name),
				slog.Duration("duration", time.Since(start)),
			}
			switch {
			case err != nil:
				log.Error("tool call failed", append(attrs, logger.Error(err))...)
			case result != nil && result.IsError:
				log.Warn("tool call returned error", attrs...)
			default:
				log.Debug("tool call", attrs...)
			}
			return result, err
		}
	}
}

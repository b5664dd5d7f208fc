package mcpserver

import (
	"context"
	"io"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ryu-ryuk/omnidim-go/pkg/logger"
)

// Stdio names the streams the server speaks MCP over.
type Stdio struct {
	In  io.Reader
	Out io.Writer
}

// Module runs the MCP server for the lifetime of the fx app. Supply a Stdio
// alongside it. When the host closes the input stream the app shuts down.
var Module = fx.Module("mcpserver",
	fx.Provide(New),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle serves on OnStart and stops the session on OnStop.
func RegisterServerLifecycle(lc fx.Lifecycle, sd fx.Shutdowner, s *Server, stdio Stdio, log *slog.Logger) {
	// Not the OnStart context: fx cancels that once start-up completes.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				code := 0
				if err := s.Serve(ctx, stdio.In, stdio.Out); err != nil {
					log.Error("mcp session ended", logger.Scope("mcp"), logger.Error(err))
					code = 1
				}
				if ctx.Err() == nil {
					_ = sd.Shutdown(fx.ExitCode(code))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

package cmd

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/ryu-ryuk/omnidim-go/internal/config"
	"github.com/ryu-ryuk/omnidim-go/internal/mcpserver"
	"github.com/ryu-ryuk/omnidim-go/pkg/logger"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
)

// ServeMCP runs the MCP server over in/out until the host closes in or ctx
// is cancelled. Configuration problems are reported before anything is
// written to out.
func ServeMCP(ctx context.Context, o config.Overrides, in io.Reader, out io.Writer) error {
	app := fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
		fx.StopTimeout(10*time.Second),

		logger.Module,
		fx.Supply(o, mcpserver.Stdio{In: in, Out: out}),
		config.Module,
		mcpserver.Module,
	)
	if err := app.Err(); err != nil {
		return rootCause(err)
	}

	if err := app.Start(ctx); err != nil {
		return rootCause(err)
	}

	var sig fx.ShutdownSignal
	select {
	case sig = <-app.Wait():
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("mcp server exited with code %d", sig.ExitCode)
	}
	return nil
}

// rootCause strips the dependency-graph context fx adds around constructor
// errors, so users see "API key is required" rather than a provider trace.
func rootCause(err error) error {
	var cfgErr *sdkerrors.ConfigurationError
	if stderrors.As(err, &cfgErr) {
		return cfgErr
	}
	return err
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Serve every omnidim operation as a Model Context Protocol tool over stdio.

Point your MCP host at this command; "omnidim mcp-config" prints a ready-made
host entry. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ServeMCP(commandContext(cmd), overrides(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// NewMCPCommand returns a root command for a binary that only serves MCP.
func NewMCPCommand(use string) *cobra.Command {
	var o config.Overrides
	var debugLogs bool

	cmd := &cobra.Command{
		Use:           use,
		Short:         "OmniDimension MCP server (stdio)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugLogs {
				o.LogLevel = "debug"
			}
			return ServeMCP(commandContext(cmd), o, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&o.APIKey, "api-key", "", "OmniDimension API key (default $OMNIDIM_API_KEY)")
	cmd.Flags().StringVar(&o.BaseURL, "base-url", "", "API base URL")
	cmd.Flags().DurationVar(&o.Timeout, "timeout", 0, "per-request timeout")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "config file (default is $HOME/.omnidim/config.yaml)")
	cmd.Flags().BoolVar(&debugLogs, "debug", false, "log every tool call to stderr")
	return cmd
}

// hostEntry is one server in an MCP host's "mcpServers" map.
type hostEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

func newMCPConfigCmd() *cobra.Command {
	var (
		command string
		name    string
	)

	cmd := &cobra.Command{
		Use:   "mcp-config",
		Short: "Print an MCP host configuration entry for this server",
		Long: `Print the JSON to add to an MCP host's configuration (for example
claude_desktop_config.json) so it launches the omnidim MCP server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if command == "" {
				exe, err := os.Executable()
				if err != nil {
					exe = "omnidim"
				}
				command = exe
			}

			key := apiKey
			if key == "" {
				key = "<your OmniDimension API key>"
			}
			cfg := map[string]any{
				"mcpServers": map[string]hostEntry{
					name: {
						Command: command,
						Args:    []string{"mcp"},
						Env:     map[string]string{"OMNIDIM_API_KEY": key},
					},
				},
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}

	cmd.Flags().StringVar(&command, "command", "", "path of the omnidim binary (default is this executable)")
	cmd.Flags().StringVar(&name, "name", "omnidim", "server name in the host configuration")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newMCPConfigCmd())
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/calls"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

var callLogColumns = listing{
	items: "call_log_data",
	cols: []ui.Column{
		{Header: "ID", Path: "id"},
		{Header: "Agent", Path: "bot_id"},
		{Header: "To", Path: "to_number"},
		{Header: "Status", Path: "call_status"},
		{Header: "Duration", Path: "call_duration"},
	},
}

func newCallsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calls",
		Aliases: []string{"call"},
		Short:   "Dispatch calls and read call logs",
	}
	cmd.AddCommand(newCallsDispatchCmd(), newCallsLogsCmd(), newCallsLogCmd())
	return cmd
}

func newCallsDispatchCmd() *cobra.Command {
	var (
		agentID     int64
		toNumber    string
		callContext string
	)

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Place an outbound call",
		Long: `Place an outbound call from an agent.

Example:
  omnidim calls dispatch --agent-id 101 --to +15551234567 \
    --context '{"caller_name": "John Doe", "purpose": "appointment reminder"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctxObj, err := readJSONObject("call_context", callContext)
			if err != nil {
				return err
			}
			req := calls.DispatchRequest{AgentID: agentID, ToNumber: toNumber, CallContext: ctxObj}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Calls.Dispatch(ctx, req)
			})
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent-id", 0, "agent placing the call")
	cmd.Flags().StringVar(&toNumber, "to", "", "number to call, in E.164 format")
	cmd.Flags().StringVar(&callContext, "context", "", "call context as a JSON object, or @file")
	return cmd
}

func newCallsLogsCmd() *cobra.Command {
	var opts calls.ListLogsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List call logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, callLogColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Calls.ListLogs(ctx, opts)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", calls.DefaultPageSize, "logs per page")
	cmd.Flags().Int64Var(&opts.AgentID, "agent-id", 0, "only calls made by this agent")
	cmd.Flags().StringVar(&opts.CallStatus, "status", "", "only calls in this status")
	return cmd
}

func newCallsLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [call-log-id]",
		Short: "Show one call log with transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("call_log_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Calls.GetLog(ctx, id)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(newCallsCmd())
}

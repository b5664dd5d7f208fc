package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/simulations"
)

var simulationColumns = listing{
	items: "simulations",
	cols: []ui.Column{
		{Header: "ID", Path: "id"},
		{Header: "Name", Path: "name"},
		{Header: "Agent", Path: "agent_id"},
		{Header: "Status", Path: "status"},
	},
}

func newSimulationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "simulations",
		Aliases: []string{"simulation", "sim"},
		Short:   "Run scripted test calls against agents",
	}
	cmd.AddCommand(
		newSimulationsListCmd(),
		newSimulationsCreateCmd(),
		newSimulationsUpdateCmd(),
		simulationByID("get", "Show a simulation with its results", (*simulations.Client).Get),
		simulationByID("delete", "Delete a simulation", (*simulations.Client).Delete),
		simulationByID("start", "Start a simulation", (*simulations.Client).Start),
		simulationByID("stop", "Stop a running simulation", (*simulations.Client).Stop),
		simulationByID("enhance-prompt", "Suggest prompt improvements from a finished simulation", (*simulations.Client).EnhancePrompt),
	)
	return cmd
}

func newSimulationsListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List simulations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, simulationColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Simulations.List(ctx, page, pageSize)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", simulations.DefaultPageSize, "simulations per page")
	return cmd
}

func newSimulationsCreateCmd() *cobra.Command {
	var (
		req       simulations.CreateRequest
		scenarios string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a simulation",
		Long: `Create a simulation.

Scenarios are given as {"scenarios": [...]}, inline or from a file:
  omnidim simulations create --name "Booking regression" --agent-id 101 \
    --scenarios @scenarios.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var wrapped struct {
				Scenarios []simulations.Scenario `json:"scenarios"`
			}
			if err := decodeJSONObject("scenarios", scenarios, &wrapped); err != nil {
				return err
			}
			req.Scenarios = wrapped.Scenarios
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Simulations.Create(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "simulation name")
	cmd.Flags().Int64Var(&req.AgentID, "agent-id", 0, "agent under test")
	cmd.Flags().IntVar(&req.NumberOfCallToMake, "calls", simulations.DefaultNumberOfCallsToMake, "calls per scenario")
	cmd.Flags().IntVar(&req.ConcurrentCallCount, "concurrency", simulations.DefaultConcurrentCallCount, "calls run at once")
	cmd.Flags().IntVar(&req.MaxCallDurationInMinutes, "max-duration", simulations.DefaultMaxCallDurationInMinutes, "maximum call length in minutes")
	cmd.Flags().StringVar(&scenarios, "scenarios", "", `scenarios as {"scenarios": [...]}, or @file`)
	return cmd
}

func newSimulationsUpdateCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "update [simulation-id]",
		Short: "Update a simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("simulation_id", args[0])
			if err != nil {
				return err
			}
			obj, err := readJSONObject("data", data)
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Simulations.Update(ctx, id, obj)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "fields to update as a JSON object, or @file")
	return cmd
}

func simulationByID(verb, short string, op func(*simulations.Client, context.Context, int64) (jsonvalue.Value, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " [simulation-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("simulation_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return op(c.Simulations, ctx, id)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(newSimulationsCmd())
}

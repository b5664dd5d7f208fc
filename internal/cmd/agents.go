package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/agents"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

var agentColumns = listing{
	items: "bots",
	cols: []ui.Column{
		{Header: "ID", Path: "id"},
		{Header: "Name", Path: "name"},
		{Header: "Welcome Message", Path: "welcome_message"},
	},
}

func newAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agents",
		Aliases: []string{"agent", "assistants"},
		Short:   "Manage voice agents",
	}
	cmd.AddCommand(
		newAgentsListCmd(),
		newAgentsGetCmd(),
		newAgentsCreateCmd(),
		newAgentsUpdateCmd(),
		newAgentsDeleteCmd(),
	)
	return cmd
}

func newAgentsListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, agentColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Agents.List(ctx, page, pageSize)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", agents.DefaultPageSize, "agents per page")
	return cmd
}

func newAgentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [agent-id]",
		Short: "Show one agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("agent_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Agents.Get(ctx, id)
			})
		},
	}
}

func newAgentsCreateCmd() *cobra.Command {
	var (
		name           string
		sections       []string
		welcomeMessage string
		extra          string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an agent",
		Long: `Create a voice agent.

Each --section is "Title=Body" and becomes one entry of the agent's prompt.

Examples:
  omnidim agents create --name "Front Desk" \
    --section "Role=You answer calls for Acme Dental" \
    --section "Booking=Offer the next free slot" \
    --welcome-message "Thanks for calling Acme Dental!"
  omnidim agents create --name "Survey" --section "Role=..." --extra @settings.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := agents.CreateRequest{Name: name, WelcomeMessage: welcomeMessage}
			for _, s := range sections {
				title, body, ok := strings.Cut(s, "=")
				if !ok {
					return &sdkerrors.ArgumentError{Param: "section", Reason: `must be "Title=Body"`}
				}
				req.ContextBreakdown = append(req.ContextBreakdown, agents.ContextSection{
					Title: strings.TrimSpace(title),
					Body:  strings.TrimSpace(body),
				})
			}
			var err error
			if req.Extra, err = readJSONObject("extra", extra); err != nil {
				return err
			}

			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Agents.Create(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "agent name")
	cmd.Flags().StringArrayVar(&sections, "section", nil, `prompt section as "Title=Body" (repeatable)`)
	cmd.Flags().StringVar(&welcomeMessage, "welcome-message", "", "first thing the agent says")
	cmd.Flags().StringVar(&extra, "extra", "", "additional settings as a JSON object, or @file")
	return cmd
}

func newAgentsUpdateCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "update [agent-id]",
		Short: "Update an agent",
		Long: `Update an agent with a partial settings object.

Example:
  omnidim agents update 101 --data '{"welcome_message": "Hi there!"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("agent_id", args[0])
			if err != nil {
				return err
			}
			obj, err := readJSONObject("data", data)
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Agents.Update(ctx, id, obj)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "fields to update as a JSON object, or @file")
	return cmd
}

func newAgentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [agent-id]",
		Short: "Delete an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("agent_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Agents.Delete(ctx, id)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(newAgentsCmd())
}

package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/integrations"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

var integrationColumns = listing{
	items: "integrations",
	cols: []ui.Column{
		{Header: "ID", Path: "id"},
		{Header: "Name", Path: "name"},
		{Header: "Type", Path: "integration_type"},
	},
}

func newIntegrationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "integrations",
		Aliases: []string{"integration"},
		Short:   "Manage integrations and attach them to agents",
	}
	cmd.AddCommand(
		newIntegrationsListCmd(),
		newIntegrationsCreateCustomAPICmd(),
		newIntegrationsCreateCalCmd(),
		newIntegrationsCreateCmd(),
		newIntegrationsAgentCmd(),
		newIntegrationsAddCmd(),
		newIntegrationsRemoveCmd(),
	)
	return cmd
}

func newIntegrationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the account's integrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, integrationColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.List(ctx)
			})
		},
	}
}

func newIntegrationsCreateCustomAPICmd() *cobra.Command {
	var (
		req     integrations.CustomAPIRequest
		headers []string
		params  string
	)

	cmd := &cobra.Command{
		Use:   "create-custom-api",
		Short: "Create an integration that calls an HTTP endpoint",
		Long: `Create an integration the agent calls during a conversation.

Example:
  omnidim integrations create-custom-api --name "CRM lookup" \
    --url https://crm.example.com/customers --method GET \
    --header "Authorization=Bearer xyz" \
    --query-params '{"params": [{"key": "phone", "type": "string", "isLLMGenerated": true}]}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := req
			req.Headers = nil
			for _, h := range headers {
				key, value, ok := strings.Cut(h, "=")
				if !ok {
					return &sdkerrors.ArgumentError{Param: "header", Reason: `must be "Key=Value"`}
				}
				req.Headers = append(req.Headers, integrations.Header{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)})
			}
			var wrapped struct {
				Params []integrations.Param `json:"params"`
			}
			if err := decodeJSONObject("query_params", params, &wrapped); err != nil {
				return err
			}
			req.QueryParams = wrapped.Params

			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.CreateCustomAPI(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "integration name")
	cmd.Flags().StringVar(&req.URL, "url", "", "endpoint URL")
	cmd.Flags().StringVar(&req.Method, "method", "GET", "HTTP method")
	cmd.Flags().StringVar(&req.Description, "description", "", "what the integration does")
	cmd.Flags().StringArrayVar(&headers, "header", nil, `static header as "Key=Value" (repeatable)`)
	cmd.Flags().StringVar(&req.BodyType, "body-type", "", "none, json or form")
	cmd.Flags().StringVar(&req.BodyContent, "body-content", "", "request body template")
	cmd.Flags().StringVar(&params, "query-params", "", `query parameters as {"params": [...]}, or @file`)
	cmd.Flags().BoolVar(&req.StopListening, "stop-listening", false, "pause listening while the request runs")
	cmd.Flags().IntVar(&req.RequestTimeout, "request-timeout", integrations.DefaultRequestTimeout, "request timeout in seconds")
	return cmd
}

func newIntegrationsCreateCalCmd() *cobra.Command {
	var req integrations.CalRequest

	cmd := &cobra.Command{
		Use:   "create-cal",
		Short: "Create a Cal.com calendar integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.CreateCal(ctx, req)
			})
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "integration name")
	cmd.Flags().StringVar(&req.CalAPIKey, "cal-api-key", "", "Cal.com API key")
	cmd.Flags().StringVar(&req.CalID, "cal-id", "", "Cal.com user or event ID")
	cmd.Flags().StringVar(&req.CalTimezone, "cal-timezone", "", "IANA timezone, e.g. America/New_York")
	cmd.Flags().StringVar(&req.Description, "description", "", "what the integration does")
	return cmd
}

func newIntegrationsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [json-or-@file]",
		Short: "Create an integration from a JSON document",
		Long: `Create an integration from a complete JSON document. Its integration_type
("custom_api" or "cal") selects the kind.

Example:
  omnidim integrations create @crm.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readJSONObject("integration", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.CreateFromJSON(ctx, doc)
			})
		},
	}
}

func newIntegrationsAgentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent [agent-id]",
		Short: "List the integrations attached to an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("agent_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, integrationColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.ListForAgent(ctx, id)
			})
		},
	}
}

func agentIntegrationArgs(args []string) (int64, int64, error) {
	agentID, err := parseID("agent_id", args[0])
	if err != nil {
		return 0, 0, err
	}
	integrationID, err := parseID("integration_id", args[1])
	if err != nil {
		return 0, 0, err
	}
	return agentID, integrationID, nil
}

func newIntegrationsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [agent-id] [integration-id]",
		Short: "Attach an integration to an agent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID, integrationID, err := agentIntegrationArgs(args)
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.AddToAgent(ctx, agentID, integrationID)
			})
		},
	}
}

func newIntegrationsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [agent-id] [integration-id]",
		Short: "Detach an integration from an agent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID, integrationID, err := agentIntegrationArgs(args)
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.Integrations.RemoveFromAgent(ctx, agentID, integrationID)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(newIntegrationsCmd())
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/phonenumbers"
)

var phoneNumberColumns = listing{
	cols: []ui.Column{
		{Header: "ID", Path: "id"},
		{Header: "Number", Path: "phone_number"},
		{Header: "Agent", Path: "agent_id"},
	},
}

func newPhoneNumbersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "phone",
		Aliases: []string{"phone-numbers"},
		Short:   "Manage imported phone numbers",
	}
	cmd.AddCommand(newPhoneListCmd(), newPhoneAttachCmd(), newPhoneDetachCmd())
	return cmd
}

func newPhoneListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List phone numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, phoneNumberColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.PhoneNumbers.List(ctx, page, pageSize)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", phonenumbers.DefaultPageSize, "numbers per page")
	return cmd
}

func newPhoneAttachCmd() *cobra.Command {
	var agentID int64

	cmd := &cobra.Command{
		Use:   "attach [phone-number-id]",
		Short: "Route a phone number to an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("phone_number_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.PhoneNumbers.Attach(ctx, id, agentID)
			})
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent-id", 0, "agent that answers the number")
	return cmd
}

func newPhoneDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detach [phone-number-id]",
		Short: "Detach a phone number from its agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("phone_number_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.PhoneNumbers.Detach(ctx, id)
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(newPhoneNumbersCmd())
}

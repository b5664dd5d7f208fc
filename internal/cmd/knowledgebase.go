package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/knowledgebase"
)

var knowledgeBaseColumns = listing{
	items: "files",
	cols: []ui.Column{
		{Header: "ID", Path: "id"},
		{Header: "Name", Path: "name"},
		{Header: "Size", Path: "size"},
	},
}

func newKnowledgeBaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kb",
		Aliases: []string{"knowledge-base"},
		Short:   "Manage knowledge base files",
	}
	cmd.AddCommand(
		newKBListCmd(),
		newKBUploadCmd(),
		newKBCanUploadCmd(),
		newKBDeleteCmd(),
		newKBAssignCmd("attach", "Make files available to an agent"),
		newKBAssignCmd("detach", "Remove files from an agent"),
	)
	return cmd
}

func newKBListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List knowledge base files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, knowledgeBaseColumns, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.KnowledgeBase.List(ctx)
			})
		},
	}
}

func newKBUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.KnowledgeBase.UploadFile(ctx, args[0])
			})
		},
	}
}

func newKBCanUploadCmd() *cobra.Command {
	var (
		size     int64
		fileType string
	)

	cmd := &cobra.Command{
		Use:   "can-upload",
		Short: "Check whether a file fits the account's quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.KnowledgeBase.CanUpload(ctx, size, fileType)
			})
		},
	}

	cmd.Flags().Int64Var(&size, "size", 0, "file size in bytes")
	cmd.Flags().StringVar(&fileType, "type", knowledgebase.DefaultFileType, "file type")
	return cmd
}

func newKBDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [file-id]",
		Short: "Delete a knowledge base file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("file_id", args[0])
			if err != nil {
				return err
			}
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				return c.KnowledgeBase.Delete(ctx, id)
			})
		},
	}
}

func newKBAssignCmd(verb, short string) *cobra.Command {
	var (
		agentID   int64
		fileIDs   []int64
		whenToUse string
	)

	cmd := &cobra.Command{
		Use:   verb,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fields, func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error) {
				if verb == "attach" {
					return c.KnowledgeBase.Attach(ctx, fileIDs, agentID, whenToUse)
				}
				return c.KnowledgeBase.Detach(ctx, fileIDs, agentID)
			})
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent-id", 0, "agent ID")
	cmd.Flags().Int64SliceVar(&fileIDs, "file-ids", nil, "comma-separated file IDs")
	if verb == "attach" {
		cmd.Flags().StringVar(&whenToUse, "when", "", "when the agent should consult these files")
	}
	return cmd
}

func init() {
	rootCmd.AddCommand(newKnowledgeBaseCmd())
}

package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ryu-ryuk/omnidim-go/internal/tui"
	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
)

// pickMenu shows the menu once and returns the chosen command line.
var pickMenu = tui.Run

var errNoTerminal = stderrors.New(`interactive mode needs a terminal; run a subcommand instead (see "omnidim --help")`)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick operations from a menu",
		Long: `Browse every omnidim operation from a menu and fill in its inputs
interactively. Running omnidim without a subcommand in a terminal does the same.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive(cmd) {
				return errNoTerminal
			}
			return runInteractive(cmd.Root(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runRoot opens the menu when omnidim is started bare in a terminal and
// prints help otherwise.
func runRoot(cmd *cobra.Command, args []string) error {
	if !isInteractive(cmd) {
		return cmd.Help()
	}
	return runInteractive(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
}

func isInteractive(cmd *cobra.Command) bool {
	return ui.IsTerminalInput(cmd.InOrStdin()) && ui.IsTerminal(cmd.OutOrStdout())
}

// runInteractive shows the menu, runs the chosen command and comes back to
// the menu until the user quits. A failed command is reported and the loop
// goes on.
func runInteractive(root *cobra.Command, in io.Reader, out io.Writer) error {
	for {
		args, err := pickMenu(in, out, menuSections())
		if err != nil {
			return err
		}
		if args == nil {
			fmt.Fprintln(out, ui.Success("Bye.", plainOutput(root)))
			return nil
		}
		if err := runSelection(root, args); err != nil {
			fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		}
		fmt.Fprintln(out)
	}
}

// runSelection runs the subcommand named by args the way Execute would. The
// subcommand's own flags start from their defaults; root flags such as
// --api-key and --output keep what the user started omnidim with.
func runSelection(root *cobra.Command, args []string) error {
	sub, rest, err := root.Find(args)
	if err != nil {
		return err
	}
	if sub == root || sub.RunE == nil {
		return fmt.Errorf("unknown command %q", strings.Join(args, " "))
	}

	sub.LocalNonPersistentFlags().VisitAll(resetFlag)
	if err := sub.ParseFlags(rest); err != nil {
		return err
	}
	positional := sub.Flags().Args()
	if err := sub.ValidateArgs(positional); err != nil {
		return err
	}
	if ctx := root.Context(); ctx != nil {
		sub.SetContext(ctx)
	}
	return sub.RunE(sub, positional)
}

func resetFlag(f *pflag.Flag) {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		_ = sv.Replace(nil)
	} else {
		_ = f.Value.Set(f.DefValue)
	}
	f.Changed = false
}

func idField(label string) tui.Field {
	return tui.Field{Label: label, Required: true, Placeholder: "123"}
}

func agentField(required bool) tui.Field {
	return tui.Field{Label: "Agent ID", Flag: "agent-id", Required: required, Placeholder: "123"}
}

var pageField = tui.Field{Label: "Page", Flag: "page", Placeholder: "1"}

// menuSections lays the command tree out for the interactive menu.
func menuSections() []tui.Section {
	return []tui.Section{
		{
			Title:       "Agents",
			Description: "Create, inspect and remove voice agents",
			Actions: []tui.Action{
				{Title: "List agents", Command: []string{"agents", "list"}, Fields: []tui.Field{pageField}},
				{Title: "Get agent", Command: []string{"agents", "get"}, Fields: []tui.Field{idField("Agent ID")}},
				{Title: "Create agent", Command: []string{"agents", "create"}, Fields: []tui.Field{
					{Label: "Name", Flag: "name", Required: true},
					{Label: "Welcome message", Flag: "welcome-message"},
					{Label: "Prompt section", Flag: "section", Placeholder: "Role=You answer calls for Acme"},
					{Label: "Extra settings JSON", Flag: "extra", Placeholder: `{"call_type": "Incoming"}`},
				}},
				{Title: "Update agent", Command: []string{"agents", "update"}, Fields: []tui.Field{
					idField("Agent ID"),
					{Label: "Fields to update (JSON or @file)", Flag: "data", Required: true, Placeholder: `{"name": "New name"}`},
				}},
				{Title: "Delete agent", Command: []string{"agents", "delete"}, Fields: []tui.Field{idField("Agent ID")},
					Confirm: "Delete this agent?"},
			},
		},
		{
			Title:       "Calls",
			Description: "Dispatch calls and read call logs",
			Actions: []tui.Action{
				{Title: "Dispatch call", Command: []string{"calls", "dispatch"}, Fields: []tui.Field{
					agentField(true),
					{Label: "Number to call", Flag: "to", Required: true, Placeholder: "+15551234567"},
					{Label: "Call context JSON", Flag: "context", Placeholder: `{"customer_name": "Ada"}`},
				}},
				{Title: "List call logs", Command: []string{"calls", "logs"}, Fields: []tui.Field{
					agentField(false),
					{Label: "Call status", Flag: "status"},
					pageField,
				}},
				{Title: "Get call log", Command: []string{"calls", "log"}, Fields: []tui.Field{idField("Call log ID")}},
			},
		},
		{
			Title:       "Simulations",
			Description: "Test agents against simulated callers",
			Actions: []tui.Action{
				{Title: "List simulations", Command: []string{"simulations", "list"}, Fields: []tui.Field{pageField}},
				{Title: "Create simulation", Command: []string{"simulations", "create"}, Fields: []tui.Field{
					{Label: "Name", Flag: "name", Required: true},
					agentField(true),
					{Label: "Scenarios JSON or @file", Flag: "scenarios"},
				}},
				{Title: "Get simulation", Command: []string{"simulations", "get"}, Fields: []tui.Field{idField("Simulation ID")}},
				{Title: "Start simulation", Command: []string{"simulations", "start"}, Fields: []tui.Field{idField("Simulation ID")}},
				{Title: "Stop simulation", Command: []string{"simulations", "stop"}, Fields: []tui.Field{idField("Simulation ID")}},
				{Title: "Enhance prompt", Command: []string{"simulations", "enhance-prompt"}, Fields: []tui.Field{idField("Simulation ID")}},
				{Title: "Delete simulation", Command: []string{"simulations", "delete"}, Fields: []tui.Field{idField("Simulation ID")},
					Confirm: "Delete this simulation?"},
			},
		},
		{
			Title:       "Knowledge Base",
			Description: "Upload files and attach them to agents",
			Actions: []tui.Action{
				{Title: "List files", Command: []string{"kb", "list"}},
				{Title: "Upload file", Command: []string{"kb", "upload"}, Fields: []tui.Field{
					{Label: "Path to file", Required: true, Placeholder: "/path/to/document.pdf"},
				}},
				{Title: "Check upload eligibility", Command: []string{"kb", "can-upload"}, Fields: []tui.Field{
					{Label: "File size in bytes", Flag: "size", Required: true},
					{Label: "File type", Flag: "type"},
				}},
				{Title: "Attach files to agent", Command: []string{"kb", "attach"}, Fields: []tui.Field{
					{Label: "File IDs", Flag: "file-ids", Required: true, Placeholder: "1,2,3"},
					agentField(true),
					{Label: "When to use these files", Flag: "when"},
				}},
				{Title: "Detach files from agent", Command: []string{"kb", "detach"}, Fields: []tui.Field{
					{Label: "File IDs", Flag: "file-ids", Required: true, Placeholder: "1,2,3"},
					agentField(true),
				}},
				{Title: "Delete file", Command: []string{"kb", "delete"}, Fields: []tui.Field{idField("File ID")},
					Confirm: "Delete this file?"},
			},
		},
		{
			Title:       "Phone Numbers",
			Description: "Route numbers to agents",
			Actions: []tui.Action{
				{Title: "List phone numbers", Command: []string{"phone", "list"}, Fields: []tui.Field{pageField}},
				{Title: "Attach to agent", Command: []string{"phone", "attach"}, Fields: []tui.Field{
					idField("Phone number ID"),
					agentField(true),
				}},
				{Title: "Detach from agent", Command: []string{"phone", "detach"}, Fields: []tui.Field{idField("Phone number ID")}},
			},
		},
		{
			Title:       "Integrations",
			Description: "Connect agents to APIs and calendars",
			Actions: []tui.Action{
				{Title: "List integrations", Command: []string{"integrations", "list"}},
				{Title: "List agent integrations", Command: []string{"integrations", "agent"}, Fields: []tui.Field{idField("Agent ID")}},
				{Title: "Create API integration", Command: []string{"integrations", "create-custom-api"}, Fields: []tui.Field{
					{Label: "Name", Flag: "name", Required: true},
					{Label: "URL", Flag: "url", Required: true, Placeholder: "https://api.example.com/orders"},
					{Label: "HTTP method", Flag: "method", Default: "GET"},
					{Label: "Description", Flag: "description"},
				}},
				{Title: "Create Cal.com integration", Command: []string{"integrations", "create-cal"}, Fields: []tui.Field{
					{Label: "Name", Flag: "name", Required: true},
					{Label: "Cal.com API key", Flag: "cal-api-key", Required: true, Secret: true},
					{Label: "Cal.com ID", Flag: "cal-id", Required: true},
					{Label: "Cal.com timezone", Flag: "cal-timezone", Required: true, Placeholder: "America/New_York"},
					{Label: "Description", Flag: "description"},
				}},
				{Title: "Create from JSON", Command: []string{"integrations", "create"}, Fields: []tui.Field{
					{Label: "JSON or @file", Required: true, Placeholder: "@integration.json"},
				}},
				{Title: "Attach to agent", Command: []string{"integrations", "add"}, Fields: []tui.Field{
					idField("Agent ID"), idField("Integration ID"),
				}},
				{Title: "Detach from agent", Command: []string{"integrations", "remove"}, Fields: []tui.Field{
					idField("Agent ID"), idField("Integration ID"),
				}, Confirm: "Remove this integration from the agent?"},
			},
		},
		{
			Title:       "Configuration",
			Description: "API key, base URL and config file",
			Actions: []tui.Action{
				{Title: "Show configuration", Command: []string{"config", "show"}},
				{Title: "Set API key", Command: []string{"config", "set-key"}, Fields: []tui.Field{
					{Label: "API key", Required: true, Secret: true},
				}},
				{Title: "Set base URL", Command: []string{"config", "set-url"}, Fields: []tui.Field{
					{Label: "Base URL", Required: true, Placeholder: sdk.DefaultBaseURL},
				}},
				{Title: "Show config file path", Command: []string{"config", "path"}},
			},
		},
	}
}

func init() {
	rootCmd.RunE = runRoot
	rootCmd.AddCommand(newInteractiveCmd())
}

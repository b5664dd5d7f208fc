package cmd

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ryu-ryuk/omnidim-go/internal/config"
	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/auth"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  "Store the API key and base URL used by omnidim and the MCP server",
}

// updateConfigFile loads the config file, applies fn and saves it back.
func updateConfigFile(configPath string, fn func(*config.File)) (string, error) {
	if configPath == "" {
		configPath = config.DiscoverPath(cfgFile)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	fn(cfg)

	if err := config.Save(cfg, configPath); err != nil {
		return "", fmt.Errorf("failed to save config: %w", err)
	}
	return configPath, nil
}

func newConfigSetKeyCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set-key [api-key]",
		Short: "Store the OmniDimension API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			path, err := updateConfigFile(configPath, func(f *config.File) { f.APIKey = key })
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success("API key set to: "+auth.Mask(key), plainOutput(cmd)))
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}

func newConfigSetURLCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set-url [url]",
		Short: "Set the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimSpace(args[0])
			path, err := updateConfigFile(configPath, func(f *config.File) { f.BaseURL = url })
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Base URL updated to: "+url, plainOutput(cmd)))
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Resolve(overrides())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Current Configuration:")
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Setting", "Value")

			if s.APIKey != "" {
				table.Append("API Key", fmt.Sprintf("%s (from %s)", auth.Mask(s.APIKey), s.APIKeySource))
			} else {
				table.Append("API Key", "(not set)")
			}
			table.Append("Base URL", s.BaseURL)
			table.Append("Timeout", s.Timeout.String())
			table.Append("Config File", s.ConfigPath)

			return table.Render()
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.DiscoverPath(cfgFile))
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigSetKeyCmd())
	configCmd.AddCommand(newConfigSetURLCmd())
	configCmd.AddCommand(newConfigPathCmd())
}

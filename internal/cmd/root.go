// Package cmd implements the omnidim command line.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryu-ryuk/omnidim-go/internal/config"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
)

var (
	cfgFile string
	apiKey  string
	baseURL string
	timeout time.Duration
	output  string
	debug   bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "omnidim",
	Short: "CLI for the OmniDimension voice-agent platform",
	Long: `Command-line interface for the OmniDimension voice-agent API.

Manage agents, calls, knowledge base files, integrations, phone numbers and
simulations, or run "omnidim mcp" to expose the same operations to an MCP host.

The API key is read from --api-key, OMNIDIM_API_KEY, or the config file
written by "omnidim config set-key".

Started without a subcommand in a terminal, omnidim opens an interactive menu.`,
	Version:       sdk.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// NewRootCommand returns the root command.
func NewRootCommand() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.omnidim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "OmniDimension API key")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (default "+sdk.DefaultBaseURL+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout (default 30s)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper for config file support
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// initConfig lets the config file and OMNIDIM_* variables supply defaults
// for the bound flags. Credentials are resolved separately by config.Resolve.
func initConfig() {
	viper.SetConfigFile(config.DiscoverPath(cfgFile))
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("OMNIDIM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && debug {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func overrides() config.Overrides {
	o := config.Overrides{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Timeout:    timeout,
		ConfigPath: cfgFile,
	}
	if viper.GetBool("debug") {
		o.LogLevel = "debug"
	}
	return o
}

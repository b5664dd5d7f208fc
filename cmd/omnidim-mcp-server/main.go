// Command omnidim-mcp-server exposes the OmniDimension API to MCP hosts over
// stdio.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ryu-ryuk/omnidim-go/internal/cmd"
)

func main() {
	_ = godotenv.Load(".env")

	if err := cmd.NewMCPCommand("omnidim-mcp-server").Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command omnidim-mcp is an alias of omnidim-mcp-server kept for hosts
// configured with the older name.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ryu-ryuk/omnidim-go/internal/cmd"
)

func main() {
	_ = godotenv.Load(".env")

	if err := cmd.NewMCPCommand("omnidim-mcp").Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

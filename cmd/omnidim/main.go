// Command omnidim manages OmniDimension agents, calls, knowledge base files,
// phone numbers, integrations and simulations from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ryu-ryuk/omnidim-go/internal/cmd"
)

func main() {
	// .env.local takes precedence over .env
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

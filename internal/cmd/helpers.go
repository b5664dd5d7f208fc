package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryu-ryuk/omnidim-go/internal/config"
	"github.com/ryu-ryuk/omnidim-go/internal/ui"
	"github.com/ryu-ryuk/omnidim-go/pkg/logger"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// call performs one SDK operation for a command.
type call func(ctx context.Context, c *sdk.Client) (jsonvalue.Value, error)

// listing says how a result is laid out as a table.
type listing struct {
	items string
	cols  []ui.Column
}

var fields = listing{}

func getClient(cmd *cobra.Command) (*sdk.Client, error) {
	s, err := config.Resolve(overrides())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := s.RequireAPIKey(); err != nil {
		return nil, err
	}

	log := logger.New(cmd.ErrOrStderr(), s.LogLevel, false).With(logger.Scope("sdk"))
	return sdk.New(s.SDKConfig(log))
}

func getPrinter(cmd *cobra.Command) (*ui.Printer, error) {
	format, err := ui.ParseFormat(viper.GetString("output"))
	if err != nil {
		return nil, err
	}
	return &ui.Printer{
		Out:     cmd.OutOrStdout(),
		Format:  format,
		NoColor: plainOutput(cmd),
	}, nil
}

// plainOutput reports whether output should carry no color codes.
func plainOutput(cmd *cobra.Command) bool {
	return !ui.Colors(viper.GetBool("no-color")) || !ui.IsTerminal(cmd.OutOrStdout())
}

// run executes fn against a client built from the global flags and prints
// the result.
func run(cmd *cobra.Command, l listing, fn call) error {
	c, err := getClient(cmd)
	if err != nil {
		return err
	}
	p, err := getPrinter(cmd)
	if err != nil {
		return err
	}

	v, err := fn(commandContext(cmd), c)
	if err != nil {
		return err
	}
	return p.List(v, l.items, l.cols)
}

func parseID(param, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &sdkerrors.ArgumentError{Param: param, Reason: fmt.Sprintf("%q is not a valid ID", s)}
	}
	return id, nil
}

// readJSONObject parses a JSON object given inline or, with a leading @,
// from a file ("-" reads stdin).
func readJSONObject(param, value string) (map[string]any, error) {
	if value == "" {
		return nil, nil
	}
	data := []byte(value)
	if rest, ok := strings.CutPrefix(value, "@"); ok {
		var err error
		if rest == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(rest)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", param, err)
		}
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &sdkerrors.ArgumentError{Param: param, Reason: "must be a JSON object: " + err.Error()}
	}
	return obj, nil
}

// decodeJSONObject is readJSONObject into a typed request.
func decodeJSONObject(param, value string, dst any) error {
	obj, err := readJSONObject(param, value)
	if err != nil || obj == nil {
		return err
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &sdkerrors.ArgumentError{Param: param, Reason: "has the wrong shape: " + err.Error()}
	}
	return nil
}

package mcpserver

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
)

// args reads the arguments of one tool call through the request's typed
// accessors. Every failure is reported as an ArgumentError naming the
// parameter, so the host sees kind invalid_argument.
type args struct {
	req mcp.CallToolRequest
}

func argsOf(req mcp.CallToolRequest) args {
	return args{req: req}
}

func (a args) has(name string) bool {
	v, ok := a.req.GetArguments()[name]
	return ok && v != nil
}

func (a args) requireInt(name string) (int64, error) {
	if !a.has(name) {
		return 0, sdkerrors.Required(name)
	}
	// RequireInt truncates fractions.
	if f, ok := a.req.GetArguments()[name].(float64); ok && f != math.Trunc(f) {
		return 0, &sdkerrors.ArgumentError{Param: name, Reason: "must be an integer"}
	}
	n, err := a.req.RequireInt(name)
	if err != nil {
		return 0, &sdkerrors.ArgumentError{Param: name, Reason: "must be an integer"}
	}
	return int64(n), nil
}

func (a args) optionalInt(name string, def int) (int, error) {
	if !a.has(name) {
		return def, nil
	}
	n, err := a.requireInt(name)
	return int(n), err
}

func (a args) requireString(name string) (string, error) {
	s, err := a.optionalString(name)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", sdkerrors.Required(name)
	}
	return s, nil
}

func (a args) optionalString(name string) (string, error) {
	if !a.has(name) {
		return "", nil
	}
	s, err := a.req.RequireString(name)
	if err != nil {
		return "", &sdkerrors.ArgumentError{Param: name, Reason: "must be a string"}
	}
	return s, nil
}

func (a args) optionalBool(name string) (bool, error) {
	if !a.has(name) {
		return false, nil
	}
	b, err := a.req.RequireBool(name)
	if err != nil {
		return false, &sdkerrors.ArgumentError{Param: name, Reason: "must be a boolean"}
	}
	return b, nil
}

func (a args) intSlice(name string) ([]int64, error) {
	if !a.has(name) {
		return nil, nil
	}
	items, err := a.req.RequireIntSlice(name)
	if err != nil {
		return nil, &sdkerrors.ArgumentError{Param: name, Reason: "must be an array of integers"}
	}
	out := make([]int64, len(items))
	for i, n := range items {
		out[i] = int64(n)
	}
	return out, nil
}

func (a args) object(name string) (map[string]any, error) {
	if !a.has(name) {
		return nil, nil
	}
	switch v := a.req.GetArguments()[name].(type) {
	case map[string]any:
		return v, nil
	case string:
		// Some hosts pass nested objects as JSON text.
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return m, nil
		}
	}
	return nil, &sdkerrors.ArgumentError{Param: name, Reason: "must be an object"}
}

// decode binds the named argument into dst. A string holding JSON text is
// decoded as that JSON.
func (a args) decode(name string, dst any) error {
	if !a.has(name) {
		return nil
	}
	var all map[string]json.RawMessage
	if err := a.req.BindArguments(&all); err != nil {
		return &sdkerrors.ArgumentError{Param: name, Reason: err.Error()}
	}
	raw := all[name]
	var text string
	if err := json.Unmarshal(raw, &text); err == nil && json.Valid([]byte(text)) {
		raw = json.RawMessage(text)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &sdkerrors.ArgumentError{Param: name, Reason: "has the wrong shape: " + err.Error()}
	}
	return nil
}

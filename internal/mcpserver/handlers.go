package mcpserver

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/agents"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/calls"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/integrations"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/simulations"
)

// toolError is the JSON body of an error result.
type toolError struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

// handle adapts a call to the MCP handler signature. The result text is the
// client's JSON output unchanged; failures become error results so one bad
// call never takes the session down.
func handle(fn call) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		v, err := fn(ctx, argsOf(req))
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(v.String()), nil
	}
}

func errorResult(err error) *mcp.CallToolResult {
	body := toolError{Kind: sdkerrors.Kind(err), Message: err.Error()}
	var apiErr *sdkerrors.APIError
	if stderrors.As(err, &apiErr) {
		body.Message = apiErr.Message
		body.StatusCode = apiErr.StatusCode
	}
	data, mErr := json.Marshal(body)
	if mErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}

func paging(a args, defaultPageSize int) (int, int, error) {
	page, err := a.optionalInt("page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := a.optionalInt("page_size", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func createAgentRequest(a args) (agents.CreateRequest, error) {
	var req agents.CreateRequest
	var err error
	if req.Name, err = a.optionalString("name"); err != nil {
		return req, err
	}
	if err = a.decode("context_breakdown", &req.ContextBreakdown); err != nil {
		return req, err
	}
	if req.WelcomeMessage, err = a.optionalString("welcome_message"); err != nil {
		return req, err
	}
	if req.Extra, err = a.object("extra"); err != nil {
		return req, err
	}
	return req, nil
}

// dispatchRequest reads the agent ID from idParam, which differs between
// call_dispatch and the older dispatch_a_call.
func dispatchRequest(a args, idParam string) (calls.DispatchRequest, error) {
	var req calls.DispatchRequest
	var err error
	if req.AgentID, err = a.requireInt(idParam); err != nil {
		return req, err
	}
	if req.ToNumber, err = a.requireString("to_number"); err != nil {
		return req, err
	}
	if req.CallContext, err = a.object("call_context"); err != nil {
		return req, err
	}
	return req, nil
}

func fileAssignment(a args) ([]int64, int64, error) {
	ids, err := a.intSlice("file_ids")
	if err != nil {
		return nil, 0, err
	}
	agentID, err := a.requireInt("agent_id")
	if err != nil {
		return nil, 0, err
	}
	return ids, agentID, nil
}

func agentIntegration(a args) (int64, int64, error) {
	agentID, err := a.requireInt("agent_id")
	if err != nil {
		return 0, 0, err
	}
	integrationID, err := a.requireInt("integration_id")
	if err != nil {
		return 0, 0, err
	}
	return agentID, integrationID, nil
}

func customAPIRequest(a args) (integrations.CustomAPIRequest, error) {
	var req integrations.CustomAPIRequest
	var err error
	for name, dst := range map[string]*string{
		"name":         &req.Name,
		"url":          &req.URL,
		"method":       &req.Method,
		"description":  &req.Description,
		"body_type":    &req.BodyType,
		"body_content": &req.BodyContent,
	} {
		if *dst, err = a.optionalString(name); err != nil {
			return req, err
		}
	}
	if err = a.decode("headers", &req.Headers); err != nil {
		return req, err
	}
	if err = a.decode("body_params", &req.BodyParams); err != nil {
		return req, err
	}
	if err = a.decode("query_params", &req.QueryParams); err != nil {
		return req, err
	}
	if req.StopListening, err = a.optionalBool("stop_listening"); err != nil {
		return req, err
	}
	if req.RequestTimeout, err = a.optionalInt("request_timeout", integrations.DefaultRequestTimeout); err != nil {
		return req, err
	}
	return req, nil
}

func simulationRequest(a args) (simulations.CreateRequest, error) {
	var req simulations.CreateRequest
	var err error
	if req.Name, err = a.optionalString("name"); err != nil {
		return req, err
	}
	if req.AgentID, err = a.requireInt("agent_id"); err != nil {
		return req, err
	}
	if req.NumberOfCallToMake, err = a.optionalInt("number_of_call_to_make", simulations.DefaultNumberOfCallsToMake); err != nil {
		return req, err
	}
	if req.ConcurrentCallCount, err = a.optionalInt("concurrent_call_count", simulations.DefaultConcurrentCallCount); err != nil {
		return req, err
	}
	if req.MaxCallDurationInMinutes, err = a.optionalInt("max_call_duration_in_minutes", simulations.DefaultMaxCallDurationInMinutes); err != nil {
		return req, err
	}
	if err = a.decode("scenarios", &req.Scenarios); err != nil {
		return req, err
	}
	return req, nil
}

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/agents"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/calls"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/integrations"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/knowledgebase"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/phonenumbers"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/simulations"
)

// Tool pairs an MCP tool definition with the handler that serves it.
type Tool struct {
	Definition mcp.Tool
	Handler    server.ToolHandlerFunc
}

// call is the body of a tool handler once arguments are available.
type call func(ctx context.Context, a args) (jsonvalue.Value, error)

var (
	pageArg     = mcp.WithNumber("page", mcp.Description("Page number, starting at 1"), mcp.DefaultNumber(1))
	agentIDArg  = mcp.WithNumber("agent_id", mcp.Required(), mcp.Description("Agent ID"))
	fileIDsArg  = mcp.WithArray("file_ids", mcp.Required(), mcp.Description("Knowledge base file IDs"), mcp.Items(map[string]any{"type": "integer"}))
	simIDArg    = mcp.WithNumber("simulation_id", mcp.Required(), mcp.Description("Simulation ID"))
	contextArgs = mcp.WithArray("context_breakdown",
		mcp.Required(),
		mcp.Description("Prompt sections: [{title, body, is_enabled}]"),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":      map[string]any{"type": "string"},
				"body":       map[string]any{"type": "string"},
				"is_enabled": map[string]any{"type": "boolean"},
			},
			"required": []string{"title", "body"},
		}),
	)
)

func pageSizeArg(def int) mcp.ToolOption {
	return mcp.WithNumber("page_size", mcp.Description("Records per page"), mcp.DefaultNumber(float64(def)))
}

// Tools returns the registration table: one tool per client method, named
// <resource>_<method>, with parameters mirroring the method's.
func Tools(c *sdk.Client) []Tool {
	var tools []Tool
	tools = append(tools, agentTools(c)...)
	tools = append(tools, callTools(c)...)
	tools = append(tools, knowledgeBaseTools(c)...)
	tools = append(tools, integrationTools(c)...)
	tools = append(tools, phoneNumberTools(c)...)
	tools = append(tools, simulationTools(c)...)
	tools = append(tools, legacyTools(c)...)
	return tools
}

func tool(def mcp.Tool, fn call) Tool {
	return Tool{Definition: def, Handler: handle(fn)}
}

func agentTools(c *sdk.Client) []Tool {
	return []Tool{
		tool(mcp.NewTool("agent_list",
			mcp.WithDescription("List voice agents, paginated"),
			mcp.WithReadOnlyHintAnnotation(true),
			pageArg, pageSizeArg(agents.DefaultPageSize),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			page, pageSize, err := paging(a, agents.DefaultPageSize)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Agents.List(ctx, page, pageSize)
		}),

		tool(mcp.NewTool("agent_get",
			mcp.WithDescription("Get one agent by ID"),
			mcp.WithReadOnlyHintAnnotation(true),
			agentIDArg,
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("agent_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Agents.Get(ctx, id)
		}),

		tool(mcp.NewTool("agent_create",
			mcp.WithDescription("Create a voice agent"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Agent name")),
			contextArgs,
			mcp.WithString("welcome_message", mcp.Description("First thing the agent says on a call")),
			mcp.WithObject("extra", mcp.Description("Additional agent settings merged into the request")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			req, err := createAgentRequest(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Agents.Create(ctx, req)
		}),

		tool(mcp.NewTool("agent_update",
			mcp.WithDescription("Update an agent's settings"),
			agentIDArg,
			mcp.WithObject("data", mcp.Required(), mcp.Description("Fields to update")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("agent_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			data, err := a.object("data")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Agents.Update(ctx, id, data)
		}),

		tool(mcp.NewTool("agent_delete",
			mcp.WithDescription("Delete an agent"),
			mcp.WithDestructiveHintAnnotation(true),
			agentIDArg,
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("agent_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Agents.Delete(ctx, id)
		}),
	}
}

func callTools(c *sdk.Client) []Tool {
	return []Tool{
		tool(mcp.NewTool("call_dispatch",
			mcp.WithDescription("Place an outbound call from an agent"),
			agentIDArg,
			mcp.WithString("to_number", mcp.Required(), mcp.Description("Number to call, in E.164 format")),
			mcp.WithObject("call_context", mcp.Description("Context for the agent, e.g. caller name and purpose")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			req, err := dispatchRequest(a, "agent_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Calls.Dispatch(ctx, req)
		}),

		tool(mcp.NewTool("call_list_logs",
			mcp.WithDescription("List call logs, optionally filtered by agent or status"),
			mcp.WithReadOnlyHintAnnotation(true),
			pageArg, pageSizeArg(calls.DefaultPageSize),
			mcp.WithNumber("agent_id", mcp.Description("Only calls made by this agent")),
			mcp.WithString("call_status", mcp.Description("Only calls in this status")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			page, pageSize, err := paging(a, calls.DefaultPageSize)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			opts := calls.ListLogsOptions{Page: page, PageSize: pageSize}
			if a.has("agent_id") {
				if opts.AgentID, err = a.requireInt("agent_id"); err != nil {
					return jsonvalue.Value{}, err
				}
			}
			if opts.CallStatus, err = a.optionalString("call_status"); err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Calls.ListLogs(ctx, opts)
		}),

		tool(mcp.NewTool("call_get_log",
			mcp.WithDescription("Get one call log with transcript and recording"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithNumber("call_log_id", mcp.Required(), mcp.Description("Call log ID")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("call_log_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Calls.GetLog(ctx, id)
		}),
	}
}

func knowledgeBaseTools(c *sdk.Client) []Tool {
	return []Tool{
		tool(mcp.NewTool("knowledge_base_list",
			mcp.WithDescription("List knowledge base files"),
			mcp.WithReadOnlyHintAnnotation(true),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			return c.KnowledgeBase.List(ctx)
		}),

		tool(mcp.NewTool("knowledge_base_upload",
			mcp.WithDescription("Upload a base64-encoded file to the knowledge base"),
			mcp.WithString("file", mcp.Required(), mcp.Description("Base64-encoded file content")),
			mcp.WithString("filename", mcp.Required(), mcp.Description("File name, e.g. faq.pdf")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			var req knowledgebase.UploadRequest
			var err error
			if req.File, err = a.requireString("file"); err != nil {
				return jsonvalue.Value{}, err
			}
			if req.Filename, err = a.requireString("filename"); err != nil {
				return jsonvalue.Value{}, err
			}
			return c.KnowledgeBase.Upload(ctx, req)
		}),

		tool(mcp.NewTool("knowledge_base_upload_file",
			mcp.WithDescription("Upload a local file to the knowledge base"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file on this machine")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			path, err := a.requireString("path")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.KnowledgeBase.UploadFile(ctx, path)
		}),

		tool(mcp.NewTool("knowledge_base_can_upload",
			mcp.WithDescription("Check whether a file fits the account's knowledge base quota"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithNumber("file_size", mcp.Required(), mcp.Description("File size in bytes")),
			mcp.WithString("file_type", mcp.Description("File type"), mcp.DefaultString(knowledgebase.DefaultFileType)),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			size, err := a.requireInt("file_size")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			fileType, err := a.optionalString("file_type")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.KnowledgeBase.CanUpload(ctx, size, fileType)
		}),

		tool(mcp.NewTool("knowledge_base_delete",
			mcp.WithDescription("Delete a knowledge base file"),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithNumber("file_id", mcp.Required(), mcp.Description("File ID")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("file_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.KnowledgeBase.Delete(ctx, id)
		}),

		tool(mcp.NewTool("knowledge_base_attach",
			mcp.WithDescription("Attach knowledge base files to an agent"),
			fileIDsArg, agentIDArg,
			mcp.WithString("when_to_use", mcp.Description("When the agent should consult these files")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			ids, agentID, err := fileAssignment(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			whenToUse, err := a.optionalString("when_to_use")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.KnowledgeBase.Attach(ctx, ids, agentID, whenToUse)
		}),

		tool(mcp.NewTool("knowledge_base_detach",
			mcp.WithDescription("Detach knowledge base files from an agent"),
			fileIDsArg, agentIDArg,
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			ids, agentID, err := fileAssignment(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.KnowledgeBase.Detach(ctx, ids, agentID)
		}),
	}
}

func integrationTools(c *sdk.Client) []Tool {
	paramItems := mcp.Items(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key":            map[string]any{"type": "string"},
			"description":    map[string]any{"type": "string"},
			"type":           map[string]any{"type": "string", "enum": []string{"string", "number", "boolean"}},
			"required":       map[string]any{"type": "boolean"},
			"isLLMGenerated": map[string]any{"type": "boolean"},
		},
		"required": []string{"key"},
	})

	return []Tool{
		tool(mcp.NewTool("integration_list",
			mcp.WithDescription("List integrations available to the account"),
			mcp.WithReadOnlyHintAnnotation(true),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			return c.Integrations.List(ctx)
		}),

		tool(mcp.NewTool("integration_create_custom_api",
			mcp.WithDescription("Create an integration that calls an HTTP endpoint during calls"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Integration name")),
			mcp.WithString("url", mcp.Required(), mcp.Description("Endpoint URL")),
			mcp.WithString("method", mcp.Required(), mcp.Description("HTTP method"), mcp.Enum("GET", "POST", "PUT", "DELETE", "PATCH")),
			mcp.WithString("description", mcp.Description("What the integration does")),
			mcp.WithArray("headers", mcp.Description("Static headers: [{key, value}]"), mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"key":   map[string]any{"type": "string"},
					"value": map[string]any{"type": "string"},
				},
				"required": []string{"key", "value"},
			})),
			mcp.WithString("body_type", mcp.Description("none, json or form")),
			mcp.WithString("body_content", mcp.Description("Request body template")),
			mcp.WithArray("body_params", mcp.Description("Body parameters"), paramItems),
			mcp.WithArray("query_params", mcp.Description("Query parameters"), paramItems),
			mcp.WithBoolean("stop_listening", mcp.Description("Pause listening while the request runs")),
			mcp.WithNumber("request_timeout", mcp.Description("Timeout in seconds"), mcp.DefaultNumber(integrations.DefaultRequestTimeout)),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			req, err := customAPIRequest(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Integrations.CreateCustomAPI(ctx, req)
		}),

		tool(mcp.NewTool("integration_create_cal",
			mcp.WithDescription("Create a Cal.com calendar integration"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Integration name")),
			mcp.WithString("cal_api_key", mcp.Required(), mcp.Description("Cal.com API key")),
			mcp.WithString("cal_id", mcp.Required(), mcp.Description("Cal.com user or event ID")),
			mcp.WithString("cal_timezone", mcp.Required(), mcp.Description("IANA timezone, e.g. America/New_York")),
			mcp.WithString("description", mcp.Description("What the integration does")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			var req integrations.CalRequest
			var err error
			for name, dst := range map[string]*string{
				"name":         &req.Name,
				"cal_api_key":  &req.CalAPIKey,
				"cal_id":       &req.CalID,
				"cal_timezone": &req.CalTimezone,
				"description":  &req.Description,
			} {
				if *dst, err = a.optionalString(name); err != nil {
					return jsonvalue.Value{}, err
				}
			}
			return c.Integrations.CreateCal(ctx, req)
		}),

		tool(mcp.NewTool("integration_create_from_json",
			mcp.WithDescription("Create an integration from a complete document; integration_type selects custom_api or cal"),
			mcp.WithObject("integration", mcp.Required(), mcp.Description("Integration document including integration_type")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			doc, err := a.object("integration")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Integrations.CreateFromJSON(ctx, doc)
		}),

		tool(mcp.NewTool("integration_list_for_agent",
			mcp.WithDescription("List the integrations attached to an agent"),
			mcp.WithReadOnlyHintAnnotation(true),
			agentIDArg,
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("agent_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Integrations.ListForAgent(ctx, id)
		}),

		tool(mcp.NewTool("integration_add_to_agent",
			mcp.WithDescription("Attach an integration to an agent"),
			agentIDArg,
			mcp.WithNumber("integration_id", mcp.Required(), mcp.Description("Integration ID")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			agentID, integrationID, err := agentIntegration(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Integrations.AddToAgent(ctx, agentID, integrationID)
		}),

		tool(mcp.NewTool("integration_remove_from_agent",
			mcp.WithDescription("Detach an integration from an agent"),
			mcp.WithDestructiveHintAnnotation(true),
			agentIDArg,
			mcp.WithNumber("integration_id", mcp.Required(), mcp.Description("Integration ID")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			agentID, integrationID, err := agentIntegration(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Integrations.RemoveFromAgent(ctx, agentID, integrationID)
		}),
	}
}

func phoneNumberTools(c *sdk.Client) []Tool {
	return []Tool{
		tool(mcp.NewTool("phone_number_list",
			mcp.WithDescription("List imported phone numbers"),
			mcp.WithReadOnlyHintAnnotation(true),
			pageArg, pageSizeArg(phonenumbers.DefaultPageSize),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			page, pageSize, err := paging(a, phonenumbers.DefaultPageSize)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.PhoneNumbers.List(ctx, page, pageSize)
		}),

		tool(mcp.NewTool("phone_number_attach",
			mcp.WithDescription("Route a phone number to an agent"),
			mcp.WithNumber("phone_number_id", mcp.Required(), mcp.Description("Phone number ID")),
			agentIDArg,
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			phoneID, err := a.requireInt("phone_number_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			agentID, err := a.requireInt("agent_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.PhoneNumbers.Attach(ctx, phoneID, agentID)
		}),

		tool(mcp.NewTool("phone_number_detach",
			mcp.WithDescription("Detach a phone number from its agent"),
			mcp.WithNumber("phone_number_id", mcp.Required(), mcp.Description("Phone number ID")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			phoneID, err := a.requireInt("phone_number_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.PhoneNumbers.Detach(ctx, phoneID)
		}),
	}
}

func simulationTools(c *sdk.Client) []Tool {
	byID := func(name, description string, destructive bool, fn func(context.Context, int64) (jsonvalue.Value, error)) Tool {
		opts := []mcp.ToolOption{mcp.WithDescription(description), simIDArg}
		if destructive {
			opts = append(opts, mcp.WithDestructiveHintAnnotation(true))
		}
		return tool(mcp.NewTool(name, opts...), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("simulation_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return fn(ctx, id)
		})
	}

	return []Tool{
		tool(mcp.NewTool("simulation_create",
			mcp.WithDescription("Create a simulation that places scripted test calls against an agent"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Simulation name")),
			agentIDArg,
			mcp.WithNumber("number_of_call_to_make", mcp.Description("Calls per scenario"), mcp.DefaultNumber(simulations.DefaultNumberOfCallsToMake)),
			mcp.WithNumber("concurrent_call_count", mcp.Description("Calls run at once"), mcp.DefaultNumber(simulations.DefaultConcurrentCallCount)),
			mcp.WithNumber("max_call_duration_in_minutes", mcp.Description("Maximum call length"), mcp.DefaultNumber(simulations.DefaultMaxCallDurationInMinutes)),
			mcp.WithArray("scenarios", mcp.Description("Scenarios: [{name, description, expected_result, selected_voices: [{id, provider}]}]"), mcp.Items(map[string]any{"type": "object"})),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			req, err := simulationRequest(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Simulations.Create(ctx, req)
		}),

		tool(mcp.NewTool("simulation_list",
			mcp.WithDescription("List simulations, paginated"),
			mcp.WithReadOnlyHintAnnotation(true),
			pageArg, pageSizeArg(simulations.DefaultPageSize),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			page, pageSize, err := paging(a, simulations.DefaultPageSize)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Simulations.List(ctx, page, pageSize)
		}),

		byID("simulation_get", "Get a simulation with its progress and results", false, c.Simulations.Get),

		tool(mcp.NewTool("simulation_update",
			mcp.WithDescription("Update a simulation that is not running"),
			simIDArg,
			mcp.WithObject("data", mcp.Required(), mcp.Description("Fields to update")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			id, err := a.requireInt("simulation_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			data, err := a.object("data")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Simulations.Update(ctx, id, data)
		}),

		byID("simulation_delete", "Delete a simulation, stopping it first if needed", true, c.Simulations.Delete),
		byID("simulation_start", "Start a simulation", false, c.Simulations.Start),
		byID("simulation_stop", "Stop a running simulation", false, c.Simulations.Stop),
		byID("simulation_enhance_prompt", "Get prompt suggestions from a completed simulation", false, c.Simulations.EnhancePrompt),
	}
}

// legacyTools keeps the tool names earlier releases of the server published.
func legacyTools(c *sdk.Client) []Tool {
	return []Tool{
		tool(mcp.NewTool("dispatch_a_call",
			mcp.WithDescription("Dispatch a call to the given number (alias of call_dispatch)"),
			mcp.WithNumber("assistant_id", mcp.Required(), mcp.Description("ID of the assistant")),
			mcp.WithString("to_number", mcp.Required(), mcp.Description("A valid phone number")),
			mcp.WithObject("call_context", mcp.Description("Who is being called and why, e.g. {\"caller_name\": \"John Doe\", \"purpose\": \"appointment\"}")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			req, err := dispatchRequest(a, "assistant_id")
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Calls.Dispatch(ctx, req)
		}),

		tool(mcp.NewTool("create_assistant",
			mcp.WithDescription("Create a new assistant (alias of agent_create)"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Assistant name")),
			contextArgs,
			mcp.WithString("welcome_message", mcp.Description("First message played when the call connects")),
		), func(ctx context.Context, a args) (jsonvalue.Value, error) {
			req, err := createAgentRequest(a)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return c.Agents.Create(ctx, req)
		}),
	}
}

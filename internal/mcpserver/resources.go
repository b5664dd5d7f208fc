package mcpserver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

const assistantScheme = "assistants://"

// Resources exposes agents as readable MCP resources:
//
//	assistants://{assistant_id}       one agent
//	assistants://{page}/{page_size}   one page of agents
func Resources(c *sdk.Client) []server.ServerResourceTemplate {
	read := readAssistants(c)
	return []server.ServerResourceTemplate{
		{
			Template: mcp.NewResourceTemplate(assistantScheme+"{assistant_id}", "assistant",
				mcp.WithTemplateDescription("A voice agent by ID"),
				mcp.WithTemplateMIMEType("application/json"),
			),
			Handler: read,
		},
		{
			Template: mcp.NewResourceTemplate(assistantScheme+"{page}/{page_size}", "assistants",
				mcp.WithTemplateDescription("A page of voice agents"),
				mcp.WithTemplateMIMEType("application/json"),
			),
			Handler: read,
		},
	}
}

// readAssistants serves both templates; the number of path segments decides
// which one was addressed.
func readAssistants(c *sdk.Client) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := req.Params.URI
		rest, ok := strings.CutPrefix(uri, assistantScheme)
		if !ok {
			return nil, &sdkerrors.ArgumentError{Param: "uri", Reason: "must start with " + assistantScheme}
		}

		var v jsonvalue.Value
		var err error
		switch parts := strings.Split(strings.Trim(rest, "/"), "/"); len(parts) {
		case 1:
			var id int64
			if id, err = parseSegment("assistant_id", parts[0]); err == nil {
				v, err = c.Agents.Get(ctx, id)
			}
		case 2:
			var page, pageSize int64
			if page, err = parseSegment("page", parts[0]); err != nil {
				break
			}
			if pageSize, err = parseSegment("page_size", parts[1]); err != nil {
				break
			}
			v, err = c.Agents.List(ctx, int(page), int(pageSize))
		default:
			err = &sdkerrors.ArgumentError{Param: "uri", Reason: fmt.Sprintf("unrecognized assistants path %q", rest)}
		}
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: v.String()},
		}, nil
	}
}

func parseSegment(param, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, &sdkerrors.ArgumentError{Param: param, Reason: "must be a positive integer"}
	}
	return n, nil
}

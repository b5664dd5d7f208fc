// Package calls provides the Calls service client for the OmniDimension API SDK.
package calls

import (
	"context"
	"strconv"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// DefaultPageSize is used by ListLogs when PageSize is not positive.
const DefaultPageSize = 30

// Client provides access to the Calls API.
type Client struct {
	r *rest.Requester
}

// NewClient creates a new calls client.
func NewClient(r *rest.Requester) *Client {
	return &Client{r: r}
}

// DispatchRequest starts an outbound call from an agent.
type DispatchRequest struct {
	AgentID  int64  `json:"agent_id" validate:"required"`
	ToNumber string `json:"to_number" validate:"required"`
	// CallContext is made available to the agent during the call.
	CallContext map[string]any `json:"call_context"`
}

// ListLogsOptions filters call logs. Zero values mean "not set".
type ListLogsOptions struct {
	Page       int
	PageSize   int
	AgentID    int64
	CallStatus string
}

// Dispatch starts an outbound call.
// POST /calls/dispatch
func (c *Client) Dispatch(ctx context.Context, req DispatchRequest) (jsonvalue.Value, error) {
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	if req.CallContext == nil {
		req.CallContext = map[string]any{}
	}
	return c.r.Post(ctx, "calls/dispatch", req)
}

// ListLogs returns a page of call logs.
// GET /calls/logs?pageno=&pagesize=&agentid=&call_status=
func (c *Client) ListLogs(ctx context.Context, opts ListLogsOptions) (jsonvalue.Value, error) {
	q := rest.Page(opts.Page, opts.PageSize, DefaultPageSize)
	if opts.AgentID > 0 {
		q.Set("agentid", strconv.FormatInt(opts.AgentID, 10))
	}
	if opts.CallStatus != "" {
		q.Set("call_status", opts.CallStatus)
	}
	return c.r.Get(ctx, "calls/logs", q)
}

// GetLog returns a single call log.
// GET /calls/logs/{id}
func (c *Client) GetLog(ctx context.Context, callLogID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("call_log_id", callLogID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Get(ctx, rest.Path("calls", "logs", callLogID), nil)
}

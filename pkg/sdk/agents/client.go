// Package agents provides the Agents service client for the OmniDimension API SDK.
package agents

import (
	"context"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// DefaultPageSize is used by List when pageSize is not positive.
const DefaultPageSize = 30

// Client provides access to the Agents API.
type Client struct {
	r *rest.Requester
}

// NewClient creates a new agents client.
func NewClient(r *rest.Requester) *Client {
	return &Client{r: r}
}

// --- Types ---

// ContextSection is one titled block of an agent's context breakdown.
type ContextSection struct {
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	IsEnabled *bool  `json:"is_enabled,omitempty"`
}

// CreateRequest is the request to create a new agent.
type CreateRequest struct {
	Name             string           `json:"name" validate:"required"`
	ContextBreakdown []ContextSection `json:"context_breakdown" validate:"required,min=1,dive"`
	WelcomeMessage   string           `json:"welcome_message,omitempty"`
	// Extra carries additional agent settings (voice, transcriber, flows...)
	// merged into the body as-is. Extra keys override the typed fields.
	Extra map[string]any `json:"-"`
}

// --- Methods ---

// List returns a page of agents.
// GET /agents?pageno=&pagesize=
func (c *Client) List(ctx context.Context, page, pageSize int) (jsonvalue.Value, error) {
	return c.r.Get(ctx, "agents", rest.Page(page, pageSize, DefaultPageSize))
}

// Get returns a single agent.
// GET /agents/{id}
func (c *Client) Get(ctx context.Context, agentID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("agent_id", agentID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Get(ctx, rest.Path("agents", agentID), nil)
}

// Create creates an agent.
// POST /agents/create
func (c *Client) Create(ctx context.Context, req CreateRequest) (jsonvalue.Value, error) {
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	body, err := rest.Merge(req, req.Extra)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "agents/create", body)
}

// Update replaces agent settings with data.
// PUT /agents/{id}
func (c *Client) Update(ctx context.Context, agentID int64, data map[string]any) (jsonvalue.Value, error) {
	if err := rest.RequireID("agent_id", agentID); err != nil {
		return jsonvalue.Value{}, err
	}
	if len(data) == 0 {
		return jsonvalue.Value{}, rest.Required("data")
	}
	return c.r.Put(ctx, rest.Path("agents", agentID), data)
}

// Delete deletes an agent.
// DELETE /agents/{id}
func (c *Client) Delete(ctx context.Context, agentID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("agent_id", agentID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Delete(ctx, rest.Path("agents", agentID))
}

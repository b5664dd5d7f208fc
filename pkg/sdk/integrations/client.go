// Package integrations provides the Integrations service client for the OmniDimension API SDK.
package integrations

import (
	"context"
	"fmt"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// Integration types understood by CreateFromJSON.
const (
	TypeCustomAPI = "custom_api"
	TypeCal       = "cal"

	// DefaultRequestTimeout is the custom API timeout in seconds when none is given.
	DefaultRequestTimeout = 10
)

// Client provides access to the Integrations API.
type Client struct {
	r *rest.Requester
}

// NewClient creates a new integrations client.
func NewClient(r *rest.Requester) *Client {
	return &Client{r: r}
}

// --- Types ---

// Header is a static header sent by a custom API integration.
type Header struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Param describes a query or body parameter of a custom API integration.
type Param struct {
	Key            string `json:"key" validate:"required"`
	Description    string `json:"description,omitempty"`
	Type           string `json:"type,omitempty"` // string, number or boolean
	Required       *bool  `json:"required,omitempty"`
	IsLLMGenerated *bool  `json:"isLLMGenerated,omitempty"`
}

// CustomAPIRequest creates an integration that calls an arbitrary HTTP endpoint.
type CustomAPIRequest struct {
	Name        string   `json:"name" validate:"required"`
	URL         string   `json:"url" validate:"required"`
	Method      string   `json:"method" validate:"required"`
	Description string   `json:"description"`
	Headers     []Header `json:"headers,omitempty" validate:"dive"`
	BodyType    string   `json:"body_type,omitempty"`
	BodyContent string   `json:"body_content,omitempty"`
	BodyParams  []Param  `json:"body_params,omitempty" validate:"dive"`
	QueryParams []Param  `json:"query_params,omitempty" validate:"dive"`
	// StopListening pauses the agent's listening while the request runs.
	StopListening bool `json:"stop_listening"`
	// RequestTimeout is in seconds.
	RequestTimeout  int    `json:"request_timeout"`
	IntegrationType string `json:"integration_type"`
}

// CalRequest creates a Cal.com calendar integration.
type CalRequest struct {
	Name            string `json:"name" validate:"required"`
	CalAPIKey       string `json:"cal_api_key" validate:"required"`
	CalID           string `json:"cal_id" validate:"required"`
	CalTimezone     string `json:"cal_timezone" validate:"required"`
	Description     string `json:"description"`
	IntegrationType string `json:"integration_type"`
}

type addToAgentRequest struct {
	IntegrationID int64 `json:"integration_id" validate:"required"`
}

var requiredByType = map[string][]string{
	TypeCustomAPI: {"name", "url", "method"},
	TypeCal:       {"name", "cal_api_key", "cal_id", "cal_timezone"},
}

// --- Methods ---

// List returns the integrations available to the account.
// GET /integrations
func (c *Client) List(ctx context.Context) (jsonvalue.Value, error) {
	return c.r.Get(ctx, "integrations", nil)
}

// CreateCustomAPI creates a custom API integration.
// POST /integrations/custom-api
func (c *Client) CreateCustomAPI(ctx context.Context, req CustomAPIRequest) (jsonvalue.Value, error) {
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	if req.RequestTimeout <= 0 {
		req.RequestTimeout = DefaultRequestTimeout
	}
	req.IntegrationType = TypeCustomAPI
	return c.r.Post(ctx, "integrations/custom-api", req)
}

// CreateCal creates a Cal.com integration.
// POST /integrations/cal
func (c *Client) CreateCal(ctx context.Context, req CalRequest) (jsonvalue.Value, error) {
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	req.IntegrationType = TypeCal
	return c.r.Post(ctx, "integrations/cal", req)
}

// CreateFromJSON creates an integration from a complete document. The
// integration_type member selects the endpoint; the document is sent as is.
func (c *Client) CreateFromJSON(ctx context.Context, doc map[string]any) (jsonvalue.Value, error) {
	if len(doc) == 0 {
		return jsonvalue.Value{}, rest.Required("integration")
	}
	kind, _ := doc["integration_type"].(string)
	if kind == "" {
		return jsonvalue.Value{}, rest.Required("integration_type")
	}
	fields, ok := requiredByType[kind]
	if !ok {
		return jsonvalue.Value{}, &sdkerrors.ArgumentError{
			Param:  "integration_type",
			Reason: fmt.Sprintf("unsupported integration type %q", kind),
		}
	}
	for _, f := range fields {
		if v, present := doc[f]; !present || v == nil || v == "" {
			return jsonvalue.Value{}, rest.Required(f)
		}
	}

	path := "integrations/custom-api"
	if kind == TypeCal {
		path = "integrations/cal"
	}
	return c.r.Post(ctx, path, doc)
}

// ListForAgent returns the integrations attached to an agent.
// GET /agents/{id}/integrations
func (c *Client) ListForAgent(ctx context.Context, agentID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("agent_id", agentID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Get(ctx, rest.Path("agents", agentID, "integrations"), nil)
}

// AddToAgent attaches an existing integration to an agent.
// POST /agents/{id}/integrations
func (c *Client) AddToAgent(ctx context.Context, agentID, integrationID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("agent_id", agentID); err != nil {
		return jsonvalue.Value{}, err
	}
	req := addToAgentRequest{IntegrationID: integrationID}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, rest.Path("agents", agentID, "integrations"), req)
}

// RemoveFromAgent detaches an integration from an agent.
// DELETE /agents/{id}/integrations/{integration_id}
func (c *Client) RemoveFromAgent(ctx context.Context, agentID, integrationID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("agent_id", agentID); err != nil {
		return jsonvalue.Value{}, err
	}
	if err := rest.RequireID("integration_id", integrationID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Delete(ctx, rest.Path("agents", agentID, "integrations", integrationID))
}

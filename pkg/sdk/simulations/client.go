// Package simulations provides the Simulations service client for the OmniDimension API SDK.
//
// A simulation places scripted test calls against an agent and reports how
// each scenario went.
package simulations

import (
	"context"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// Defaults applied by Create when a count is not positive.
const (
	DefaultPageSize                 = 10
	DefaultNumberOfCallsToMake      = 1
	DefaultConcurrentCallCount      = 3
	DefaultMaxCallDurationInMinutes = 3
)

// Client provides access to the Simulations API.
type Client struct {
	r *rest.Requester
}

// NewClient creates a new simulations client.
func NewClient(r *rest.Requester) *Client {
	return &Client{r: r}
}

// --- Types ---

// Voice selects a caller voice for a scenario.
type Voice struct {
	ID       string `json:"id" validate:"required"`
	Provider string `json:"provider" validate:"required"`
}

// Scenario is one scripted test conversation.
type Scenario struct {
	Name           string  `json:"name" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	ExpectedResult string  `json:"expected_result" validate:"required"`
	SelectedVoices []Voice `json:"selected_voices,omitempty" validate:"dive"`
}

// CreateRequest is the request to create a simulation.
type CreateRequest struct {
	Name                     string     `json:"name" validate:"required"`
	AgentID                  int64      `json:"agent_id" validate:"required"`
	NumberOfCallToMake       int        `json:"number_of_call_to_make"`
	ConcurrentCallCount      int        `json:"concurrent_call_count"`
	MaxCallDurationInMinutes int        `json:"max_call_duration_in_minutes"`
	Scenarios                []Scenario `json:"scenarios,omitempty" validate:"dive"`
}

// --- Methods ---

// Create creates a simulation.
// POST /simulations
func (c *Client) Create(ctx context.Context, req CreateRequest) (jsonvalue.Value, error) {
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	if req.NumberOfCallToMake <= 0 {
		req.NumberOfCallToMake = DefaultNumberOfCallsToMake
	}
	if req.ConcurrentCallCount <= 0 {
		req.ConcurrentCallCount = DefaultConcurrentCallCount
	}
	if req.MaxCallDurationInMinutes <= 0 {
		req.MaxCallDurationInMinutes = DefaultMaxCallDurationInMinutes
	}
	return c.r.Post(ctx, "simulations", req)
}

// List returns a page of simulations.
// GET /simulations?pageno=&pagesize=
func (c *Client) List(ctx context.Context, page, pageSize int) (jsonvalue.Value, error) {
	return c.r.Get(ctx, "simulations", rest.Page(page, pageSize, DefaultPageSize))
}

// Get returns a simulation with its progress and results.
// GET /simulations/{id}
func (c *Client) Get(ctx context.Context, simulationID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("simulation_id", simulationID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Get(ctx, rest.Path("simulations", simulationID), nil)
}

// Update changes a simulation that is not running.
// PUT /simulations/{id}
func (c *Client) Update(ctx context.Context, simulationID int64, data map[string]any) (jsonvalue.Value, error) {
	if err := rest.RequireID("simulation_id", simulationID); err != nil {
		return jsonvalue.Value{}, err
	}
	if len(data) == 0 {
		return jsonvalue.Value{}, rest.Required("data")
	}
	return c.r.Put(ctx, rest.Path("simulations", simulationID), data)
}

// Delete deactivates a simulation, stopping it first if it is running.
// DELETE /simulations/{id}
func (c *Client) Delete(ctx context.Context, simulationID int64) (jsonvalue.Value, error) {
	if err := rest.RequireID("simulation_id", simulationID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Delete(ctx, rest.Path("simulations", simulationID))
}

// Start begins placing the simulation's test calls.
// POST /simulations/{id}/start
func (c *Client) Start(ctx context.Context, simulationID int64) (jsonvalue.Value, error) {
	return c.action(ctx, simulationID, "start", map[string]any{})
}

// Stop stops a running simulation and hangs up its calls.
// POST /simulations/{id}/stop
func (c *Client) Stop(ctx context.Context, simulationID int64) (jsonvalue.Value, error) {
	return c.action(ctx, simulationID, "stop", nil)
}

// EnhancePrompt asks for prompt suggestions based on a completed simulation.
// POST /simulations/{id}/enhance-prompt
func (c *Client) EnhancePrompt(ctx context.Context, simulationID int64) (jsonvalue.Value, error) {
	return c.action(ctx, simulationID, "enhance-prompt", nil)
}

func (c *Client) action(ctx context.Context, simulationID int64, verb string, body any) (jsonvalue.Value, error) {
	if err := rest.RequireID("simulation_id", simulationID); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, rest.Path("simulations", simulationID, verb), body)
}

// Package phonenumbers provides the Phone Numbers service client for the OmniDimension API SDK.
package phonenumbers

import (
	"context"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// DefaultPageSize is used by List when pageSize is not positive.
const DefaultPageSize = 30

// Client provides access to the Phone Numbers API.
type Client struct {
	r *rest.Requester
}

// NewClient creates a new phone numbers client.
func NewClient(r *rest.Requester) *Client {
	return &Client{r: r}
}

type attachRequest struct {
	PhoneNumberID int64 `json:"phone_number_id" validate:"required"`
	AgentID       int64 `json:"agent_id" validate:"required"`
}

type detachRequest struct {
	PhoneNumberID int64 `json:"phone_number_id" validate:"required"`
}

// List returns the phone numbers imported into the account.
// GET /phone_number/list?pageno=&pagesize=
func (c *Client) List(ctx context.Context, page, pageSize int) (jsonvalue.Value, error) {
	return c.r.Get(ctx, "phone_number/list", rest.Page(page, pageSize, DefaultPageSize))
}

// Attach routes a phone number to an agent.
// POST /phone_number/attach
func (c *Client) Attach(ctx context.Context, phoneNumberID, agentID int64) (jsonvalue.Value, error) {
	req := attachRequest{PhoneNumberID: phoneNumberID, AgentID: agentID}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "phone_number/attach", req)
}

// Detach removes a phone number from whichever agent it is attached to.
// POST /phone_number/detach
func (c *Client) Detach(ctx context.Context, phoneNumberID int64) (jsonvalue.Value, error) {
	req := detachRequest{PhoneNumberID: phoneNumberID}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "phone_number/detach", req)
}

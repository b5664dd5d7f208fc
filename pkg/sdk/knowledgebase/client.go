// Package knowledgebase provides the Knowledge Base service client for the OmniDimension API SDK.
//
// Files are uploaded as base64 text in a JSON body and attached to agents by ID.
package knowledgebase

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// DefaultFileType is sent by CanUpload when no type is given.
const DefaultFileType = "pdf"

// Client provides access to the Knowledge Base API.
type Client struct {
	r *rest.Requester
}

// NewClient creates a new knowledge base client.
func NewClient(r *rest.Requester) *Client {
	return &Client{r: r}
}

// --- Types ---

// UploadRequest uploads one file.
type UploadRequest struct {
	// File is the base64-encoded file content.
	File     string `json:"file" validate:"required"`
	Filename string `json:"filename" validate:"required"`
}

type canUploadRequest struct {
	FileSize int64  `json:"file_size" validate:"required"`
	FileType string `json:"file_type"`
}

type deleteRequest struct {
	FileID int64 `json:"file_id" validate:"required"`
}

type attachRequest struct {
	FileIDs   []int64 `json:"file_ids" validate:"required,min=1"`
	AgentID   int64   `json:"agent_id" validate:"required"`
	WhenToUse string  `json:"when_to_use,omitempty"`
}

// --- Methods ---

// List returns every knowledge base file in the account.
// GET /knowledge_base/list
func (c *Client) List(ctx context.Context) (jsonvalue.Value, error) {
	return c.r.Get(ctx, "knowledge_base/list", nil)
}

// Upload uploads base64-encoded file content.
// POST /knowledge_base/create
func (c *Client) Upload(ctx context.Context, req UploadRequest) (jsonvalue.Value, error) {
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "knowledge_base/create", req)
}

// UploadFile reads a local file, encodes it and uploads it under its base name.
func (c *Client) UploadFile(ctx context.Context, path string) (jsonvalue.Value, error) {
	if path == "" {
		return jsonvalue.Value{}, rest.Required("path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return jsonvalue.Value{}, &sdkerrors.ArgumentError{Param: "path", Reason: err.Error()}
	}
	return c.Upload(ctx, UploadRequest{
		File:     base64.StdEncoding.EncodeToString(data),
		Filename: filepath.Base(path),
	})
}

// CanUpload asks whether a file of the given size and type fits the account quota.
// POST /knowledge_base/can_upload
func (c *Client) CanUpload(ctx context.Context, fileSize int64, fileType string) (jsonvalue.Value, error) {
	if fileType == "" {
		fileType = DefaultFileType
	}
	req := canUploadRequest{FileSize: fileSize, FileType: fileType}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "knowledge_base/can_upload", req)
}

// Delete removes a file from the knowledge base.
// POST /knowledge_base/delete
func (c *Client) Delete(ctx context.Context, fileID int64) (jsonvalue.Value, error) {
	req := deleteRequest{FileID: fileID}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "knowledge_base/delete", req)
}

// Attach makes files available to an agent. whenToUse tells the agent when to consult them.
// POST /knowledge_base/attach
func (c *Client) Attach(ctx context.Context, fileIDs []int64, agentID int64, whenToUse string) (jsonvalue.Value, error) {
	req := attachRequest{FileIDs: fileIDs, AgentID: agentID, WhenToUse: whenToUse}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "knowledge_base/attach", req)
}

// Detach removes files from an agent.
// POST /knowledge_base/detach
func (c *Client) Detach(ctx context.Context, fileIDs []int64, agentID int64) (jsonvalue.Value, error) {
	req := attachRequest{FileIDs: fileIDs, AgentID: agentID}
	if err := rest.Validate(req); err != nil {
		return jsonvalue.Value{}, err
	}
	return c.r.Post(ctx, "knowledge_base/detach", req)
}

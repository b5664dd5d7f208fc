package knowledgebase_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/knowledgebase"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/testutil"
)

func TestList(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.OnJSON("GET", "/knowledge_base/list", http.StatusOK, testutil.Success(testutil.FixtureKnowledgeBaseFiles()))

	result, err := mock.NewClient(t).KnowledgeBase.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "faq.pdf", result.Get("0.name").Str())
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.pdf")
	content := []byte("%PDF-1.4 test")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	mock := testutil.NewMockServer(t)
	mock.On("POST", "/knowledge_base/create", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{
			"file":     base64.StdEncoding.EncodeToString(content),
			"filename": "faq.pdf",
		})
		testutil.JSONResponse(t, w, testutil.Success(map[string]any{"id": 55}))
	})

	result, err := mock.NewClient(t).KnowledgeBase.UploadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(55), result.Get("id").Int())
}

func TestUploadFileMissing(t *testing.T) {
	mock := testutil.NewMockServer(t)
	_, err := mock.NewClient(t).KnowledgeBase.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

	var argErr *sdkerrors.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "path", argErr.Param)
	assert.Contains(t, argErr.Reason, "nope.pdf")
	assert.Equal(t, "invalid_argument", sdkerrors.Kind(err))
	assert.Zero(t, mock.Hits())
}

func TestUploadRequiresFilename(t *testing.T) {
	mock := testutil.NewMockServer(t)
	_, err := mock.NewClient(t).KnowledgeBase.Upload(context.Background(), knowledgebase.UploadRequest{File: "Zm9v"})

	var argErr *sdkerrors.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "filename", argErr.Param)
}

func TestCanUploadDefaultsType(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/knowledge_base/can_upload", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{"file_size": 20480, "file_type": "pdf"})
		testutil.JSONResponse(t, w, map[string]any{"can_upload": true})
	})

	result, err := mock.NewClient(t).KnowledgeBase.CanUpload(context.Background(), 20480, "")
	require.NoError(t, err)
	assert.True(t, result.Get("can_upload").Bool())
}

func TestDelete(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/knowledge_base/delete", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{"file_id": 55})
		testutil.JSONResponse(t, w, map[string]any{"success": true})
	})

	_, err := mock.NewClient(t).KnowledgeBase.Delete(context.Background(), 55)
	require.NoError(t, err)
}

func TestAttachAndDetach(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/knowledge_base/attach", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{
			"file_ids":    []int{55, 56},
			"agent_id":    101,
			"when_to_use": "pricing questions",
		})
		testutil.JSONResponse(t, w, map[string]any{"success": true})
	})
	mock.On("POST", "/knowledge_base/detach", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{"file_ids": []int{55}, "agent_id": 101})
		testutil.JSONResponse(t, w, map[string]any{"success": true})
	})

	client := mock.NewClient(t)
	_, err := client.KnowledgeBase.Attach(context.Background(), []int64{55, 56}, 101, "pricing questions")
	require.NoError(t, err)
	_, err = client.KnowledgeBase.Detach(context.Background(), []int64{55}, 101)
	require.NoError(t, err)
}

func TestAttachRequiresFiles(t *testing.T) {
	mock := testutil.NewMockServer(t)
	_, err := mock.NewClient(t).KnowledgeBase.Attach(context.Background(), nil, 101, "")

	var argErr *sdkerrors.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "file_ids", argErr.Param)
	assert.Zero(t, mock.Hits())
}

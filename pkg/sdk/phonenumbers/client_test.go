package phonenumbers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/testutil"
)

func TestList(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.On("GET", "/phone_number/list", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertQuery(t, r, "pageno", "1")
		testutil.AssertQuery(t, r, "pagesize", "10")
		testutil.JSONResponse(t, w, testutil.Success(testutil.FixturePhoneNumbers()))
	})

	result, err := mock.NewClient(t).PhoneNumbers.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())
	assert.Equal(t, "+15550000001", result.Get("0.phone_number").Str())
}

func TestAttach(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/phone_number/attach", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{"phone_number_id": 7, "agent_id": 101})
		testutil.JSONResponse(t, w, map[string]any{"success": true, "message": "attached"})
	})

	result, err := mock.NewClient(t).PhoneNumbers.Attach(context.Background(), 7, 101)
	require.NoError(t, err)
	assert.Equal(t, "attached", result.Get("message").Str())
}

func TestAttachEnvelopeFailure(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.OnJSON("POST", "/phone_number/attach", http.StatusOK, testutil.Failure("phone number already in use"))

	_, err := mock.NewClient(t).PhoneNumbers.Attach(context.Background(), 7, 101)
	var apiErr *sdkerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "phone number already in use", apiErr.Message)
}

func TestDetach(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/phone_number/detach", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{"phone_number_id": 8})
		testutil.JSONResponse(t, w, map[string]any{"success": true})
	})

	_, err := mock.NewClient(t).PhoneNumbers.Detach(context.Background(), 8)
	require.NoError(t, err)
}

func TestAttachRequiresIDs(t *testing.T) {
	mock := testutil.NewMockServer(t)
	client := mock.NewClient(t)

	_, err := client.PhoneNumbers.Attach(context.Background(), 7, 0)
	var argErr *sdkerrors.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "agent_id", argErr.Param)

	_, err = client.PhoneNumbers.Detach(context.Background(), 0)
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "phone_number_id", argErr.Param)

	assert.Zero(t, mock.Hits())
}

package sdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/envelope"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/testutil"
)

func TestNewRequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   ", "short"} {
		client, err := sdk.New(sdk.Config{APIKey: key})
		assert.Nil(t, client)
		assert.True(t, sdkerrors.IsConfiguration(err), "key %q: %v", key, err)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Run("no env", func(t *testing.T) {
		t.Setenv(sdk.EnvAPIKey, "")
		t.Setenv(sdk.EnvLegacyAPIKey, "")
		_, err := sdk.NewFromEnv(sdk.Config{})
		assert.True(t, sdkerrors.IsConfiguration(err))
	})

	t.Run("primary wins over legacy", func(t *testing.T) {
		t.Setenv(sdk.EnvAPIKey, "primary_key_123")
		t.Setenv(sdk.EnvLegacyAPIKey, "legacy_key_456")
		assert.Equal(t, "primary_key_123", sdk.APIKeyFromEnv())
	})

	t.Run("legacy fallback", func(t *testing.T) {
		t.Setenv(sdk.EnvAPIKey, "")
		t.Setenv(sdk.EnvLegacyAPIKey, "legacy_key_456")
		client, err := sdk.NewFromEnv(sdk.Config{})
		require.NoError(t, err)
		assert.Equal(t, sdk.DefaultBaseURL, client.BaseURL())
	})
}

func TestNewMakesNoRequests(t *testing.T) {
	mock := testutil.NewMockServer(t)
	_, err := sdk.New(sdk.Config{BaseURL: mock.URL})
	require.Error(t, err)
	assert.Zero(t, mock.Hits())
}

func TestBaseURL(t *testing.T) {
	client, err := sdk.New(sdk.Config{APIKey: testutil.TestAPIKey, BaseURL: "http://localhost:8080/api/v1/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", client.BaseURL())

	for _, bad := range []string{"localhost:8080", "ftp://example.com", "://"} {
		_, err := sdk.New(sdk.Config{APIKey: testutil.TestAPIKey, BaseURL: bad})
		assert.True(t, sdkerrors.IsConfiguration(err), "base url %q", bad)
	}
}

func TestCustomEnvelope(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.OnRaw("GET", "/agents", http.StatusOK, `{"result":{"items":[1]}}`)

	client, err := sdk.New(sdk.Config{
		APIKey:  testutil.TestAPIKey,
		BaseURL: mock.URL,
		Envelope: envelope.Func(func(_ int, body []byte) (jsonvalue.Value, error) {
			v, err := jsonvalue.Parse(body)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			return v.Get("result.items"), nil
		}),
	})
	require.NoError(t, err)

	result, err := client.Agents.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "[1]", result.String())
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := sdk.New(sdk.Config{APIKey: testutil.TestAPIKey, BaseURL: base, Timeout: time.Second})
	require.NoError(t, err)

	_, err = client.PhoneNumbers.List(context.Background(), 1, 10)
	assert.True(t, sdkerrors.IsTransport(err), "got %v", err)
}

func TestConnectionResetIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("hijacking not supported")
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}))
	t.Cleanup(srv.Close)

	client, err := sdk.New(sdk.Config{APIKey: testutil.TestAPIKey, BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Calls.GetLog(context.Background(), 1)
	assert.Equal(t, "transport_error", sdkerrors.Kind(err))
}

func TestErrorStatusesAcrossResources(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.OnJSON("GET", "/agents", http.StatusUnauthorized, map[string]string{"error": "Invalid API key"})
	mock.OnJSON("GET", "/knowledge_base/list", http.StatusForbidden, map[string]string{"message": "Plan limit"})
	mock.OnJSON("GET", "/integrations", http.StatusBadRequest, map[string]any{"error": map[string]string{"message": "bad"}})
	client := mock.NewClient(t)
	ctx := context.Background()

	_, err := client.Agents.List(ctx, 1, 10)
	assert.True(t, sdkerrors.IsUnauthorized(err))
	_, err = client.KnowledgeBase.List(ctx)
	assert.True(t, sdkerrors.IsForbidden(err))
	_, err = client.Integrations.List(ctx)
	assert.True(t, sdkerrors.IsBadRequest(err))
	assert.EqualError(t, err, "API error (400): bad")
}

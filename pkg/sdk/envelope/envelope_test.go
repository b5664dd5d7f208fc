package envelope

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

func TestStandardUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"status success with data", `{"status":"success","data":[{"id":1}]}`, `[{"id":1}]`},
		{"success flag with data", `{"success":true,"data":{"id":5}}`, `{"id":5}`},
		{"numeric status with data", `{"status":200,"data":null}`, `null`},
		{"status without data", `{"status":"success","message":"attached"}`, `{"status":"success","message":"attached"}`},
		{"no envelope", `{"bots":[],"total":0}`, `{"bots":[],"total":0}`},
		{"array body", `[1,2,3]`, `[1,2,3]`},
		{"data without marker", `{"data":[1]}`, `{"data":[1]}`},
		{"resource with failed status", `{"id":12,"name":"Booking regression","status":"failed"}`, `{"id":12,"name":"Booking regression","status":"failed"}`},
		{"resource with error status and message", `{"id":9001,"call_status":"busy","status":"error","message":"line busy"}`, `{"id":9001,"call_status":"busy","status":"error","message":"line busy"}`},
		{"success flag without data", `{"success":true,"status":"in_progress"}`, `{"success":true,"status":"in_progress"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Standard{}.Unwrap(200, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestStandardUnwrapFailure(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"status error", `{"status":"error","error":"agent limit reached"}`, "agent limit reached"},
		{"status failed", `{"status":"FAILED","error":"invalid number"}`, "invalid number"},
		{"success false without error", `{"success":false,"message":"quota exceeded"}`, "quota exceeded"},
		{"success false", `{"success":false,"error":{"message":"nope"}}`, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Standard{}.Unwrap(200, []byte(tt.body))
			var apiErr *sdkerrors.APIError
			require.True(t, stderrors.As(err, &apiErr))
			assert.Equal(t, 200, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestPassthrough(t *testing.T) {
	v, err := Passthrough{}.Unwrap(200, []byte(`{"status":"success","data":[1]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"status":"success","data":[1]}`, v.String())
}

func TestFunc(t *testing.T) {
	u := Func(func(_ int, body []byte) (jsonvalue.Value, error) {
		return jsonvalue.Parse(body)
	})
	v, err := u.Unwrap(201, []byte(`{"json":{"id":9}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), v.Get("json.id").Int())
}

// Package envelope unwraps the success/error envelope some OmniDimension
// endpoints put around their payloads.
//
// The exact envelope shape is not fixed across endpoints, so the client takes
// an Unwrapper and defaults to Standard.
package envelope

import (
	"strings"

	"github.com/tidwall/gjson"

	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// Unwrapper turns a 2xx response body into the value handed to the caller.
// Returning an *errors.APIError signals a failure reported inside the envelope.
type Unwrapper interface {
	Unwrap(status int, body []byte) (jsonvalue.Value, error)
}

// Func adapts a plain function to Unwrapper.
type Func func(status int, body []byte) (jsonvalue.Value, error)

// Unwrap calls f.
func (f Func) Unwrap(status int, body []byte) (jsonvalue.Value, error) {
	return f(status, body)
}

// Passthrough returns bodies unchanged.
type Passthrough struct{}

// Unwrap parses body and returns it as is.
func (Passthrough) Unwrap(_ int, body []byte) (jsonvalue.Value, error) {
	return jsonvalue.Parse(body)
}

// Standard recognizes {"status": ..., "data": ...} and {"success": ..., "data": ...}.
//
// A body counts as an envelope only when a status or success marker comes with
// a data or error member; resource documents with their own status field pass
// through untouched. success:false, or a status of "error", "failed",
// "failure" or "fail" alongside an error member, yields an APIError. An
// envelope carrying data yields data.
type Standard struct{}

// Unwrap implements Unwrapper.
func (Standard) Unwrap(status int, body []byte) (jsonvalue.Value, error) {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return jsonvalue.Parse(body)
	}

	marker := root.Get("status")
	success := root.Get("success")
	data := root.Get("data")
	errMember := root.Get("error")

	if success.Type == gjson.False || (errorStatus(marker) && errMember.Exists()) {
		return jsonvalue.Value{}, &sdkerrors.APIError{
			StatusCode: status,
			Message:    sdkerrors.MessageFromBody(body, "request failed"),
			Body:       body,
		}
	}

	if (marker.Exists() || success.Exists()) && data.Exists() {
		return jsonvalue.Parse([]byte(data.Raw))
	}
	return jsonvalue.Parse(body)
}

func errorStatus(marker gjson.Result) bool {
	if marker.Type != gjson.String {
		return false
	}
	switch strings.ToLower(marker.Str) {
	case "error", "failed", "failure", "fail":
		return true
	}
	return false
}

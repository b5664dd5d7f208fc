// Package rest executes the single HTTP request behind every SDK method.
package rest

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/auth"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/envelope"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/jsonvalue"
)

// Options configures a Requester.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Auth       auth.Provider
	Envelope   envelope.Unwrapper
	Logger     *slog.Logger
	UserAgent  string
}

// Requester sends authenticated JSON requests relative to a base URL.
// It holds no per-request state and is safe for concurrent use.
type Requester struct {
	http     *resty.Client
	envelope envelope.Unwrapper
	log      *slog.Logger
}

// Request describes one call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// New creates a Requester.
func New(opts Options) *Requester {
	var c *resty.Client
	if opts.HTTPClient != nil {
		c = resty.NewWithClient(opts.HTTPClient)
	} else {
		c = resty.New()
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}

	c.SetBaseURL(opts.BaseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Auth != nil {
		provider := opts.Auth
		c.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
			return provider.Authenticate(req)
		})
	}

	env := opts.Envelope
	if env == nil {
		env = envelope.Standard{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Requester{http: c, envelope: env, log: log}
}

// Get sends a GET request.
func (r *Requester) Get(ctx context.Context, path string, query url.Values) (jsonvalue.Value, error) {
	return r.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request with a JSON body. A nil body sends no payload.
func (r *Requester) Post(ctx context.Context, path string, body any) (jsonvalue.Value, error) {
	return r.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request with a JSON body.
func (r *Requester) Put(ctx context.Context, path string, body any) (jsonvalue.Value, error) {
	return r.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete sends a DELETE request. Any 2xx answer yields {}; the body is not
// interpreted.
func (r *Requester) Delete(ctx context.Context, path string) (jsonvalue.Value, error) {
	return r.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Do sends req once and maps the outcome to a Value or a typed SDK error.
func (r *Requester) Do(ctx context.Context, req Request) (jsonvalue.Value, error) {
	requestID := uuid.NewString()

	hr := r.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if len(req.Query) > 0 {
		hr.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		hr.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	start := time.Now()
	resp, err := hr.Execute(req.Method, req.Path)
	if err != nil {
		r.log.Debug("omnidim request failed",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return jsonvalue.Value{}, &sdkerrors.TransportError{
			Op:        "send",
			Method:    req.Method,
			Path:      req.Path,
			RequestID: requestID,
			Err:       err,
		}
	}

	status := resp.StatusCode()
	body := resp.Body()
	r.log.Debug("omnidim request",
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
		slog.String("request_id", requestID),
	)

	if status < 200 || status >= 300 {
		return jsonvalue.Value{}, &sdkerrors.APIError{
			StatusCode: status,
			Message:    sdkerrors.MessageFromBody(body, statusText(resp)),
			Body:       body,
			RequestID:  requestID,
		}
	}

	if req.Method == http.MethodDelete || status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return jsonvalue.EmptyObject(), nil
	}

	if _, err := jsonvalue.Parse(body); err != nil {
		return jsonvalue.Value{}, &sdkerrors.TransportError{
			Op:        "decode",
			Method:    req.Method,
			Path:      req.Path,
			RequestID: requestID,
			Err:       fmt.Errorf("%w (status %d)", sdkerrors.ErrMalformedJSON, status),
		}
	}

	v, err := r.envelope.Unwrap(status, body)
	if err != nil {
		var apiErr *sdkerrors.APIError
		if stderrors.As(err, &apiErr) && apiErr.RequestID == "" {
			apiErr.RequestID = requestID
		}
		return jsonvalue.Value{}, err
	}
	return v, nil
}

func statusText(resp *resty.Response) string {
	if s := resp.Status(); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode())
}

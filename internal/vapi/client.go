package vapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the Vapi REST API.
//
// Calls are blocking network operations bounded by the client timeout plus a
// small retry budget; callers pass a context for cancellation.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: c, log: log}
}

// apiError is the platform's error envelope.
type apiError struct {
	// Message is a string for most failures but an array for validation ones.
	Message json.RawMessage `json:"message"`
	Reason  string          `json:"error"`
}

func (e apiError) text() string {
	if len(e.Message) > 0 {
		var s string
		if err := json.Unmarshal(e.Message, &s); err == nil {
			return s
		}
		return string(e.Message)
	}
	return e.Reason
}

// CreateCall asks the platform to place a new outbound call.
func (c *Client) CreateCall(ctx context.Context, req CreateCallRequest) (*Call, error) {
	var call Call
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&call).
		SetError(&apiErr).
		Post("/call")
	if err != nil {
		return nil, fmt.Errorf("vapi: create call: %w", err)
	}
	if resp.IsError() {
		c.log.Error("vapi create call rejected", "status", resp.StatusCode(), "message", apiErr.text())
		return nil, fmt.Errorf("vapi: create call: %s (status %d)", apiErr.text(), resp.StatusCode())
	}

	c.log.Info("vapi call created", "call_id", call.ID)
	return &call, nil
}

// GetCall fetches the current snapshot of a call.
func (c *Client) GetCall(ctx context.Context, id string) (*Call, error) {
	var call Call
	var apiErr apiError

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&call).
		SetError(&apiErr).
		Get("/call/" + id)
	if err != nil {
		return nil, fmt.Errorf("vapi: get call %s: %w", id, err)
	}
	if resp.IsError() {
		c.log.Error("vapi get call rejected", "call_id", id, "status", resp.StatusCode(), "message", apiErr.text())
		return nil, fmt.Errorf("vapi: get call %s: %s (status %d)", id, apiErr.text(), resp.StatusCode())
	}

	return &call, nil
}

// Package planclient performs the single outbound exchange with the remote
// planning service.
package planclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"air-trip-planner/internal/trip"
)

const maxResponseBytes = 4 << 20

// ErrNoEndpoint is reported when no planning endpoint is configured.
var ErrNoEndpoint = errors.New("no planner endpoint configured")

// TransportError covers network failures and non-2xx responses.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("planner transport: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("planner transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is a 2xx response whose body is not a valid
// itinerary. It is handled exactly like a TransportError.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("planner response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsTransportFailure reports whether err should take the failure branch.
func IsTransportFailure(err error) bool {
	var tErr *TransportError
	var mErr *MalformedResponseError
	return errors.As(err, &tErr) || errors.As(err, &mErr)
}

// Result is the outcome of one exchange: either an itinerary or an error.
type Result struct {
	Itinerary trip.Itinerary
	Err       error
}

// OK reports whether the exchange produced an itinerary.
func (r Result) OK() bool {
	return r.Err == nil
}

// Client posts plan requests to the planning service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client. An empty endpoint makes every request fail
// immediately without network I/O.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Request sends req as JSON and decodes the itinerary from the response.
func (c *Client) Request(ctx context.Context, req trip.PlanRequest) Result {
	if c.endpoint == "" {
		return Result{Err: &TransportError{Err: ErrNoEndpoint}}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to marshal plan request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Err: &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{Err: &TransportError{Err: err}}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{Err: &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Err: &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", bytes.TrimSpace(data)),
		}}
	}

	itinerary, err := trip.DecodeItinerary(data)
	if err != nil {
		return Result{Err: &MalformedResponseError{Err: err}}
	}
	return Result{Itinerary: itinerary}
}

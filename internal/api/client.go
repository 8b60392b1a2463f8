package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dshills/driftgate/internal/drift"
)

const comparePath = "/api/compare"

// CompareRequest is the body sent to the comparison endpoint.
type CompareRequest struct {
	Environments []string `json:"environments"`
	Baseline     string   `json:"baseline"`
}

// Client provides access to the drift comparison API.
type Client struct {
	apiKey  string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a client for apiURL. A zero timeout waits indefinitely.
func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the full URL of the comparison endpoint.
func (c *Client) Endpoint() string {
	return c.apiURL + comparePath
}

// Compare posts the comparison request and decodes the response.
func (c *Client) Compare(ctx context.Context, cr CompareRequest) (*drift.Response, error) {
	if cr.Environments == nil {
		cr.Environments = []string{}
	}
	payload, err := json.Marshal(cr)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	// Parse before checking the status so error bodies can carry a message.
	if !json.Valid(body) {
		return nil, &ResponseFormatError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), bodyPreviewLen),
		}
	}
	var result drift.Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: result.Message}
	}

	return &result, nil
}

// Package agent implements the warehouse print agent: a small process
// that polls the fulfillment server for queued labels, writes them to a
// locally attached label printer, and reports the outcome back.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

const clientTimeout = 15 * time.Second

// Job is one claimed print job handed out by the server. LabelData
// arrives base64-encoded on the wire and is decoded by the JSON layer.
type Job struct {
	JobID       string `json:"job_id"`
	OrderID     string `json:"order_id"`
	LabelData   []byte `json:"label_data"`
	LabelFormat string `json:"label_format"`
	Attempt     int    `json:"attempt"`
}

type pollResponse struct {
	Jobs []Job `json:"jobs"`
}

type completeRequest struct {
	JobID   string `json:"job_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ClientConfig carries the connection settings for the server's print
// agent endpoints.
type ClientConfig struct {
	// BaseURL of the fulfillment server, e.g. "https://fulfillment.internal".
	BaseURL string
	// APIKey is the shared bearer token the server expects.
	APIKey string
	// AgentID identifies this agent in claims, e.g. "warehouse-1".
	AgentID string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the server's /print-agent endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	agentID    string
	httpClient *http.Client
}

// NewClient creates a print agent client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("base URL")
	}
	if cfg.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("API key")
	}
	if cfg.AgentID == "" {
		return nil, errs.NewValueIsRequiredError("agent ID")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		agentID:    cfg.AgentID,
		httpClient: httpClient,
	}, nil
}

// FetchJobs claims up to limit queued jobs from the server.
func (c *Client) FetchJobs(ctx context.Context, limit int) ([]Job, error) {
	url := c.baseURL + "/print-agent/poll?limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build poll request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll print jobs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poll print jobs: server returned %d: %s",
			resp.StatusCode, readErrorBody(resp.Body))
	}

	var payload pollResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode poll response: %w", err)
	}

	return payload.Jobs, nil
}

// Report sends the print outcome for a claimed job back to the server.
func (c *Client) Report(ctx context.Context, jobID string, success bool, errorDetail string) error {
	body, err := json.Marshal(completeRequest{
		JobID:   jobID,
		Success: success,
		Error:   errorDetail,
	})
	if err != nil {
		return fmt.Errorf("encode completion report: %w", err)
	}

	url := c.baseURL + "/print-agent/complete"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("report print job %s: %w", jobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("report print job %s: server returned %d: %s",
			jobID, resp.StatusCode, readErrorBody(resp.Body))
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Agent-ID", c.agentID)
}

func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 2048))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}

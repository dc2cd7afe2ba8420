package runpod

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/storyforge/renderkit/errors"
	"github.com/storyforge/renderkit/httpclient"
	"github.com/storyforge/renderkit/workflow"
)

// Terminal job statuses.
const (
	StatusCompleted           = "COMPLETED"
	StatusCompletedWithErrors = "COMPLETED_WITH_ERRORS"
	StatusFailed              = "FAILED"
)

// InlineImage is an image embedded in the run payload as a data URL.
type InlineImage struct {
	// Name is the synthetic filename the graph's loader nodes reference.
	Name string `json:"name"`
	// Image is the base64 data URL, e.g. "data:image/png;base64,...".
	Image string `json:"image"`
}

// RunInput is the inner payload of a run submission.
type RunInput struct {
	// Workflow is the node-only graph.
	Workflow map[string]*workflow.Node `json:"workflow"`
	// Images carries the inline assets the workflow references.
	Images []InlineImage `json:"images,omitempty"`
}

// OutputImage is one image in a completed job's output.
type OutputImage struct {
	Type string `json:"type"`
	// Data and Image both appear in the wild for the base64 payload,
	// depending on handler version.
	Data  string `json:"data,omitempty"`
	Image string `json:"image,omitempty"`
}

// Base64 returns whichever base64 payload field is populated.
func (o OutputImage) Base64() string {
	if o.Data != "" {
		return o.Data
	}
	return o.Image
}

// StatusResponse is the poll response for a job.
type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Output *struct {
		Images []OutputImage `json:"images"`
	} `json:"output,omitempty"`
}

// Terminal reports whether the status ends polling.
func (s *StatusResponse) Terminal() bool {
	switch s.Status {
	case StatusCompleted, StatusCompletedWithErrors, StatusFailed:
		return true
	}
	return false
}

// Client is the raw HTTP surface of a serverless endpoint.
type Client struct {
	http       *httpclient.Client
	endpointID string
}

// NewClient creates a client for the endpoint described by cfg.
func NewClient(cfg Config) (*Client, error) {
	hcfg := httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.HTTPTimeout,
	}
	if cfg.APIKey != "" {
		hcfg.Auth = httpclient.BearerAuth(cfg.APIKey)
	}
	hc, err := httpclient.New(hcfg)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, endpointID: cfg.EndpointID}, nil
}

// Run submits a job and returns its id.
func (c *Client) Run(ctx context.Context, input RunInput) (string, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/" + c.endpointID + "/run",
		Body:   map[string]any{"input": input},
	})
	if err != nil {
		detail := err.Error()
		if resp != nil && len(resp.Body) > 0 {
			detail = string(resp.Body)
		}
		return "", errors.Submission("runpod", detail)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", errors.Submission("runpod", fmt.Sprintf("decode response: %v", err))
	}
	if result.ID == "" {
		return "", errors.Submission("runpod", "response missing job id")
	}
	return result.ID, nil
}

// Status fetches the current state of a job.
func (c *Client) Status(ctx context.Context, jobID string) (*StatusResponse, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/" + c.endpointID + "/status/" + jobID,
	})
	if err != nil {
		return nil, err
	}

	var status StatusResponse
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &status, nil
}

// Health checks endpoint reachability.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/" + c.endpointID + "/health",
	})
	return err
}

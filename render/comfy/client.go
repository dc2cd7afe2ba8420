package comfy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/storyforge/renderkit/errors"
	"github.com/storyforge/renderkit/httpclient"
	"github.com/storyforge/renderkit/workflow"
)

// ImageRef identifies one image in the engine's asset store.
type ImageRef struct {
	Filename  string `json:"filename"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

// IsTemp reports whether the image is an intermediate/temporary artifact.
func (r ImageRef) IsTemp() bool {
	return r.Type == "temp"
}

// NodeOutput holds the images a single node produced.
type NodeOutput struct {
	Images []ImageRef `json:"images"`
}

// HistoryStatus carries the engine's reported job status.
type HistoryStatus struct {
	StatusStr string  `json:"status_str"`
	Completed bool    `json:"completed"`
	Messages  [][]any `json:"messages"`
}

// HistoryEntry is one job's record in the history payload.
type HistoryEntry struct {
	Outputs map[string]NodeOutput `json:"outputs"`
	Status  HistoryStatus         `json:"status"`
}

// JobError extracts the engine-reported error message, if any.
// Execution errors arrive as ["execution_error", {exception_message, node_type, ...}]
// entries in the status messages.
func (e *HistoryEntry) JobError() string {
	if e.Status.StatusStr != "error" && len(e.Status.Messages) == 0 {
		return ""
	}
	for _, msg := range e.Status.Messages {
		if len(msg) < 2 {
			continue
		}
		kind, _ := msg[0].(string)
		if kind != "execution_error" {
			continue
		}
		detail, ok := msg[1].(map[string]any)
		if !ok {
			continue
		}
		text, _ := detail["exception_message"].(string)
		if nodeType, ok := detail["node_type"].(string); ok && nodeType != "" {
			return fmt.Sprintf("%s: %s", nodeType, text)
		}
		if text != "" {
			return text
		}
	}
	if e.Status.StatusStr == "error" {
		return "execution reported error without detail"
	}
	return ""
}

// Client is the raw HTTP surface of a ComfyUI engine.
type Client struct {
	http *httpclient.Client
}

// NewClient creates a client for the engine at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// SubmitPrompt queues a node-only graph payload for execution and returns
// the engine-assigned prompt id.
func (c *Client) SubmitPrompt(ctx context.Context, payload map[string]*workflow.Node, clientID string) (string, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/prompt",
		Body: map[string]any{
			"prompt":    payload,
			"client_id": clientID,
		},
	})
	if err != nil {
		detail := err.Error()
		if resp != nil && len(resp.Body) > 0 {
			detail = string(resp.Body)
		}
		return "", errors.Submission("comfy", detail)
	}

	var result struct {
		PromptID string `json:"prompt_id"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", errors.Submission("comfy", fmt.Sprintf("decode response: %v", err))
	}
	if result.PromptID == "" {
		return "", errors.Submission("comfy", "response missing prompt_id")
	}
	return result.PromptID, nil
}

// History fetches the job record for a prompt id. A 200 without an entry
// for the id means the job is not yet known; that returns (nil, nil).
func (c *Client) History(ctx context.Context, promptID string) (*HistoryEntry, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/history/" + promptID,
	})
	if err != nil {
		return nil, err
	}

	var history map[string]HistoryEntry
	if err := json.Unmarshal(resp.Body, &history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	entry, ok := history[promptID]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// UploadImage uploads image bytes to the engine's asset store via
// multipart form and returns the server-assigned filename to reference
// in subsequent graphs.
func (c *Client) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/upload/image",
		Body: &httpclient.MultipartBody{
			Files: []httpclient.FileField{{
				FieldName: "image",
				FileName:  name,
				Data:      data,
			}},
			Fields: map[string]string{
				"overwrite": "true",
			},
		},
	})
	if err != nil {
		return "", errors.Upload(name, err)
	}

	var result struct {
		Name      string `json:"name"`
		Subfolder string `json:"subfolder"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", errors.Upload(name, fmt.Errorf("decode response: %w", err))
	}
	if result.Name == "" {
		return "", errors.Upload(name, fmt.Errorf("response missing name"))
	}
	if result.Subfolder != "" {
		return result.Subfolder + "/" + result.Name, nil
	}
	return result.Name, nil
}

// Download fetches raw image bytes from the engine's asset store.
func (c *Client) Download(ctx context.Context, ref ImageRef) ([]byte, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/view",
		Query: map[string]string{
			"filename":  ref.Filename,
			"subfolder": ref.Subfolder,
			"type":      ref.Type,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Ping checks engine reachability via the system stats endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/system_stats",
	})
	return err
}

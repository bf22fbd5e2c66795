package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xelth-com/planogo/internal/planogram"
)

// Client forwards persistence requests to an upstream planogram backend over
// JSON/HTTP. Useful when this instance runs as a branch-local node in front
// of a central server instead of owning the database itself.
type Client struct {
	BaseURL    string
	APIKey     string
	HttpClient *http.Client
}

// NewClient creates a remote layout client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// updateResponse is the upstream batch-update acknowledgement.
type updateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AddAssignment POSTs one new assignment.
func (c *Client) AddAssignment(ctx context.Context, p planogram.AddPayload) error {
	return c.post(ctx, "/api/planogram/assignments", p)
}

// DeleteAssignment asks the upstream to remove one assignment.
func (c *Client) DeleteAssignment(ctx context.Context, p planogram.DeletePayload) error {
	return c.post(ctx, "/api/planogram/assignments/delete", p)
}

// UpdateLayout sends the full-shelf snapshot to the batch-update endpoint.
func (c *Client) UpdateLayout(ctx context.Context, items []planogram.LayoutItem) error {
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/planogram/layout", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("layout update request failed: %w", err)
	}
	defer resp.Body.Close()

	var ack updateResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("failed to decode layout update response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !ack.Success {
		if ack.Message == "" {
			ack.Message = resp.Status
		}
		return fmt.Errorf("layout update rejected: %s", ack.Message)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upstream returned %s for %s", resp.Status, path)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

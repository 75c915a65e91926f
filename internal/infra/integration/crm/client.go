package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client pushes marketplace events into the sales CRM. The queue worker
// is its only caller.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type Event struct {
	Type       string `json:"type"`
	LeadID     string `json:"lead_id,omitempty"`
	VendorID   string `json:"vendor_id,omitempty"`
	PurchaseID string `json:"purchase_id,omitempty"`
	Company    string `json:"company,omitempty"`
	JobType    string `json:"job_type,omitempty"`
	OccurredAt string `json:"occurred_at,omitempty"`
}

func (c *Client) SyncEvent(ctx context.Context, event Event) error {
	url := fmt.Sprintf("%s/api/v1/events", c.baseURL)

	jsonBody, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal crm event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("crm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("crm sync failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

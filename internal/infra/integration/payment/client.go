package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the hosted payment processor. Checkout sessions carry
// lead_id/vendor_id metadata that comes back on the webhook.
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

func (c *Client) CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CheckoutSession, error) {
	url := fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL)

	payload := createSessionRequest{
		AmountCents: input.AmountCents,
		Currency:    "usd",
		Description: input.Description,
		SuccessURL:  input.SuccessURL,
		CancelURL:   input.CancelURL,
		Metadata:    input.Metadata,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment processor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("create checkout session failed (status %d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	return &session, nil
}

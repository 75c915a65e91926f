package payment

type CreateCheckoutInput struct {
	AmountCents int64
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type createSessionRequest struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata"`
}

type CheckoutSession struct {
	ID              string `json:"id"`
	PaymentIntentID string `json:"payment_intent"`
	URL             string `json:"url"`
}

// Event types delivered to the webhook endpoint.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventChargeRefunded    = "charge.refunded"
)

type WebhookEvent struct {
	ID   string           `json:"id"`
	Type string           `json:"type"`
	Data WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	PaymentIntentID string            `json:"payment_intent"`
	AmountCents     int64             `json:"amount_cents"`
	Metadata        map[string]string `json:"metadata"`
}

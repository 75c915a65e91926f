package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/infra/http/middleware"
	"github.com/decomly/lead-broker/internal/infra/integration/payment"
)

type paymentReconciler interface {
	Execute(ctx context.Context, event payment.WebhookEvent) error
}

// WebhookHandler receives payment-processor events. After the signature
// checks out it always acknowledges: a 5xx here would make the
// processor retry-storm over transient internal faults, so those are
// logged for out-of-band follow-up instead.
type WebhookHandler struct {
	Reconciler paymentReconciler
	Secret     string
	Logger     *zap.Logger
}

func NewWebhookHandler(reconciler paymentReconciler, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		Reconciler: reconciler,
		Secret:     secret,
		Logger:     logger,
	}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.Secret == "" {
		writeJSON(w, http.StatusServiceUnavailable, errorEnvelope{Error: errorBody{
			Code:    "not_configured",
			Message: "webhook secret is not configured",
		}})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    "bad_request",
			Message: "unreadable body",
		}})
		return
	}

	signature := r.Header.Get(payment.SignatureHeader)
	if !payment.VerifySignature(body, signature, h.Secret) {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    "invalid_signature",
			Message: "missing or invalid webhook signature",
		}})
		return
	}

	var event payment.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		badJSON(w)
		return
	}

	if err := h.Reconciler.Execute(r.Context(), event); err != nil {
		h.Logger.Error("webhook reconciliation failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
		middleware.RecordWebhookEvent(event.Type, "error")
	} else {
		middleware.RecordWebhookEvent(event.Type, "ok")
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

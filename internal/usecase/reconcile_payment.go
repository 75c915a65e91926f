package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/integration/payment"
	"github.com/decomly/lead-broker/internal/infra/queue"
)

// ReconcilePaymentUseCase turns processor webhook events into durable
// state. Completion is idempotent: the pending -> completed flip is a
// conditional update, and the counters move only when that flip
// actually happened.
type ReconcilePaymentUseCase struct {
	Purchases entity.PurchaseRepositoryInterface
	Leads     entity.LeadRepositoryInterface
	Vendors   entity.VendorRepositoryInterface
	Producer  queue.EventProducerInterface
	Logger    *zap.Logger
}

func NewReconcilePaymentUseCase(
	purchases entity.PurchaseRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	vendors entity.VendorRepositoryInterface,
	producer queue.EventProducerInterface,
	logger *zap.Logger,
) *ReconcilePaymentUseCase {
	return &ReconcilePaymentUseCase{
		Purchases: purchases,
		Leads:     leads,
		Vendors:   vendors,
		Producer:  producer,
		Logger:    logger,
	}
}

// Execute never fails on expected oddities (missing metadata, unknown
// purchase, duplicate delivery) — those are logged and swallowed so the
// processor is always acknowledged. It returns an error only for
// unexpected store failures, which the handler logs and still acks.
func (uc *ReconcilePaymentUseCase) Execute(ctx context.Context, event payment.WebhookEvent) error {
	switch event.Type {
	case payment.EventCheckoutCompleted:
		return uc.handleCheckoutCompleted(ctx, event)
	case payment.EventChargeRefunded:
		return uc.handleRefund(ctx, event)
	default:
		uc.Logger.Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}
}

func (uc *ReconcilePaymentUseCase) handleCheckoutCompleted(ctx context.Context, event payment.WebhookEvent) error {
	leadID := event.Data.Metadata["lead_id"]
	vendorID := event.Data.Metadata["vendor_id"]
	if leadID == "" || vendorID == "" {
		uc.Logger.Warn("completion event without lead/vendor metadata, ignoring",
			zap.String("event_id", event.ID))
		return nil
	}

	purchase, err := uc.Purchases.FindPending(ctx, leadID, vendorID)
	if err != nil {
		if errors.Is(err, entity.ErrPurchaseNotFound) {
			uc.Logger.Info("no pending purchase for completion event, ignoring",
				zap.String("lead_id", leadID), zap.String("vendor_id", vendorID))
			return nil
		}
		return fmt.Errorf("look up pending purchase: %w", err)
	}

	completed, err := uc.Purchases.CompletePending(ctx, purchase.ID)
	if err != nil {
		return fmt.Errorf("complete purchase: %w", err)
	}
	if !completed {
		// Duplicate delivery; first one already counted.
		uc.Logger.Info("purchase already completed, duplicate event",
			zap.String("purchase_id", purchase.ID))
		return nil
	}

	if err := uc.Leads.IncrementSoldCount(ctx, leadID); err != nil {
		uc.Logger.Error("purchase completed but sold_count increment failed",
			zap.String("lead_id", leadID), zap.Error(err))
	}
	if err := uc.Vendors.IncrementLeadsPurchased(ctx, vendorID); err != nil {
		uc.Logger.Error("purchase completed but leads_purchased increment failed",
			zap.String("vendor_id", vendorID), zap.Error(err))
	}

	published := queue.MarketplaceEvent{
		Type:            queue.EventPurchaseCompleted,
		LeadID:          leadID,
		VendorID:        vendorID,
		PurchaseID:      purchase.ID,
		PaymentIntentID: event.Data.PaymentIntentID,
	}
	if err := uc.Producer.PublishEvent(ctx, published); err != nil {
		uc.Logger.Error("purchase completed but event publish failed",
			zap.String("purchase_id", purchase.ID), zap.Error(err))
	}

	return nil
}

func (uc *ReconcilePaymentUseCase) handleRefund(ctx context.Context, event payment.WebhookEvent) error {
	ref := event.Data.PaymentIntentID
	if ref == "" {
		uc.Logger.Warn("refund event without payment intent, ignoring",
			zap.String("event_id", event.ID))
		return nil
	}

	err := uc.Purchases.MarkRefundedByPaymentIntent(ctx, ref)
	if err != nil {
		if errors.Is(err, entity.ErrPurchaseNotFound) {
			uc.Logger.Info("refund event for unknown payment intent, ignoring",
				zap.String("payment_intent", ref))
			return nil
		}
		return fmt.Errorf("mark purchase refunded: %w", err)
	}

	published := queue.MarketplaceEvent{
		Type:            queue.EventPurchaseRefunded,
		PaymentIntentID: ref,
	}
	if err := uc.Producer.PublishEvent(ctx, published); err != nil {
		uc.Logger.Error("refund recorded but event publish failed",
			zap.String("payment_intent", ref), zap.Error(err))
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
)

type RecordOutcomeInput struct {
	Outcome      string           `json:"outcome"`
	OutcomeValue *decimal.Decimal `json:"outcome_value,omitempty"`
	OutcomeNotes *string          `json:"outcome_notes,omitempty"`
}

type RecordOutcomeUseCase struct {
	Purchases entity.PurchaseRepositoryInterface
	Vendors   entity.VendorRepositoryInterface
	Logger    *zap.Logger
}

func NewRecordOutcomeUseCase(
	purchases entity.PurchaseRepositoryInterface,
	vendors entity.VendorRepositoryInterface,
	logger *zap.Logger,
) *RecordOutcomeUseCase {
	return &RecordOutcomeUseCase{
		Purchases: purchases,
		Vendors:   vendors,
		Logger:    logger,
	}
}

func (uc *RecordOutcomeUseCase) Execute(ctx context.Context, vendorID, purchaseID string, input RecordOutcomeInput) (*entity.LeadPurchase, error) {
	outcome := entity.PurchaseOutcome(input.Outcome)
	if !outcome.Valid() {
		return nil, &ValidationError{Field: "outcome", Message: "must be one of: won lost no_response"}
	}
	if input.OutcomeValue != nil && input.OutcomeValue.IsNegative() {
		return nil, &ValidationError{Field: "outcome_value", Message: "must not be negative"}
	}

	// Ownership check doubles as the existence check: a purchase the
	// caller does not own looks exactly like one that does not exist.
	purchase, err := uc.Purchases.FindByIDAndVendor(ctx, purchaseID, vendorID)
	if err != nil {
		if errors.Is(err, entity.ErrPurchaseNotFound) {
			return nil, &NotFoundError{Resource: "purchase"}
		}
		return nil, fmt.Errorf("load purchase: %w", err)
	}

	now := time.Now()
	if err := uc.Purchases.UpdateOutcome(ctx, purchase.ID, outcome, input.OutcomeValue, input.OutcomeNotes, now); err != nil {
		return nil, fmt.Errorf("record outcome: %w", err)
	}

	purchase.Outcome = &outcome
	purchase.OutcomeValue = input.OutcomeValue
	purchase.OutcomeNotes = input.OutcomeNotes
	purchase.OutcomeUpdatedAt = &now

	// The outcome write already succeeded; losing it over a counter
	// update would be worse than a stale counter.
	if outcome == entity.OutcomeWon {
		if err := uc.Vendors.IncrementLeadsClosed(ctx, vendorID); err != nil {
			uc.Logger.Error("outcome recorded but leads_closed increment failed",
				zap.String("vendor_id", vendorID), zap.Error(err))
		}
	}

	return purchase, nil
}

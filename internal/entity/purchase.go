package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

type PurchaseOutcome string

const (
	OutcomeWon        PurchaseOutcome = "won"
	OutcomeLost       PurchaseOutcome = "lost"
	OutcomeNoResponse PurchaseOutcome = "no_response"
)

func (o PurchaseOutcome) Valid() bool {
	switch o {
	case OutcomeWon, OutcomeLost, OutcomeNoResponse:
		return true
	}
	return false
}

// LeadPurchase links one vendor to one lead. The pending -> completed
// transition happens exactly once, guarded by a conditional update in
// the repository.
type LeadPurchase struct {
	ID               string           `json:"id"`
	LeadID           string           `json:"lead_id"`
	VendorID         string           `json:"vendor_id"`
	Status           PurchaseStatus   `json:"status"`
	PaymentIntentID  string           `json:"payment_intent_id"`
	Price            decimal.Decimal  `json:"price"`
	Outcome          *PurchaseOutcome `json:"outcome,omitempty"`
	OutcomeValue     *decimal.Decimal `json:"outcome_value,omitempty"`
	OutcomeNotes     *string          `json:"outcome_notes,omitempty"`
	OutcomeUpdatedAt *time.Time       `json:"outcome_updated_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

func NewLeadPurchase(leadID, vendorID, paymentIntentID string, price decimal.Decimal) *LeadPurchase {
	return &LeadPurchase{
		ID:              uuid.New().String(),
		LeadID:          leadID,
		VendorID:        vendorID,
		Status:          PurchaseStatusPending,
		PaymentIntentID: paymentIntentID,
		Price:           price,
		CreatedAt:       time.Now(),
	}
}

// PurchaseWithLead is the dashboard listing row: the purchase joined
// with the lead it grants access to.
type PurchaseWithLead struct {
	LeadPurchase
	Lead Lead `json:"lead"`
}

type PurchaseRepositoryInterface interface {
	Create(ctx context.Context, purchase *LeadPurchase) error
	FindPending(ctx context.Context, leadID, vendorID string) (*LeadPurchase, error)
	// FindActiveByLeadAndVendor returns the pending or completed purchase
	// for the pair, if any.
	FindActiveByLeadAndVendor(ctx context.Context, leadID, vendorID string) (*LeadPurchase, error)
	FindByIDAndVendor(ctx context.Context, id, vendorID string) (*LeadPurchase, error)
	ListByVendor(ctx context.Context, vendorID string, p Pagination) ([]*PurchaseWithLead, int, error)
	// CompletePending flips pending -> completed and reports whether the
	// row was actually updated. A false return means the purchase was no
	// longer pending (duplicate event delivery).
	CompletePending(ctx context.Context, id string) (bool, error)
	MarkRefundedByPaymentIntent(ctx context.Context, paymentIntentID string) error
	UpdateOutcome(ctx context.Context, id string, outcome PurchaseOutcome, value *decimal.Decimal, notes *string, at time.Time) error
}

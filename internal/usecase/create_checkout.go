package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/integration/payment"
)

type CreateCheckoutInput struct {
	LeadID string `json:"lead_id" validate:"required,uuid4"`
}

type CreateCheckoutOutput struct {
	PurchaseID  string `json:"purchase_id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckoutUseCase opens a payment session for a vendor buying a
// lead and persists the pending purchase the webhook later completes.
type CreateCheckoutUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Purchases  entity.PurchaseRepositoryInterface
	Gateway    PaymentGateway
	SiteOrigin string
	Logger     *zap.Logger
}

func NewCreateCheckoutUseCase(
	leads entity.LeadRepositoryInterface,
	purchases entity.PurchaseRepositoryInterface,
	gateway PaymentGateway,
	siteOrigin string,
	logger *zap.Logger,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		Leads:      leads,
		Purchases:  purchases,
		Gateway:    gateway,
		SiteOrigin: siteOrigin,
		Logger:     logger,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, vendor *entity.Vendor, input CreateCheckoutInput) (*CreateCheckoutOutput, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &NotFoundError{Resource: "lead"}
		}
		return nil, fmt.Errorf("load lead: %w", err)
	}

	if !lead.Available() {
		return nil, &ConflictError{Message: "lead is no longer available"}
	}

	existing, err := uc.Purchases.FindActiveByLeadAndVendor(ctx, lead.ID, vendor.ID)
	if err != nil && !errors.Is(err, entity.ErrPurchaseNotFound) {
		return nil, fmt.Errorf("check existing purchase: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Message: "lead already purchased or pending payment"}
	}

	session, err := uc.Gateway.CreateCheckoutSession(ctx, payment.CreateCheckoutInput{
		AmountCents: lead.Price.Mul(decimal.NewFromInt(100)).IntPart(),
		Description: fmt.Sprintf("%s lead — %s", lead.JobType, lead.OriginState),
		SuccessURL:  uc.SiteOrigin + "/dashboard/purchases?checkout=success",
		CancelURL:   uc.SiteOrigin + "/dashboard/leads",
		Metadata: map[string]string{
			"lead_id":   lead.ID,
			"vendor_id": vendor.ID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	purchase := entity.NewLeadPurchase(lead.ID, vendor.ID, session.PaymentIntentID, lead.Price)
	if err := uc.Purchases.Create(ctx, purchase); err != nil {
		// The session exists on the processor side but has no local
		// purchase row; the webhook will log and ignore its completion.
		uc.Logger.Error("checkout session created but purchase insert failed",
			zap.String("session_id", session.ID), zap.Error(err))
		return nil, fmt.Errorf("save purchase: %w", err)
	}

	return &CreateCheckoutOutput{
		PurchaseID:  purchase.ID,
		CheckoutURL: session.URL,
	}, nil
}

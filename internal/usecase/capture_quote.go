package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/queue"
)

type CaptureQuoteInput struct {
	JobType          string `json:"job_type" validate:"required"`
	OriginState      string `json:"origin_state" validate:"required,max=64"`
	DestinationState string `json:"destination_state" validate:"max=64"`
	Timeline         string `json:"timeline" validate:"max=128"`
	ContactName      string `json:"contact_name" validate:"required,max=128"`
	ContactEmail     string `json:"contact_email" validate:"required,email"`
	ContactPhone     string `json:"contact_phone" validate:"max=32"`
	CompanyName      string `json:"company_name" validate:"required,max=128"`
}

type CaptureQuoteOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Intake pricing per job type. Admins reprice leads during vetting;
// these are the listing defaults.
type leadDefaults struct {
	Tier     entity.LeadTier
	Price    decimal.Decimal
	MaxSales int
}

var jobTypeDefaults = map[entity.JobType]leadDefaults{
	entity.JobDataCenterRelocation: {Tier: entity.TierPremium, Price: decimal.NewFromInt(499), MaxSales: 3},
	entity.JobITAD:                 {Tier: entity.TierStandard, Price: decimal.NewFromInt(299), MaxSales: 3},
	entity.JobAssetRecovery:        {Tier: entity.TierStandard, Price: decimal.NewFromInt(249), MaxSales: 3},
	entity.JobOfficeDecommission:   {Tier: entity.TierStandard, Price: decimal.NewFromInt(199), MaxSales: 3},
	entity.JobEquipmentDelivery:    {Tier: entity.TierBasic, Price: decimal.NewFromInt(99), MaxSales: 5},
}

type CaptureQuoteUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Producer queue.EventProducerInterface
	Logger   *zap.Logger
}

func NewCaptureQuoteUseCase(
	leads entity.LeadRepositoryInterface,
	producer queue.EventProducerInterface,
	logger *zap.Logger,
) *CaptureQuoteUseCase {
	return &CaptureQuoteUseCase{
		Leads:    leads,
		Producer: producer,
		Logger:   logger,
	}
}

func (uc *CaptureQuoteUseCase) Execute(ctx context.Context, input CaptureQuoteInput) (*CaptureQuoteOutput, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	jobType := entity.JobType(input.JobType)
	if !jobType.Valid() {
		return nil, &ValidationError{Field: "job_type", Message: "unknown job type"}
	}

	lead := entity.NewLead(jobType, input.OriginState, input.DestinationState, input.Timeline)
	lead.ContactName = input.ContactName
	lead.ContactEmail = input.ContactEmail
	lead.ContactPhone = input.ContactPhone
	lead.CompanyName = input.CompanyName

	defaults := jobTypeDefaults[jobType]
	lead.Tier = defaults.Tier
	lead.Price = defaults.Price
	lead.MaxSales = defaults.MaxSales

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("save quote request: %w", err)
	}

	// The lead is saved; a CRM sync miss is not worth failing the form.
	event := queue.MarketplaceEvent{
		Type:    queue.EventLeadCaptured,
		LeadID:  lead.ID,
		JobType: string(lead.JobType),
		Company: lead.CompanyName,
	}
	if err := uc.Producer.PublishEvent(ctx, event); err != nil {
		uc.Logger.Error("lead saved but event publish failed",
			zap.String("lead_id", lead.ID), zap.Error(err))
	}

	return &CaptureQuoteOutput{ID: lead.ID, Status: string(lead.Status)}, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/decomly/lead-broker/internal/entity"
)

// MarketplaceLead is the vendor-facing view of a lead. It deliberately
// has no contact fields: those are what the vendor is buying.
type MarketplaceLead struct {
	ID               string          `json:"id"`
	JobType          entity.JobType  `json:"job_type"`
	OriginState      string          `json:"origin_state"`
	DestinationState string          `json:"destination_state,omitempty"`
	Timeline         string          `json:"timeline,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Tier             entity.LeadTier `json:"tier"`
	MaxSales         int             `json:"max_sales"`
	SoldCount        int             `json:"sold_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

func sanitizeLead(lead *entity.Lead) MarketplaceLead {
	return MarketplaceLead{
		ID:               lead.ID,
		JobType:          lead.JobType,
		OriginState:      lead.OriginState,
		DestinationState: lead.DestinationState,
		Timeline:         lead.Timeline,
		Price:            lead.Price,
		Tier:             lead.Tier,
		MaxSales:         lead.MaxSales,
		SoldCount:        lead.SoldCount,
		CreatedAt:        lead.CreatedAt,
	}
}

type ListMarketplaceOutput struct {
	Leads    []MarketplaceLead `json:"leads"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

type ListMarketplaceUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewListMarketplaceUseCase(leads entity.LeadRepositoryInterface) *ListMarketplaceUseCase {
	return &ListMarketplaceUseCase{Leads: leads}
}

func (uc *ListMarketplaceUseCase) Execute(ctx context.Context, filter entity.LeadFilter, p entity.Pagination) (*ListMarketplaceOutput, error) {
	leads, total, err := uc.Leads.ListAvailable(ctx, filter, p)
	if err != nil {
		return nil, fmt.Errorf("list marketplace: %w", err)
	}

	out := &ListMarketplaceOutput{
		Leads:    make([]MarketplaceLead, 0, len(leads)),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for _, lead := range leads {
		out.Leads = append(out.Leads, sanitizeLead(lead))
	}

	return out, nil
}

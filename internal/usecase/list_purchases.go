package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/decomly/lead-broker/internal/entity"
)

// LeadContact is released on a purchase only once it is completed.
type LeadContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

type PurchaseItem struct {
	ID               string                  `json:"id"`
	LeadID           string                  `json:"lead_id"`
	Status           entity.PurchaseStatus   `json:"status"`
	Price            decimal.Decimal         `json:"price"`
	Outcome          *entity.PurchaseOutcome `json:"outcome,omitempty"`
	OutcomeValue     *decimal.Decimal        `json:"outcome_value,omitempty"`
	OutcomeNotes     *string                 `json:"outcome_notes,omitempty"`
	OutcomeUpdatedAt *time.Time              `json:"outcome_updated_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	Lead             MarketplaceLead         `json:"lead"`
	Contact          *LeadContact            `json:"contact,omitempty"`
}

type ListPurchasesOutput struct {
	Purchases []PurchaseItem `json:"purchases"`
	Total     int            `json:"total"`
	Page      int            `json:"page"`
	PageSize  int            `json:"pageSize"`
}

type ListPurchasesUseCase struct {
	Purchases entity.PurchaseRepositoryInterface
}

func NewListPurchasesUseCase(purchases entity.PurchaseRepositoryInterface) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{Purchases: purchases}
}

func (uc *ListPurchasesUseCase) Execute(ctx context.Context, vendorID string, p entity.Pagination) (*ListPurchasesOutput, error) {
	rows, total, err := uc.Purchases.ListByVendor(ctx, vendorID, p)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	out := &ListPurchasesOutput{
		Purchases: make([]PurchaseItem, 0, len(rows)),
		Total:     total,
		Page:      p.Page,
		PageSize:  p.PageSize,
	}

	for _, row := range rows {
		item := PurchaseItem{
			ID:               row.ID,
			LeadID:           row.LeadID,
			Status:           row.Status,
			Price:            row.Price,
			Outcome:          row.Outcome,
			OutcomeValue:     row.OutcomeValue,
			OutcomeNotes:     row.OutcomeNotes,
			OutcomeUpdatedAt: row.OutcomeUpdatedAt,
			CreatedAt:        row.CreatedAt,
			Lead:             sanitizeLead(&row.Lead),
		}
		if row.Status == entity.PurchaseStatusCompleted {
			item.Contact = &LeadContact{
				Name:    row.Lead.ContactName,
				Email:   row.Lead.ContactEmail,
				Phone:   row.Lead.ContactPhone,
				Company: row.Lead.CompanyName,
			}
		}
		out.Purchases = append(out.Purchases, item)
	}

	return out, nil
}

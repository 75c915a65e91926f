package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/usecase"
)

func purchaseRow(status entity.PurchaseStatus) *entity.PurchaseWithLead {
	return &entity.PurchaseWithLead{
		LeadPurchase: entity.LeadPurchase{
			ID:       "pur-" + string(status),
			LeadID:   "lead-1",
			VendorID: "ven-1",
			Status:   status,
			Price:    decimal.NewFromInt(299),
		},
		Lead: entity.Lead{
			ID:           "lead-1",
			JobType:      entity.JobITAD,
			OriginState:  "TX",
			ContactName:  "Jane Smith",
			ContactEmail: "jane@example.com",
			CompanyName:  "Example Corp",
		},
	}
}

func TestListPurchasesReleasesContactOnlyWhenCompleted(t *testing.T) {
	purchases := new(MockPurchaseRepository)
	uc := usecase.NewListPurchasesUseCase(purchases)

	rows := []*entity.PurchaseWithLead{
		purchaseRow(entity.PurchaseStatusCompleted),
		purchaseRow(entity.PurchaseStatusPending),
		purchaseRow(entity.PurchaseStatusRefunded),
	}
	p := entity.Pagination{Page: 1, PageSize: 20}
	purchases.On("ListByVendor", mock.Anything, "ven-1", p).Return(rows, 3, nil)

	out, err := uc.Execute(context.Background(), "ven-1", p)

	assert.NoError(t, err)
	assert.Len(t, out.Purchases, 3)

	completed, pending, refunded := out.Purchases[0], out.Purchases[1], out.Purchases[2]
	assert.NotNil(t, completed.Contact)
	assert.Equal(t, "jane@example.com", completed.Contact.Email)
	assert.Nil(t, pending.Contact)
	assert.Nil(t, refunded.Contact)

	// The embedded lead view is always sanitized.
	assert.Empty(t, completed.Lead.DestinationState)
	assert.Equal(t, "TX", completed.Lead.OriginState)
}

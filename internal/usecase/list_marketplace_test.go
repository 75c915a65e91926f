package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/usecase"
)

func TestListMarketplaceStripsContactFields(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := usecase.NewListMarketplaceUseCase(leads)

	lead := &entity.Lead{
		ID:           "lead-1",
		JobType:      entity.JobITAD,
		OriginState:  "TX",
		ContactName:  "Jane Smith",
		ContactEmail: "jane@example.com",
		ContactPhone: "+1 555 0100",
		CompanyName:  "Example Corp",
		Price:        decimal.NewFromInt(299),
		Tier:         entity.TierStandard,
		MaxSales:     3,
		SoldCount:    1,
	}
	p := entity.Pagination{Page: 1, PageSize: 20}
	leads.On("ListAvailable", mock.Anything, mock.Anything, p).Return([]*entity.Lead{lead}, 1, nil)

	out, err := uc.Execute(context.Background(), entity.LeadFilter{}, p)
	assert.NoError(t, err)
	assert.Len(t, out.Leads, 1)
	assert.Equal(t, 1, out.Total)

	// The serialized listing must not leak what the vendor is buying.
	raw, err := json.Marshal(out)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "jane@example.com")
	assert.NotContains(t, string(raw), "Jane Smith")
	assert.NotContains(t, string(raw), "+1 555 0100")
	assert.NotContains(t, string(raw), "Example Corp")
	assert.Contains(t, string(raw), "TX")
}

func TestListMarketplacePassesFilterThrough(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := usecase.NewListMarketplaceUseCase(leads)

	filter := entity.LeadFilter{JobType: "itad", OriginState: "CA"}
	p := entity.Pagination{Page: 2, PageSize: 10}
	leads.On("ListAvailable", mock.Anything, filter, p).Return([]*entity.Lead{}, 0, nil)

	out, err := uc.Execute(context.Background(), filter, p)

	assert.NoError(t, err)
	assert.Empty(t, out.Leads)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 10, out.PageSize)
	leads.AssertExpectations(t)
}

package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/integration/payment"
	"github.com/decomly/lead-broker/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, p entity.Pagination) ([]*entity.Lead, int, error) {
	args := m.Called(ctx, p)
	if leads, ok := args.Get(0).([]*entity.Lead); ok {
		return leads, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) ListAvailable(ctx context.Context, filter entity.LeadFilter, p entity.Pagination) ([]*entity.Lead, int, error) {
	args := m.Called(ctx, filter, p)
	if leads, ok := args.Get(0).([]*entity.Lead); ok {
		return leads, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) IncrementSoldCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id string) (*entity.Vendor, error) {
	args := m.Called(ctx, id)
	if vendor, ok := args.Get(0).(*entity.Vendor); ok {
		return vendor, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVendorRepository) FindByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	args := m.Called(ctx, userID)
	if vendor, ok := args.Get(0).(*entity.Vendor); ok {
		return vendor, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVendorRepository) FindApprovedByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	args := m.Called(ctx, userID)
	if vendor, ok := args.Get(0).(*entity.Vendor); ok {
		return vendor, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVendorRepository) List(ctx context.Context, p entity.Pagination) ([]*entity.Vendor, int, error) {
	args := m.Called(ctx, p)
	if vendors, ok := args.Get(0).([]*entity.Vendor); ok {
		return vendors, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockVendorRepository) UpdateStatus(ctx context.Context, id string, status entity.VendorStatus, isActive bool) error {
	args := m.Called(ctx, id, status, isActive)
	return args.Error(0)
}

func (m *MockVendorRepository) IncrementLeadsPurchased(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) IncrementLeadsClosed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, purchase *entity.LeadPurchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindPending(ctx context.Context, leadID, vendorID string) (*entity.LeadPurchase, error) {
	args := m.Called(ctx, leadID, vendorID)
	if purchase, ok := args.Get(0).(*entity.LeadPurchase); ok {
		return purchase, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseRepository) FindActiveByLeadAndVendor(ctx context.Context, leadID, vendorID string) (*entity.LeadPurchase, error) {
	args := m.Called(ctx, leadID, vendorID)
	if purchase, ok := args.Get(0).(*entity.LeadPurchase); ok {
		return purchase, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDAndVendor(ctx context.Context, id, vendorID string) (*entity.LeadPurchase, error) {
	args := m.Called(ctx, id, vendorID)
	if purchase, ok := args.Get(0).(*entity.LeadPurchase); ok {
		return purchase, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseRepository) ListByVendor(ctx context.Context, vendorID string, p entity.Pagination) ([]*entity.PurchaseWithLead, int, error) {
	args := m.Called(ctx, vendorID, p)
	if rows, ok := args.Get(0).([]*entity.PurchaseWithLead); ok {
		return rows, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockPurchaseRepository) CompletePending(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) MarkRefundedByPaymentIntent(ctx context.Context, paymentIntentID string) error {
	args := m.Called(ctx, paymentIntentID)
	return args.Error(0)
}

func (m *MockPurchaseRepository) UpdateOutcome(ctx context.Context, id string, outcome entity.PurchaseOutcome, value *decimal.Decimal, notes *string, at time.Time) error {
	args := m.Called(ctx, id, outcome, value, notes, at)
	return args.Error(0)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishEvent(ctx context.Context, event queue.MarketplaceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, input payment.CreateCheckoutInput) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, input)
	if session, ok := args.Get(0).(*payment.CheckoutSession); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

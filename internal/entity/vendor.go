package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrVendorNotFound = errors.New("vendor not found")

type VendorStatus string

const (
	VendorStatusPending   VendorStatus = "pending"
	VendorStatusApproved  VendorStatus = "approved"
	VendorStatusRejected  VendorStatus = "rejected"
	VendorStatusSuspended VendorStatus = "suspended"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected, VendorStatusSuspended:
		return true
	}
	return false
}

// Admins can approve a pending or previously rejected/suspended vendor,
// reject a pending one, and suspend an approved one.
var vendorTransitions = map[VendorStatus]map[VendorStatus]bool{
	VendorStatusPending:   {VendorStatusApproved: true, VendorStatusRejected: true},
	VendorStatusApproved:  {VendorStatusSuspended: true},
	VendorStatusRejected:  {VendorStatusApproved: true},
	VendorStatusSuspended: {VendorStatusApproved: true},
}

func CanTransitionVendor(from, to VendorStatus) bool {
	next, ok := vendorTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

type Vendor struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	CompanyName    string       `json:"company_name"`
	ContactName    string       `json:"contact_name,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	ServiceStates  string       `json:"service_states,omitempty"`
	Status         VendorStatus `json:"status"`
	IsActive       bool         `json:"is_active"`
	LeadsPurchased int          `json:"leads_purchased"`
	LeadsClosed    int          `json:"leads_closed"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func NewVendor(userID, companyName, contactName, phone string) *Vendor {
	return &Vendor{
		ID:          uuid.New().String(),
		UserID:      userID,
		CompanyName: companyName,
		ContactName: contactName,
		Phone:       phone,
		Status:      VendorStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

type VendorRepositoryInterface interface {
	Create(ctx context.Context, vendor *Vendor) error
	FindByID(ctx context.Context, id string) (*Vendor, error)
	FindByUserID(ctx context.Context, userID string) (*Vendor, error)
	FindApprovedByUserID(ctx context.Context, userID string) (*Vendor, error)
	List(ctx context.Context, p Pagination) ([]*Vendor, int, error)
	// UpdateStatus writes status and is_active in the same statement.
	UpdateStatus(ctx context.Context, id string, status VendorStatus, isActive bool) error
	IncrementLeadsPurchased(ctx context.Context, id string) error
	IncrementLeadsClosed(ctx context.Context, id string) error
}

package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrLeadNotFound = errors.New("lead not found")

type JobType string

const (
	JobDataCenterRelocation JobType = "data_center_relocation"
	JobITAD                 JobType = "itad"
	JobAssetRecovery        JobType = "asset_recovery"
	JobOfficeDecommission   JobType = "office_decommission"
	JobEquipmentDelivery    JobType = "equipment_delivery"
)

func (j JobType) Valid() bool {
	switch j {
	case JobDataCenterRelocation, JobITAD, JobAssetRecovery, JobOfficeDecommission, JobEquipmentDelivery:
		return true
	}
	return false
}

type LeadTier string

const (
	TierPremium  LeadTier = "premium"
	TierStandard LeadTier = "standard"
	TierBasic    LeadTier = "basic"
)

type LeadStatus string

const (
	LeadStatusNew            LeadStatus = "new"
	LeadStatusVetted         LeadStatus = "vetted"
	LeadStatusSentToVendor   LeadStatus = "sent_to_vendor"
	LeadStatusVendorAccepted LeadStatus = "vendor_accepted"
	LeadStatusQuoted         LeadStatus = "quoted"
	LeadStatusWon            LeadStatus = "won"
	LeadStatusLost           LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusVetted, LeadStatusSentToVendor,
		LeadStatusVendorAccepted, LeadStatusQuoted, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// leadTransitions enumerates the legal status edges. Anything not listed
// here is rejected with a TransitionError.
var leadTransitions = map[LeadStatus]map[LeadStatus]bool{
	LeadStatusNew:            {LeadStatusVetted: true},
	LeadStatusVetted:         {LeadStatusSentToVendor: true},
	LeadStatusSentToVendor:   {LeadStatusVendorAccepted: true},
	LeadStatusVendorAccepted: {LeadStatusQuoted: true},
	LeadStatusQuoted:         {LeadStatusWon: true, LeadStatusLost: true},
	LeadStatusWon:            {},
	LeadStatusLost:           {},
}

func CanTransitionLead(from, to LeadStatus) bool {
	next, ok := leadTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// TransitionError names the illegal edge that was attempted.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return e.Entity + " status cannot move from " + e.From + " to " + e.To
}

type Lead struct {
	ID               string          `json:"id"`
	JobType          JobType         `json:"job_type"`
	OriginState      string          `json:"origin_state"`
	DestinationState string          `json:"destination_state,omitempty"`
	Timeline         string          `json:"timeline,omitempty"`
	ContactName      string          `json:"contact_name,omitempty"`
	ContactEmail     string          `json:"contact_email,omitempty"`
	ContactPhone     string          `json:"contact_phone,omitempty"`
	CompanyName      string          `json:"company_name,omitempty"`
	Price            decimal.Decimal `json:"price"`
	Tier             LeadTier        `json:"tier"`
	MaxSales         int             `json:"max_sales"`
	SoldCount        int             `json:"sold_count"`
	Status           LeadStatus      `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Available reports whether the lead can still be sold to another vendor.
func (l *Lead) Available() bool {
	return l.SoldCount < l.MaxSales
}

func NewLead(jobType JobType, originState, destinationState, timeline string) *Lead {
	return &Lead{
		ID:               uuid.New().String(),
		JobType:          jobType,
		OriginState:      originState,
		DestinationState: destinationState,
		Timeline:         timeline,
		Status:           LeadStatusNew,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

type LeadFilter struct {
	JobType     string
	OriginState string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, p Pagination) ([]*Lead, int, error)
	ListAvailable(ctx context.Context, filter LeadFilter, p Pagination) ([]*Lead, int, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
	IncrementSoldCount(ctx context.Context, id string) error
}

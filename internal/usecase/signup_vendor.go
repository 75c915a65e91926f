package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/integration/identity"
)

type SignupVendorInput struct {
	CompanyName   string `json:"company_name" validate:"required,max=128"`
	ContactName   string `json:"contact_name" validate:"max=128"`
	Phone         string `json:"phone" validate:"max=32"`
	ServiceStates string `json:"service_states" validate:"max=256"`
}

type SignupVendorUseCase struct {
	Vendors entity.VendorRepositoryInterface
}

func NewSignupVendorUseCase(vendors entity.VendorRepositoryInterface) *SignupVendorUseCase {
	return &SignupVendorUseCase{Vendors: vendors}
}

// Execute files a provider application. Applications start pending and
// stay invisible to the marketplace until an admin approves them.
func (uc *SignupVendorUseCase) Execute(ctx context.Context, session *identity.Session, input SignupVendorInput) (*entity.Vendor, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	existing, err := uc.Vendors.FindByUserID(ctx, session.UserID)
	if err != nil && !errors.Is(err, entity.ErrVendorNotFound) {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Message: "a provider application already exists for this account"}
	}

	vendor := entity.NewVendor(session.UserID, input.CompanyName, input.ContactName, input.Phone)
	vendor.ServiceStates = input.ServiceStates

	if err := uc.Vendors.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	return vendor, nil
}

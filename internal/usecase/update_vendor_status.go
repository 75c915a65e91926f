package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/decomly/lead-broker/internal/entity"
)

type UpdateVendorStatusUseCase struct {
	Vendors entity.VendorRepositoryInterface
}

func NewUpdateVendorStatusUseCase(vendors entity.VendorRepositoryInterface) *UpdateVendorStatusUseCase {
	return &UpdateVendorStatusUseCase{Vendors: vendors}
}

func (uc *UpdateVendorStatusUseCase) Execute(ctx context.Context, vendorID, target string) (*entity.Vendor, error) {
	status := entity.VendorStatus(target)
	switch status {
	case entity.VendorStatusApproved, entity.VendorStatusRejected, entity.VendorStatusSuspended:
	default:
		return nil, &ValidationError{Field: "status", Message: "must be one of: approved rejected suspended"}
	}

	vendor, err := uc.Vendors.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, entity.ErrVendorNotFound) {
			return nil, &NotFoundError{Resource: "vendor"}
		}
		return nil, fmt.Errorf("load vendor: %w", err)
	}

	if !entity.CanTransitionVendor(vendor.Status, status) {
		return nil, &entity.TransitionError{
			Entity: "vendor",
			From:   string(vendor.Status),
			To:     string(status),
		}
	}

	isActive := status == entity.VendorStatusApproved
	if err := uc.Vendors.UpdateStatus(ctx, vendorID, status, isActive); err != nil {
		return nil, fmt.Errorf("update vendor status: %w", err)
	}

	vendor.Status = status
	vendor.IsActive = isActive
	return vendor, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/decomly/lead-broker/internal/entity"
)

type UpdateLeadStatusUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewUpdateLeadStatusUseCase(leads entity.LeadRepositoryInterface) *UpdateLeadStatusUseCase {
	return &UpdateLeadStatusUseCase{Leads: leads}
}

func (uc *UpdateLeadStatusUseCase) Execute(ctx context.Context, leadID, target string) (*entity.Lead, error) {
	status := entity.LeadStatus(target)
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: "unknown lead status"}
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &NotFoundError{Resource: "lead"}
		}
		return nil, fmt.Errorf("load lead: %w", err)
	}

	if !entity.CanTransitionLead(lead.Status, status) {
		return nil, &entity.TransitionError{
			Entity: "lead",
			From:   string(lead.Status),
			To:     string(status),
		}
	}

	if err := uc.Leads.UpdateStatus(ctx, leadID, status); err != nil {
		return nil, fmt.Errorf("update lead status: %w", err)
	}

	lead.Status = status
	return lead, nil
}

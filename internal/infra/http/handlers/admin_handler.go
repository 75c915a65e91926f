package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/usecase"
)

type AdminHandler struct {
	LeadStatusUC   *usecase.UpdateLeadStatusUseCase
	VendorStatusUC *usecase.UpdateVendorStatusUseCase
	Leads          entity.LeadRepositoryInterface
	Vendors        entity.VendorRepositoryInterface
	Logger         *zap.Logger
}

func NewAdminHandler(
	leadStatusUC *usecase.UpdateLeadStatusUseCase,
	vendorStatusUC *usecase.UpdateVendorStatusUseCase,
	leads entity.LeadRepositoryInterface,
	vendors entity.VendorRepositoryInterface,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		LeadStatusUC:   leadStatusUC,
		VendorStatusUC: vendorStatusUC,
		Leads:          leads,
		Vendors:        vendors,
		Logger:         logger,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}

	lead, err := h.LeadStatusUC.Execute(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *AdminHandler) UpdateVendorStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}

	vendor, err := h.VendorStatusUC.Execute(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, vendor)
}

// Admin listings are unsanitized: vetting needs the contact details.
func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	p := entity.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("pageSize"))

	leads, total, err := h.Leads.List(r.Context(), p)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads":    leads,
		"total":    total,
		"page":     p.Page,
		"pageSize": p.PageSize,
	})
}

func (h *AdminHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	p := entity.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("pageSize"))

	vendors, total, err := h.Vendors.List(r.Context(), p)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vendors":  vendors,
		"total":    total,
		"page":     p.Page,
		"pageSize": p.PageSize,
	})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/http/middleware"
	"github.com/decomly/lead-broker/internal/usecase"
)

// DashboardHandler serves the vendor dashboard. The RequireVendor guard
// has already put the approved vendor on the context.
type DashboardHandler struct {
	MarketplaceUC *usecase.ListMarketplaceUseCase
	PurchasesUC   *usecase.ListPurchasesUseCase
	OutcomeUC     *usecase.RecordOutcomeUseCase
	Logger        *zap.Logger
}

func NewDashboardHandler(
	marketplaceUC *usecase.ListMarketplaceUseCase,
	purchasesUC *usecase.ListPurchasesUseCase,
	outcomeUC *usecase.RecordOutcomeUseCase,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		MarketplaceUC: marketplaceUC,
		PurchasesUC:   purchasesUC,
		OutcomeUC:     outcomeUC,
		Logger:        logger,
	}
}

func (h *DashboardHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	originState := query.Get("origin_state")
	if originState == "" {
		originState = query.Get("state")
	}
	filter := entity.LeadFilter{
		JobType:     query.Get("job_type"),
		OriginState: originState,
	}
	p := entity.ParsePagination(query.Get("page"), query.Get("pageSize"))

	output, err := h.MarketplaceUC.Execute(r.Context(), filter, p)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *DashboardHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	vendor, ok := middleware.VendorFrom(r.Context())
	if !ok {
		writeError(w, h.Logger, usecase.ErrUnauthorized)
		return
	}

	p := entity.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("pageSize"))

	output, err := h.PurchasesUC.Execute(r.Context(), vendor.ID, p)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *DashboardHandler) UpdateOutcome(w http.ResponseWriter, r *http.Request) {
	vendor, ok := middleware.VendorFrom(r.Context())
	if !ok {
		writeError(w, h.Logger, usecase.ErrUnauthorized)
		return
	}

	var input usecase.RecordOutcomeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w)
		return
	}

	purchase, err := h.OutcomeUC.Execute(r.Context(), vendor.ID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, purchase)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/infra/http/middleware"
	"github.com/decomly/lead-broker/internal/usecase"
)

type CheckoutHandler struct {
	CheckoutUC *usecase.CreateCheckoutUseCase
	Logger     *zap.Logger
}

func NewCheckoutHandler(checkoutUC *usecase.CreateCheckoutUseCase, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{CheckoutUC: checkoutUC, Logger: logger}
}

func (h *CheckoutHandler) Handle(w http.ResponseWriter, r *http.Request) {
	vendor, ok := middleware.VendorFrom(r.Context())
	if !ok {
		writeError(w, h.Logger, usecase.ErrUnauthorized)
		return
	}

	var input usecase.CreateCheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w)
		return
	}

	output, err := h.CheckoutUC.Execute(r.Context(), vendor, input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

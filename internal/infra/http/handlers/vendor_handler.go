package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/infra/http/middleware"
	"github.com/decomly/lead-broker/internal/usecase"
)

type VendorHandler struct {
	SignupUC *usecase.SignupVendorUseCase
	Logger   *zap.Logger
}

func NewVendorHandler(signupUC *usecase.SignupVendorUseCase, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{SignupUC: signupUC, Logger: logger}
}

func (h *VendorHandler) Signup(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, h.Logger, usecase.ErrUnauthorized)
		return
	}

	var input usecase.SignupVendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w)
		return
	}

	vendor, err := h.SignupUC.Execute(r.Context(), session, input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, vendor)
}

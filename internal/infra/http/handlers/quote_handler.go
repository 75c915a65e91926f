package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/infra/http/middleware"
	"github.com/decomly/lead-broker/internal/usecase"
)

// QuoteHandler takes quote requests from the public marketing site.
type QuoteHandler struct {
	CaptureUC *usecase.CaptureQuoteUseCase
	Logger    *zap.Logger
}

func NewQuoteHandler(captureUC *usecase.CaptureQuoteUseCase, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{CaptureUC: captureUC, Logger: logger}
}

func (h *QuoteHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.CaptureQuoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badJSON(w)
		return
	}

	output, err := h.CaptureUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	middleware.RecordQuoteCaptured()
	writeJSON(w, http.StatusCreated, output)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/usecase"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError converts the usecase error taxonomy into the JSON
// envelope. Anything unrecognized is an internal error: logged with
// detail, surfaced without it.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *usecase.ValidationError
	var transitionErr *entity.TransitionError
	var notFoundErr *usecase.NotFoundError
	var conflictErr *usecase.ConflictError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		}})
	case errors.As(err, &transitionErr):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    "invalid_transition",
			Message: transitionErr.Error(),
			Field:   "status",
		}})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{
			Code:    "not_found",
			Message: notFoundErr.Error(),
		}})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorEnvelope{Error: errorBody{
			Code:    "conflict",
			Message: conflictErr.Message,
		}})
	case errors.Is(err, usecase.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: errorBody{
			Code:    "unauthorized",
			Message: "authentication required",
		}})
	case errors.Is(err, usecase.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorEnvelope{Error: errorBody{
			Code:    "forbidden",
			Message: "forbidden",
		}})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
			Code:    "internal_error",
			Message: "something went wrong",
		}})
	}
}

func badJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:    "bad_request",
		Message: "invalid JSON body",
	}})
}

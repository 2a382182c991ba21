package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viralforge/publish-review-service/internal/contracts"
	"github.com/viralforge/publish-review-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, contracts.SuccessResponse{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{
		Status: "error",
		Error:  contracts.ErrorPayload{Code: code, Message: message, RequestID: requestID},
	})
}

func mapDomainError(err error) (int, string) {
	var publishErr *domain.PublishError
	if errors.As(err, &publishErr) {
		return http.StatusBadGateway, string(publishErr.Reason)
	}
	var visibilityErr *domain.VisibilityError
	if errors.As(err, &visibilityErr) {
		return http.StatusBadGateway, "visibility_update_failed"
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrSlotOccupied):
		return http.StatusConflict, "slot_occupied"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

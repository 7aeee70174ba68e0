package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mkamau/chamapool/internal/ledger"
	"github.com/mkamau/chamapool/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a domain or storage error to an HTTP status and writes it.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errStatus(err), errorResponse{Error: err.Error()})
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrInvestmentNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrPaymentWindowClosed),
		errors.Is(err, ledger.ErrAmountMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrArithmeticOverflow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
